// Package http wraps net/http with the configuration the catalog origin
// expects: identification headers, timeouts, typed network errors and
// atomic streaming downloads.
package http
