// Package siren implements the catalog source for the Monster Siren
// JSON API: listing albums, resolving per-album track lists and the
// per-song audio URLs.
package siren
