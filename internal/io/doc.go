// Package ioutils provides file system utilities for the siren-downloader.
//
// This package contains functions for:
//   - Filename sanitization
//   - Atomic file writing (temp file + rename)
//   - Directory creation
//   - Cover image conversion and resizing
package ioutils
