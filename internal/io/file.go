package ioutils

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// SanitizeFileName returns a filesystem-friendly name while preserving
// readability.
//
// The following transformations are applied:
//   - Ellipsis sequences ("..." and the Unicode ellipsis) are removed
//   - Invalid characters (<>:"/\|?* and control chars) become spaces
//   - Multiple whitespace is collapsed to a single space
//   - Leading and trailing whitespace is removed
//
// A name that sanitizes to an empty string becomes "unknown" so path
// construction never produces a bare directory separator.
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song Part 1 2"
//	SanitizeFileName("Track...")       // Returns "Track"
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "...", "")
	name = strings.ReplaceAll(name, "…", "")
	name = invalidChars.ReplaceAllString(name, " ")
	name = multiSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return "unknown"
	}
	return name
}

// WriteFileAtomic writes data to path through a temporary sibling file.
//
// The data is first written to "<path>.part" and then renamed into place,
// so no reader ever observes a partially written file at the final name.
// The parent directory must already exist.
func WriteFileAtomic(path string, data []byte) error {
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
