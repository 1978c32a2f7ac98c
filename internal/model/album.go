package model

import (
	"fmt"
	"path/filepath"

	ioutils "github.com/arknav/siren-downloader/internal/io"
)

// Album represents one album from the catalog with its metadata and tracks.
//
// Album contains everything needed to download and organize its files:
//   - ID and Name for directory naming and tagging
//   - CoverURL / BackgroundURL for downloading album art
//   - Computed local paths for the album directory and its images
//
// Paths are computed once by NewAlbum and never change afterwards: the
// album directory is a pure function of (ID, Name) under the output root.
//
// Example:
//
//	album := NewAlbum("0123", "Vigil", []string{"Some Artist"}, coverURL, "", "out")
//	// album.Dir = "out/songs/0123 - Vigil"
//	// album.CoverPath = "out/songs/0123 - Vigil/cover.jpg"
type Album struct {
	// ID is the catalog identifier for the album, unique across the catalog.
	ID string

	// Name is the album title.
	Name string

	// Artists are the album-level artist names.
	Artists []string

	// CoverURL is the URL of the album cover art.
	// Empty string means no cover is available.
	CoverURL string

	// BackgroundURL is the URL of the album background image, if any.
	BackgroundURL string

	// Tracks contains all tracks in this album.
	Tracks []*Track

	// Dir is the computed local directory where album files are saved.
	Dir string

	// CoverPath is the computed local path for the cover art.
	// Empty if the album has no cover.
	CoverPath string

	// BackgroundPath is the computed local path for the background image.
	// Empty if the album has no background.
	BackgroundPath string
}

// CoverFileName is the fixed name for saved album cover art. Covers are
// converted to JPEG on download, so the extension is always accurate.
const CoverFileName = "cover.jpg"

// BackgroundFileName is the fixed name for saved album background images.
const BackgroundFileName = "background.jpg"

// NewAlbum creates a new Album with computed paths under the output root.
//
// The album directory follows the layout "songs/{id} - {name}" with the
// name sanitized for the filesystem. Cover and background paths are set
// only when the corresponding URL is present.
func NewAlbum(id, name string, artists []string, coverURL, backgroundURL, root string) *Album {
	album := &Album{
		ID:            id,
		Name:          name,
		Artists:       artists,
		CoverURL:      coverURL,
		BackgroundURL: backgroundURL,
	}

	album.Dir = filepath.Join(root, "songs", fmt.Sprintf("%s - %s", id, ioutils.SanitizeFileName(name)))
	if album.HasCover() {
		album.CoverPath = filepath.Join(album.Dir, CoverFileName)
	}
	if album.BackgroundURL != "" {
		album.BackgroundPath = filepath.Join(album.Dir, BackgroundFileName)
	}

	return album
}

// HasCover returns true if the album has cover art available for download.
func (a *Album) HasCover() bool {
	return a.CoverURL != ""
}
