package model

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	ioutils "github.com/arknav/siren-downloader/internal/io"
)

// defaultExtension is used when the source URL does not reveal a file
// extension. The extension is provisional either way: the real container
// format is detected from the downloaded bytes before post-processing.
const defaultExtension = ".m4a"

// Track represents a single track within an album.
//
// The local file path is computed once by NewTrack from the parent album
// directory, the track number and the title, so two tracks with distinct
// (album, number, title) always resolve to distinct paths.
type Track struct {
	// Album is a reference to the parent album, used for lookups only.
	Album *Album

	// ID is the catalog identifier for the song.
	ID string

	// Number is the track number within the album (1-indexed).
	Number int

	// Title is the track title.
	Title string

	// Artists are the track-level artist names.
	Artists []string

	// SourceURL is the URL to download the audio file from.
	SourceURL string

	// Path is the computed local file path, including the provisional
	// extension derived from SourceURL.
	Path string
}

// NewTrack creates a new Track with its computed file path.
//
// The filename follows "{NN} - {title}{ext}" where ext is taken from the
// source URL path and falls back to ".m4a" when the URL has no extension.
func NewTrack(album *Album, id string, number int, title string, artists []string, sourceURL string) *Track {
	track := &Track{
		Album:     album,
		ID:        id,
		Number:    number,
		Title:     title,
		Artists:   artists,
		SourceURL: sourceURL,
	}

	name := fmt.Sprintf("%02d - %s%s", number, ioutils.SanitizeFileName(title), extensionFromURL(sourceURL))
	track.Path = filepath.Join(album.Dir, name)

	return track
}

// extensionFromURL extracts the file extension from a URL path.
func extensionFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultExtension
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return defaultExtension
}
