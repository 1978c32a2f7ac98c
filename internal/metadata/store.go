// Package metadata persists the fetched catalog as JSON documents under
// the metadata/ directory, one consolidated document for albums and one
// for songs, mirroring what the origin reported plus the local paths the
// run produced.
package metadata

import (
	"encoding/json"
	"path/filepath"

	"github.com/arknav/siren-downloader/internal/download"
	ioutils "github.com/arknav/siren-downloader/internal/io"
	"github.com/arknav/siren-downloader/internal/model"
)

// AlbumRecord is one entry of metadata/albums.json.
type AlbumRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Cover      string   `json:"cover,omitempty"`
	Background string   `json:"background,omitempty"`
}

// SongRecord is one entry of metadata/songs.json. Path reflects the file
// actually produced: a transcoded track points at the FLAC, not the
// original download.
type SongRecord struct {
	ID        string   `json:"id"`
	AlbumID   string   `json:"albumId"`
	Title     string   `json:"title"`
	Artists   []string `json:"artists"`
	TrackNo   int      `json:"trackNo"`
	Path      string   `json:"path"`
	CoverPath string   `json:"coverPath,omitempty"`
}

// Store writes catalog metadata documents under root/metadata.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the output directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Write persists albums.json and songs.json. Paths are stored relative
// to the output root. Both documents are written atomically.
func (s *Store) Write(albums []*model.Album, outcomes []download.Outcome) error {
	finalPaths := make(map[*model.Track]string)
	for _, outcome := range outcomes {
		if outcome.Task.Kind == download.KindAudio && outcome.Success() {
			finalPaths[outcome.Task.Track] = outcome.Path
		}
	}

	albumRecords := make([]AlbumRecord, 0, len(albums))
	var songRecords []SongRecord

	for _, album := range albums {
		albumRecords = append(albumRecords, AlbumRecord{
			ID:         album.ID,
			Name:       album.Name,
			Artists:    album.Artists,
			Cover:      s.rel(album.CoverPath),
			Background: s.rel(album.BackgroundPath),
		})

		for _, track := range album.Tracks {
			path := track.Path
			if final, ok := finalPaths[track]; ok {
				path = final
			}
			songRecords = append(songRecords, SongRecord{
				ID:        track.ID,
				AlbumID:   album.ID,
				Title:     track.Title,
				Artists:   track.Artists,
				TrackNo:   track.Number,
				Path:      s.rel(path),
				CoverPath: s.rel(album.CoverPath),
			})
		}
	}

	dir := filepath.Join(s.root, "metadata")
	if err := ioutils.EnsureDir(dir); err != nil {
		return err
	}

	if err := s.writeJSON(filepath.Join(dir, "albums.json"), albumRecords); err != nil {
		return err
	}
	return s.writeJSON(filepath.Join(dir, "songs.json"), songRecords)
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return ioutils.WriteFileAtomic(path, data)
}

// rel converts an output path to root-relative form for the documents;
// paths outside the root are kept as-is.
func (s *Store) rel(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return path
	}
	return rel
}
