package download

import (
	"fmt"

	"github.com/arknav/siren-downloader/internal/model"
)

// ValidationError reports a malformed catalog record. It is fatal to the
// whole run: a broken record means the metadata fetch itself is suspect,
// so the run aborts before any download starts.
type ValidationError struct {
	AlbumID string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog record (album %q): %s", e.AlbumID, e.Reason)
}

// BuildTasks flattens the catalog into a flat list of independent tasks:
// one audio task per track, one cover task per album with a cover URL and
// one background task per album with a background URL.
//
// BuildTasks is a pure transformation, it touches neither the network nor
// the filesystem. The only failure mode is malformed input, reported as a
// ValidationError before any downloads start.
func BuildTasks(albums []*model.Album) ([]Task, error) {
	var tasks []Task

	for _, album := range albums {
		if err := validateAlbum(album); err != nil {
			return nil, err
		}

		if album.HasCover() {
			tasks = append(tasks, Task{
				Kind:  KindCover,
				URL:   album.CoverURL,
				Dest:  album.CoverPath,
				Album: album,
			})
		}
		if album.BackgroundURL != "" {
			tasks = append(tasks, Task{
				Kind:  KindBackground,
				URL:   album.BackgroundURL,
				Dest:  album.BackgroundPath,
				Album: album,
			})
		}

		for _, track := range album.Tracks {
			tasks = append(tasks, Task{
				Kind:  KindAudio,
				URL:   track.SourceURL,
				Dest:  track.Path,
				Album: album,
				Track: track,
			})
		}
	}

	return tasks, nil
}

func validateAlbum(album *model.Album) error {
	if album.ID == "" {
		return &ValidationError{Reason: "missing album id"}
	}
	if album.Name == "" {
		return &ValidationError{AlbumID: album.ID, Reason: "missing album name"}
	}

	for _, track := range album.Tracks {
		if track.Number < 1 {
			return &ValidationError{AlbumID: album.ID, Reason: fmt.Sprintf("track %q has non-positive number %d", track.Title, track.Number)}
		}
		if track.Title == "" {
			return &ValidationError{AlbumID: album.ID, Reason: fmt.Sprintf("track %d has no title", track.Number)}
		}
		if track.SourceURL == "" {
			return &ValidationError{AlbumID: album.ID, Reason: fmt.Sprintf("track %d has no source URL", track.Number)}
		}
	}

	return nil
}
