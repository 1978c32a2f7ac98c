package download

import (
	"fmt"

	"github.com/arknav/siren-downloader/internal/model"
)

// Kind discriminates the unit of work a Task performs.
type Kind int

const (
	// KindAudio downloads a track's audio file and post-processes it.
	KindAudio Kind = iota

	// KindCover downloads an album's cover art.
	KindCover

	// KindBackground downloads an album's background image.
	KindBackground
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindCover:
		return "cover"
	default:
		return "background"
	}
}

// Task is one independent unit of download-and-process work. Tasks are
// built once from the catalog and never mutated afterwards.
type Task struct {
	Kind Kind
	URL  string
	Dest string

	// Album is the owning album, set for every kind.
	Album *model.Album

	// Track is set only for KindAudio.
	Track *model.Track
}

// Label returns a short human-readable name for progress and failure
// reporting.
func (t Task) Label() string {
	if t.Kind == KindAudio {
		return fmt.Sprintf("%02d - %s", t.Track.Number, t.Track.Title)
	}
	return t.Kind.String()
}

// Outcome is the terminal result of one task. Exactly one Outcome is
// produced per task; a nil Err means success.
type Outcome struct {
	Task Task

	// Path is the final on-disk path of the produced file. For audio it
	// reflects post-processing (a transcoded file has a new extension).
	Path string

	// Bytes is the number of bytes downloaded.
	Bytes int64

	Err error
}

// Success reports whether the task completed without error.
func (o Outcome) Success() bool {
	return o.Err == nil
}
