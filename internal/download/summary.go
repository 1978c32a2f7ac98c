package download

import "github.com/arknav/siren-downloader/internal/model"

// Failure identifies one failed task with enough detail for a targeted
// re-run.
type Failure struct {
	AlbumID   string
	AlbumName string
	Task      string
	URL       string
	Reason    string
}

// Summary is the final result of a run. Covers and backgrounds count as
// tasks but not as songs.
type Summary struct {
	Albums    int
	Songs     int
	Tasks     int
	Succeeded int
	Failed    int
	Bytes     int64
	Failures  []Failure
}

// Summarize reduces the collected outcomes into a run summary. It is a
// pure reduction with no side effects; rendering is the caller's job.
func Summarize(albums []*model.Album, outcomes []Outcome) Summary {
	summary := Summary{
		Albums: len(albums),
		Tasks:  len(outcomes),
	}

	for _, album := range albums {
		summary.Songs += len(album.Tracks)
	}

	for _, outcome := range outcomes {
		if outcome.Success() {
			summary.Succeeded++
			summary.Bytes += outcome.Bytes
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, Failure{
			AlbumID:   outcome.Task.Album.ID,
			AlbumName: outcome.Task.Album.Name,
			Task:      outcome.Task.Label(),
			URL:       outcome.Task.URL,
			Reason:    outcome.Err.Error(),
		})
	}

	return summary
}
