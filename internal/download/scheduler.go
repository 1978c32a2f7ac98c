package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	httpclient "github.com/arknav/siren-downloader/internal/http"
	ioutils "github.com/arknav/siren-downloader/internal/io"
	"github.com/arknav/siren-downloader/internal/model"
)

// maxConcurrencyCeiling caps the derived worker count. The bound exists
// as backpressure against the origin server and local disk saturation,
// not for correctness.
const maxConcurrencyCeiling = 32

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Fetcher retrieves remote content. Satisfied by the http client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
	DownloadFile(ctx context.Context, url, dest string) (int64, error)
}

// Processor post-processes a downloaded audio file and returns its final
// path. Satisfied by audio.Processor.
type Processor interface {
	Process(ctx context.Context, path string, track *model.Track) (string, error)
}

// Scheduler runs download tasks with bounded parallelism, collecting one
// Outcome per task. A failure in one task never cancels or blocks other
// in-flight tasks; the Scheduler itself never returns an error.
type Scheduler struct {
	Fetcher   Fetcher
	Processor Processor
	Images    *ioutils.ImageService

	// MaxConcurrency caps parallel workers. Zero derives the bound from
	// the task count, capped at maxConcurrencyCeiling.
	MaxConcurrency int

	// Retries is the number of extra attempts for retryable network
	// failures (timeouts, 5xx). Non-retryable failures are recorded
	// immediately.
	Retries int

	// Backoff is the fixed pause before a retry.
	Backoff time.Duration

	// OnProgress, when set, receives human-readable progress events.
	OnProgress func(ProgressEvent)

	// OnOutcome, when set, is called once per finished task.
	OnOutcome func(Outcome)
}

// NewScheduler creates a Scheduler with the default retry policy.
func NewScheduler(fetcher Fetcher, processor Processor) *Scheduler {
	return &Scheduler{
		Fetcher:   fetcher,
		Processor: processor,
		Images:    ioutils.NewImageService(),
		Retries:   1,
		Backoff:   2 * time.Second,
	}
}

// Run executes all tasks and returns their outcomes. Outcomes are
// positionally aligned with tasks but complete in no particular order.
//
// Image tasks run as a first wave so album covers are on disk before the
// audio wave needs them for tag embedding. Both waves share the same
// concurrency bound.
func (s *Scheduler) Run(ctx context.Context, tasks []Task) []Outcome {
	outcomes := make([]Outcome, len(tasks))

	s.warnDuplicateDests(tasks)

	var images, audio []int
	for i, t := range tasks {
		if t.Kind == KindAudio {
			audio = append(audio, i)
		} else {
			images = append(images, i)
		}
	}

	limit := s.MaxConcurrency
	if limit <= 0 {
		limit = min(len(tasks), maxConcurrencyCeiling)
		if limit == 0 {
			limit = 1
		}
	}

	s.runWave(ctx, tasks, images, outcomes, limit)
	s.runWave(ctx, tasks, audio, outcomes, limit)

	return outcomes
}

func (s *Scheduler) runWave(ctx context.Context, tasks []Task, indices []int, outcomes []Outcome, limit int) {
	var g errgroup.Group
	g.SetLimit(limit)

	for _, i := range indices {
		g.Go(func() error {
			outcomes[i] = s.runTask(ctx, tasks[i])
			if s.OnOutcome != nil {
				s.OnOutcome(outcomes[i])
			}
			return nil
		})
	}

	g.Wait()
}

// runTask performs fetch, atomic write and post-processing for one task.
// All failures are captured in the Outcome, never raised.
func (s *Scheduler) runTask(ctx context.Context, t Task) Outcome {
	// Cooperative cancellation between tasks, never mid-write.
	if err := ctx.Err(); err != nil {
		return Outcome{Task: t, Path: t.Dest, Err: err}
	}

	var written int64
	var err error
	for attempt := 0; ; attempt++ {
		written, err = s.fetch(ctx, t)
		if err == nil || attempt >= s.Retries || !retryable(err) {
			break
		}

		s.progress(ProgressEvent{
			Message: fmt.Sprintf("Retrying %s (%s): %v", t.Label(), t.Album.Name, err),
			Level:   LevelWarning,
		})
		select {
		case <-ctx.Done():
			return Outcome{Task: t, Path: t.Dest, Err: ctx.Err()}
		case <-time.After(s.Backoff):
		}
	}
	if err != nil {
		return Outcome{Task: t, Path: t.Dest, Err: err}
	}

	path := t.Dest
	if t.Kind == KindAudio && s.Processor != nil {
		final, perr := s.Processor.Process(ctx, t.Dest, t.Track)
		if final != "" {
			path = final
		}
		if perr != nil {
			return Outcome{Task: t, Path: path, Bytes: written, Err: perr}
		}
	}

	s.progress(ProgressEvent{
		Message: fmt.Sprintf("Downloaded %s (%s)", t.Label(), t.Album.Name),
		Level:   LevelVerbose,
	})
	return Outcome{Task: t, Path: path, Bytes: written}
}

// fetch retrieves the task's content. Audio streams to disk through the
// client's temp-then-rename path; images are fetched in memory, converted
// to JPEG and written atomically so the cover is always a real cover.jpg.
func (s *Scheduler) fetch(ctx context.Context, t Task) (int64, error) {
	if err := ioutils.EnsureDir(filepath.Dir(t.Dest)); err != nil {
		return 0, err
	}

	if t.Kind == KindAudio {
		return s.Fetcher.DownloadFile(ctx, t.URL, t.Dest)
	}

	data, err := s.Fetcher.Get(ctx, t.URL)
	if err != nil {
		return 0, err
	}
	if s.Images != nil {
		if converted, err := s.Images.ConvertToJPEG(ctx, data); err == nil {
			data = converted
		}
	}
	if err := ioutils.WriteFileAtomic(t.Dest, data); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// warnDuplicateDests flags tasks resolving to an identical destination.
// The duplicate still runs and the last writer wins.
func (s *Scheduler) warnDuplicateDests(tasks []Task) {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.Dest] {
			s.progress(ProgressEvent{
				Message: fmt.Sprintf("Duplicate destination %s; last writer wins", t.Dest),
				Level:   LevelWarning,
			})
		}
		seen[t.Dest] = true
	}
}

func (s *Scheduler) progress(event ProgressEvent) {
	if s.OnProgress != nil {
		s.OnProgress(event)
	}
}

func retryable(err error) bool {
	var nerr *httpclient.NetworkError
	return errors.As(err, &nerr) && nerr.Retryable()
}
