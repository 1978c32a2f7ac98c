// Package download provides the fetch-and-materialize pipeline: building
// download tasks from the catalog, running them with bounded parallelism
// and aggregating per-task outcomes into a run summary.
//
// # Pipeline
//
//	tasks, err := download.BuildTasks(albums)        // pure fan-out
//	outcomes   := scheduler.Run(ctx, tasks)          // bounded, failure-isolated
//	summary    := download.Summarize(albums, outcomes)
//
// # Concurrency
//
// The Scheduler runs tasks in a worker pool bounded by MaxConcurrency
// (default: min(task count, 32)). Image tasks form a first wave so covers
// exist on disk before audio post-processing embeds them. Each task owns
// a distinct destination path, so no locking is needed across tasks; the
// only required discipline is the write-to-temp-then-rename pattern.
//
// # Failure isolation
//
// Per-task failures (network, transcode, tag write) are captured as
// Outcome values and surfaced in the Summary; they never abort the batch.
// Only malformed catalog input aborts, as a ValidationError from
// BuildTasks before any download starts.
package download
