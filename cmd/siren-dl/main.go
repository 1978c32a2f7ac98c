package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/arknav/siren-downloader/internal/audio"
	"github.com/arknav/siren-downloader/internal/config"
	"github.com/arknav/siren-downloader/internal/download"
	httpclient "github.com/arknav/siren-downloader/internal/http"
	"github.com/arknav/siren-downloader/internal/metadata"
	"github.com/arknav/siren-downloader/internal/siren"
)

type cliArgs struct {
	Output      string `arg:"-o,--output" help:"output directory (overrides config)"`
	Config      string `arg:"--config" default:"siren-dl.yaml" help:"path to config file"`
	Concurrency int    `arg:"-c,--concurrency" help:"max parallel downloads (overrides config)"`
	Verbose     bool   `arg:"-v,--verbose" help:"show per-file progress messages"`
}

func (cliArgs) Description() string {
	return "Download the full Monster Siren catalog: albums, tracks and cover art, with format normalization and tag embedding."
}

func main() {
	var args cliArgs
	arg.MustParse(&args)

	settings, err := config.Load(args.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if args.Output != "" {
		settings.OutputDir = args.Output
	}
	if args.Concurrency > 0 {
		settings.MaxConcurrency = args.Concurrency
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client := httpclient.NewClient(settings.UserAgent, settings.Referer)

	catalog := siren.NewClient(client, settings.BaseURL)
	catalog.Logf = func(format string, a ...any) {
		fmt.Printf("Warning: "+format+"\n", a...)
	}

	albums, err := catalog.ListAlbums(ctx, settings.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d albums\n", len(albums))

	tasks, err := download.BuildTasks(albums)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building download tasks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Starting %d downloads\n", len(tasks))

	bar := progressbar.NewOptions(
		len(tasks),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionSetDescription("Downloading..."),
	)

	processor := audio.NewProcessor(audio.NewFFmpeg())
	processor.OnConvert = func(path string) {
		bar.Clear()
		fmt.Printf("Converting to FLAC: %s\n", filepath.Base(path))
	}

	scheduler := download.NewScheduler(client, processor)
	scheduler.MaxConcurrency = settings.MaxConcurrency
	scheduler.Retries = settings.DownloadRetries
	scheduler.Backoff = settings.RetryBackoff()
	scheduler.OnProgress = func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !args.Verbose {
			return
		}
		bar.Clear()
		fmt.Println(event.Message)
	}
	scheduler.OnOutcome = func(download.Outcome) {
		bar.Add(1)
	}

	start := time.Now()
	outcomes := scheduler.Run(ctx, tasks)
	bar.Finish()
	fmt.Println()

	if ctx.Err() != nil {
		fmt.Println("Download cancelled.")
		os.Exit(130)
	}

	summary := download.Summarize(albums, outcomes)

	if err := metadata.NewStore(settings.OutputDir).Write(albums, outcomes); err != nil {
		fmt.Printf("Warning: writing metadata: %v\n", err)
	}

	for _, failure := range summary.Failures {
		fmt.Printf("Failed: %s / %s: %s\n", failure.AlbumName, failure.Task, failure.Reason)
	}
	if summary.Failed > 0 {
		fmt.Printf("%d of %d tasks failed\n", summary.Failed, summary.Tasks)
	}

	fmt.Printf("Downloaded %s in %s\n", humanize.Bytes(uint64(summary.Bytes)), time.Since(start).Round(time.Second))

	// Individual task failures are reported above, not via the exit code.
	fmt.Printf("Done. Albums: %d, Songs: %d\n", summary.Albums, summary.Songs)
}
