package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Transcoder converts an audio file from one container to another.
// Implementations must leave the input untouched and must not create a
// non-empty output on failure.
type Transcoder interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// AtomTagger rewrites MP4 metadata atoms in place. M4A files have no
// in-process tag library in this codebase, so tagging goes through an
// external ffmpeg pass.
type AtomTagger interface {
	EmbedTags(ctx context.Context, path string, tags Tags, coverPath string) error
}

// TranscodeError reports a failed format conversion. The raw downloaded
// file is retained so the track can be re-processed later.
type TranscodeError struct {
	Path string
	Err  error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcoding %s: %v", e.Path, e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// ffmpegError wraps ffmpeg command failures with the command line and
// its combined output.
type ffmpegError struct {
	cmd     string
	output  string
	wrapped error
}

func (e *ffmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %s\nCommand: %s\nOutput: %s", e.wrapped, e.cmd, e.output)
}

func (e *ffmpegError) Unwrap() error {
	return e.wrapped
}

func newFFmpegError(cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	return &ffmpegError{
		cmd:     cmdStr,
		output:  string(output),
		wrapped: err,
	}
}

// FFmpeg invokes the ffmpeg binary for lossless transcoding and for the
// MP4 tag-embedding pass.
type FFmpeg struct {
	bin string
}

// NewFFmpeg returns an FFmpeg that resolves the binary from PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{bin: "ffmpeg"}
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, f.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return newFFmpegError(cmd, output, err)
	}
	return nil
}

// Convert transcodes inputPath to outputPath losslessly. The target codec
// is inferred by ffmpeg from the output extension (.flac here).
func (f *FFmpeg) Convert(ctx context.Context, inputPath, outputPath string) error {
	return f.run(ctx,
		"-y",
		"-i", inputPath,
		"-map", "0:a",
		"-c:a", "flac",
		outputPath,
	)
}

// EmbedTags rewrites the metadata atoms of an M4A file in place, copying
// the audio stream and attaching the cover as an embedded picture when a
// cover path is given. The rewrite goes through a temp file so a failed
// pass never corrupts the audio.
func (f *FFmpeg) EmbedTags(ctx context.Context, path string, tags Tags, coverPath string) error {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tmp := filepath.Join(dir, base+".tagged"+filepath.Ext(path))

	args := []string{"-y", "-i", path}
	if coverPath != "" {
		args = append(args,
			"-i", coverPath,
			"-map", "0:a",
			"-map", "1:v",
			"-c:a", "copy",
			"-c:v", "mjpeg",
			"-disposition:v", "attached_pic",
		)
	} else {
		args = append(args, "-map", "0:a", "-c:a", "copy")
	}

	args = append(args,
		"-metadata", "title="+tags.Title,
		"-metadata", "album="+tags.Album,
		"-metadata", "artist="+strings.Join(tags.Artists, "/"),
		"-metadata", "track="+strconv.Itoa(tags.Number),
		"-movflags", "+faststart",
		tmp,
	)

	if err := f.run(ctx, args...); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
