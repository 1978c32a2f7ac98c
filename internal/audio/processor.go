package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/arknav/siren-downloader/internal/io"
	"github.com/arknav/siren-downloader/internal/model"
)

// coverMaxSize bounds the pixel dimensions of cover art embedded in tags.
const coverMaxSize = 1000

// Tags is the metadata written into an audio file's container-native
// tag fields.
type Tags struct {
	Title   string
	Album   string
	Artists []string
	Number  int
}

// TagWriteError reports a failed tag write. The audio file is kept in
// its post-transcode state: playable audio matters more than tags.
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("tagging %s: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error {
	return e.Err
}

// Processor normalizes a downloaded audio file and embeds its tags.
//
// Processing is one logical step per file:
//  1. Detect the actual container format from the file bytes. WAV is
//     transcoded losslessly to FLAC; the WAV is deleted only after the
//     FLAC output is confirmed written and non-empty.
//  2. Write title, album, artists and track number, plus the album
//     cover when one was downloaded, using the tag mechanism of the
//     detected format.
//
// Both steps are idempotent: an already-FLAC file is never transcoded
// again, and tag writers replace rather than append.
type Processor struct {
	Transcoder Transcoder
	Atoms      AtomTagger
	Images     *ioutils.ImageService

	// OnConvert, when set, receives a notice before each transcode.
	OnConvert func(path string)
}

// NewProcessor returns a Processor backed by the given ffmpeg wrapper
// for both transcoding and MP4 tagging.
func NewProcessor(ffmpeg *FFmpeg) *Processor {
	return &Processor{
		Transcoder: ffmpeg,
		Atoms:      ffmpeg,
		Images:     ioutils.NewImageService(),
	}
}

// Process runs format normalization and tag embedding on the file at
// path and returns the final path of the playable file, which differs
// from the input when a transcode happened.
//
// On TranscodeError the raw downloaded file is retained at the input
// path. On TagWriteError the (possibly transcoded) file is retained.
func (p *Processor) Process(ctx context.Context, path string, track *model.Track) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return path, err
	}

	traits := formatTraits[format]
	if traits.transcode {
		converted, err := p.transcode(ctx, path)
		if err != nil {
			return path, err
		}
		path = converted
		format = FormatFLAC
		traits = formatTraits[format]
	}

	tags := Tags{
		Title:   track.Title,
		Album:   track.Album.Name,
		Artists: track.Artists,
		Number:  track.Number,
	}

	if err := p.writeTags(ctx, path, traits.tags, tags, track.Album.CoverPath); err != nil {
		return path, &TagWriteError{Path: path, Err: err}
	}
	return path, nil
}

// transcode converts path to a FLAC sibling and removes the source.
// An existing non-empty FLAC sibling means a previous run already
// converted this file; the source is just cleaned up.
func (p *Processor) transcode(ctx context.Context, path string) (string, error) {
	target := strings.TrimSuffix(path, filepath.Ext(path)) + ".flac"

	if info, err := os.Stat(target); err == nil && info.Size() > 0 {
		os.Remove(path)
		return target, nil
	}

	if p.Transcoder == nil {
		return "", &TranscodeError{Path: path, Err: fmt.Errorf("no transcoder available")}
	}

	if p.OnConvert != nil {
		p.OnConvert(path)
	}

	if err := p.Transcoder.Convert(ctx, path, target); err != nil {
		os.Remove(target)
		return "", &TranscodeError{Path: path, Err: err}
	}

	info, err := os.Stat(target)
	if err != nil || info.Size() == 0 {
		os.Remove(target)
		return "", &TranscodeError{Path: path, Err: fmt.Errorf("conversion produced no output")}
	}

	// Source deleted only now that the FLAC is confirmed on disk.
	os.Remove(path)
	return target, nil
}

func (p *Processor) writeTags(ctx context.Context, path string, strategy tagStrategy, tags Tags, coverPath string) (err error) {
	// The tag libraries index into the audio stream and panic on files
	// truncated after their metadata blocks, which a short HTTP body can
	// leave behind. A panic here must become a tag error, not take down
	// the batch.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed audio stream: %v", r)
		}
	}()

	switch strategy {
	case tagVorbis:
		return writeFLACTags(path, tags, p.loadCover(ctx, coverPath))
	case tagID3:
		return writeID3Tags(path, tags, p.loadCover(ctx, coverPath))
	case tagAtoms:
		if p.Atoms == nil {
			return fmt.Errorf("no MP4 tagger available")
		}
		staged, cleanup, err := p.stageCover(ctx, path, coverPath)
		if err != nil {
			return err
		}
		defer cleanup()
		return p.Atoms.EmbedTags(ctx, path, tags, staged)
	default:
		return nil
	}
}

// stageCover writes the size-bounded cover next to path for the external
// tagging pass, so every tag strategy embeds the same resized image. An
// empty result means no usable cover.
func (p *Processor) stageCover(ctx context.Context, path, coverPath string) (string, func(), error) {
	cover := p.loadCover(ctx, coverPath)
	if len(cover) == 0 {
		return "", func() {}, nil
	}
	staged := strings.TrimSuffix(path, filepath.Ext(path)) + ".cover.jpg"
	if err := os.WriteFile(staged, cover, 0o644); err != nil {
		return "", func() {}, err
	}
	return staged, func() { os.Remove(staged) }, nil
}

// loadCover reads the album cover from disk, bounded to coverMaxSize for
// embedding. A missing or undecodable cover is not an error; the raw
// bytes (or nothing) are used instead.
func (p *Processor) loadCover(ctx context.Context, coverPath string) []byte {
	if coverPath == "" {
		return nil
	}
	data, err := os.ReadFile(coverPath)
	if err != nil {
		return nil
	}
	if p.Images != nil {
		if resized, err := p.Images.ResizeImage(ctx, data, coverMaxSize, coverMaxSize); err == nil {
			data = resized
		}
	}
	return data
}
