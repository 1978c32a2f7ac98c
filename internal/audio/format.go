package audio

import (
	"bytes"
	"io"
	"os"
)

// Format is the detected container/codec family of an audio file.
//
// Detection reads the file's leading bytes instead of trusting the
// URL-derived extension, since origin metadata can lie about the format.
type Format int

const (
	FormatUnknown Format = iota

	// FormatFLAC is the compressed lossless target format.
	FormatFLAC

	// FormatWAV is the uncompressed intermediate the origin serves for
	// some tracks; it is transcoded to FLAC after download.
	FormatWAV

	FormatMP3
	FormatM4A
)

func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "flac"
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	default:
		return "unknown"
	}
}

// tagStrategy selects the tag-writing mechanism for a container family.
type tagStrategy int

const (
	tagNone tagStrategy = iota

	// tagID3 writes ID3v2 frames (MP3).
	tagID3

	// tagVorbis writes a FLAC Vorbis comment block plus picture block.
	tagVorbis

	// tagAtoms rewrites MP4 metadata atoms via an external ffmpeg pass.
	tagAtoms
)

// formatTraits is the closed lookup table mapping each format to whether
// it needs transcoding and which tag strategy applies afterwards.
var formatTraits = map[Format]struct {
	transcode bool
	tags      tagStrategy
}{
	FormatFLAC:    {transcode: false, tags: tagVorbis},
	FormatWAV:     {transcode: true, tags: tagVorbis},
	FormatMP3:     {transcode: false, tags: tagID3},
	FormatM4A:     {transcode: false, tags: tagAtoms},
	FormatUnknown: {transcode: false, tags: tagNone},
}

// DetectFormat sniffs the container format from the file's magic bytes.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, err
	}
	return sniffFormat(header[:n]), nil
}

func sniffFormat(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FormatFLAC
	case len(header) >= 12 && bytes.HasPrefix(header, []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(header, []byte("ID3")):
		return FormatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// Bare MPEG audio frame sync, no ID3 header.
		return FormatMP3
	case len(header) >= 8 && bytes.Equal(header[4:8], []byte("ftyp")):
		return FormatM4A
	default:
		return FormatUnknown
	}
}
