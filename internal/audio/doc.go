// Package audio normalizes downloaded audio files and embeds metadata.
//
// # Format detection
//
// The container format is detected from the file's magic bytes, never
// from the extension. A closed lookup table maps each format to whether
// it needs transcoding and which tag-writing strategy applies:
//
//	FLAC -> keep, Vorbis comment + picture block
//	WAV  -> transcode to FLAC, then Vorbis comment
//	MP3  -> keep, ID3v2 frames
//	M4A  -> keep, MP4 atoms via ffmpeg
//
// # Transcoding
//
// WAV files are converted losslessly to FLAC with ffmpeg. The source is
// deleted only after the FLAC output is confirmed non-empty; a failed
// conversion leaves the raw download in place.
package audio
