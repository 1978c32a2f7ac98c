package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlbumPaths(t *testing.T) {
	album := NewAlbum("0123", "Vigil", []string{"Some Artist"}, "https://cdn.example/cover.png", "https://cdn.example/bg.png", "out")

	assert.Equal(t, filepath.Join("out", "songs", "0123 - Vigil"), album.Dir)
	assert.Equal(t, filepath.Join(album.Dir, "cover.jpg"), album.CoverPath)
	assert.Equal(t, filepath.Join(album.Dir, "background.jpg"), album.BackgroundPath)
	assert.True(t, album.HasCover())
}

func TestAlbumWithoutImages(t *testing.T) {
	album := NewAlbum("0456", "Untold", nil, "", "", "out")

	assert.False(t, album.HasCover())
	assert.Empty(t, album.CoverPath)
	assert.Empty(t, album.BackgroundPath)
}

func TestAlbumDirSanitized(t *testing.T) {
	album := NewAlbum("0789", "Lone/Trail: Part 1...", nil, "", "", "out")

	assert.Equal(t, filepath.Join("out", "songs", "0789 - Lone Trail Part 1"), album.Dir)
}

func TestTrackPath(t *testing.T) {
	album := NewAlbum("0123", "Vigil", nil, "", "", "out")
	track := NewTrack(album, "887563", 3, "Dreams Lit Alight", []string{"Some Artist"}, "https://cdn.example/audio/dreams.wav")

	assert.Equal(t, filepath.Join(album.Dir, "03 - Dreams Lit Alight.wav"), track.Path)
}

func TestTrackPathDefaultExtension(t *testing.T) {
	tests := []struct {
		name      string
		sourceURL string
		wantExt   string
	}{
		{"extension from url path", "https://cdn.example/a/song.flac", ".flac"},
		{"query string ignored", "https://cdn.example/a/song.mp3?sig=abc", ".mp3"},
		{"no extension", "https://cdn.example/a/song", ".m4a"},
		{"unparseable url", "://nope", ".m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := NewAlbum("1", "A", nil, "", "", "out")
			track := NewTrack(album, "s1", 1, "T", nil, tt.sourceURL)
			assert.Equal(t, tt.wantExt, filepath.Ext(track.Path))
		})
	}
}

func TestDistinctTracksGetDistinctPaths(t *testing.T) {
	album := NewAlbum("0123", "Vigil", nil, "", "", "out")

	a := NewTrack(album, "s1", 1, "Opening", nil, "https://cdn.example/one.wav")
	b := NewTrack(album, "s2", 2, "Opening", nil, "https://cdn.example/one.wav")
	c := NewTrack(album, "s3", 1, "Closing", nil, "https://cdn.example/one.wav")

	assert.NotEqual(t, a.Path, b.Path)
	assert.NotEqual(t, a.Path, c.Path)
	assert.NotEqual(t, b.Path, c.Path)
}
