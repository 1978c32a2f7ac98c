package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertToJPEG(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ConvertToJPEG(context.Background(), encodePNG(t, 10, 10))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 10, cfg.Width)
}

func TestConvertToJPEGRejectsGarbage(t *testing.T) {
	svc := NewImageService()

	_, err := svc.ConvertToJPEG(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestResizeImagePreservesAspectRatio(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ResizeImage(context.Background(), encodePNG(t, 300, 200), 150, 150)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestResizeImageKeepsSmallImages(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ResizeImage(context.Background(), encodePNG(t, 50, 40), 100, 100)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}
