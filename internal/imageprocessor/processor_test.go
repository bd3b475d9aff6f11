package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

func TestThumbnail_JPEGLandscape(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, jpeg.Encode(&src, solid(1200, 800), nil))

	thumb, err := NewProcessor(80).Thumbnail(&src, HeadshotThumbnailSize)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", thumb.ContentType)
	assert.Equal(t, ".jpg", thumb.Ext)
	assert.Equal(t, 400, thumb.Width)
	assert.Equal(t, 266, thumb.Height)

	w, h, format, err := DecodeConfig(bytes.NewReader(thumb.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, w)
	assert.Equal(t, 266, h)
}

func TestThumbnail_PNGPortraitStaysPNG(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, solid(300, 900)))

	thumb, err := NewProcessor(0).Thumbnail(&src, 400)
	require.NoError(t, err)

	assert.Equal(t, "image/png", thumb.ContentType)
	assert.Equal(t, 133, thumb.Width)
	assert.Equal(t, 400, thumb.Height)
}

func TestThumbnail_SmallImageNotUpscaled(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, solid(120, 80)))

	thumb, err := NewProcessor(85).Thumbnail(&src, 400)
	require.NoError(t, err)
	assert.Equal(t, 120, thumb.Width)
	assert.Equal(t, 80, thumb.Height)
}

func TestThumbnail_NotAnImage(t *testing.T) {
	_, err := NewProcessor(85).Thumbnail(strings.NewReader("%PDF-1.4"), 400)
	assert.Error(t, err)
}
