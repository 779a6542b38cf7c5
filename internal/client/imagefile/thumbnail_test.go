package imagefile

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

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail_ScalesDownKeepingRatio(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Thumbnail(bytes.NewReader(pngImage(t, 600, 400)), &out, 300))

	cfg, err := jpeg.DecodeConfig(&out)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestThumbnail_SmallImageNotEnlarged(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Thumbnail(bytes.NewReader(pngImage(t, 120, 80)), &out, 300))

	cfg, err := jpeg.DecodeConfig(&out)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
}

func TestThumbnail_Errors(t *testing.T) {
	var out bytes.Buffer
	require.ErrorIs(t, Thumbnail(strings.NewReader("x"), &out, 0), ErrBadThumbnailWidth)

	err := Thumbnail(strings.NewReader("not an image"), &out, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}
