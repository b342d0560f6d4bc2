package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessAvatar(t *testing.T) {
	out, err := ProcessAvatar(bytes.NewReader(pngOf(t, 640, 400)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, AvatarSize, cfg.Width)
	assert.Equal(t, AvatarSize, cfg.Height)
}

func TestProcessAvatar_Rejects(t *testing.T) {
	_, err := ProcessAvatar(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = ProcessAvatar(bytes.NewReader(make([]byte, MaxAvatarBytes+1)))
	assert.ErrorIs(t, err, ErrImageTooBig)
}

func TestCenterSquare(t *testing.T) {
	assert.Equal(t, image.Rect(120, 0, 520, 400), centerSquare(image.Rect(0, 0, 640, 400)))
	assert.Equal(t, image.Rect(0, 50, 100, 150), centerSquare(image.Rect(0, 0, 100, 200)))
	assert.Equal(t, image.Rect(0, 0, 10, 10), centerSquare(image.Rect(0, 0, 10, 10)))
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore("/api/public/avatars/")
	url, err := m.Put(context.Background(), "barbers/1.webp", []byte("x"), "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "/api/public/avatars/barbers/1.webp", url)

	o, ok := m.Get("barbers/1.webp")
	require.True(t, ok)
	assert.Equal(t, "image/webp", o.ContentType)
}
