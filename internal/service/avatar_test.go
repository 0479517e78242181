package service

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAvatar_ResizesLargeImage(t *testing.T) {
	out := NormalizeAvatar(pngBytes(t, 800, 400), 200)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestNormalizeAvatar_KeepsSmallImageSize(t *testing.T) {
	out := NormalizeAvatar(pngBytes(t, 64, 48), 512)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestNormalizeAvatar_PassesThroughUndecodable(t *testing.T) {
	data := []byte("definitely not an image")

	assert.Equal(t, data, NormalizeAvatar(data, 512))
}
