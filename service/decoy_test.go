package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/krex38/subgate/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x) * seed, G: uint8(y), B: seed, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image, level png.CompressionLevel) []byte {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: level}
	require.NoError(t, enc.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecoyRegisterIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDecoyStore(dir)
	require.NoError(t, err)

	img := encodePNG(t, testImage(3), png.DefaultCompression)
	hash1, err := s.RegisterDecoy(img)
	require.NoError(t, err)
	hash2, err := s.RegisterDecoy(img)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)

	// one content-addressed artifact, no duplicate growth
	entries, err := os.ReadDir(filepath.Join(dir, "watermarks"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, hash1+".png", entries[0].Name())
}

func TestDecoyKnownForIdenticalBytes(t *testing.T) {
	s, err := NewDecoyStore(t.TempDir())
	require.NoError(t, err)

	img := encodePNG(t, testImage(3), png.DefaultCompression)
	_, err = s.RegisterDecoy(img)
	require.NoError(t, err)

	known, err := s.IsKnownDecoy(append([]byte(nil), img...))
	require.NoError(t, err)
	assert.True(t, known)
}

func TestDecoyKnownForSameNormalizedPixels(t *testing.T) {
	s, err := NewDecoyStore(t.TempDir())
	require.NoError(t, err)

	// same pixel content, different file bytes
	img := testImage(3)
	_, err = s.RegisterDecoy(encodePNG(t, img, png.BestCompression))
	require.NoError(t, err)

	known, err := s.IsKnownDecoy(encodePNG(t, img, png.NoCompression))
	require.NoError(t, err)
	assert.True(t, known)
}

func TestDecoyUnknownForDistinctContent(t *testing.T) {
	s, err := NewDecoyStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.RegisterDecoy(encodePNG(t, testImage(3), png.DefaultCompression))
	require.NoError(t, err)

	known, err := s.IsKnownDecoy(encodePNG(t, testImage(7), png.DefaultCompression))
	require.NoError(t, err)
	assert.False(t, known)
}

func TestDecoyMalformedImage(t *testing.T) {
	s, err := NewDecoyStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.RegisterDecoy([]byte("definitely not an image"))
	assert.ErrorIs(t, err, model.DecodeErr)
	_, err = s.IsKnownDecoy([]byte("definitely not an image"))
	assert.ErrorIs(t, err, model.DecodeErr)
}

func TestDecoySetSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDecoyStore(dir)
	require.NoError(t, err)
	img := encodePNG(t, testImage(3), png.DefaultCompression)
	_, err = s.RegisterDecoy(img)
	require.NoError(t, err)

	reopened, err := NewDecoyStore(dir)
	require.NoError(t, err)
	known, err := reopened.IsKnownDecoy(img)
	require.NoError(t, err)
	assert.True(t, known)
}
