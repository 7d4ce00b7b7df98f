package imageenc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncode_PNG(t *testing.T) {
	data := tinyPNG(t)

	img, err := Encode("flash.png", "image/png", data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, int64(len(data)), img.Size)
	assert.True(t, strings.HasPrefix(img.DataURL, "data:image/png;base64,"))
}

func TestEncode_TooLargeReportsKB(t *testing.T) {
	data := make([]byte, 250*1024)

	_, err := Encode("sleeve.jpg", "image/jpeg", data)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "250.0KB")
	assert.Contains(t, err.Error(), "200KB")
}

func TestEncode_RejectsWrongType(t *testing.T) {
	_, err := Encode("notes.txt", "text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrInvalidMimeType)

	// declared type lies about the content
	_, err = Encode("fake.png", "image/png", []byte("GIF89a not really"))
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestEncode_Empty(t *testing.T) {
	_, err := Encode("empty.png", "image/png", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}
