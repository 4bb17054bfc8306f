package filesystem

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestImageStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewImageStorage(dir, "/uploads/", 1<<20)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "My Photo.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/My-Photo_"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	_, err = os.Stat(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(context.Background(), url))
}

func TestImageStorage_RejectsNonImages(t *testing.T) {
	s, err := NewImageStorage(t.TempDir(), "/uploads", 1<<20)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "notes.png", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestImageStorage_RejectsLargeFiles(t *testing.T) {
	data := pngBytes(t)
	s, err := NewImageStorage(t.TempDir(), "/uploads", int64(len(data)-1))
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "big.png", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
