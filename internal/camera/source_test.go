package camera

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func TestFileSourceReadsDirectoryInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "a.png"), 1, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	src, err := NewFileSource(dir)
	require.NoError(t, err)
	defer src.Close()

	img, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, filepath.Join(dir, "a.png"), src.Current())

	img, err = src.Read()
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	_, err = src.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileSourceRejectsMissingPath(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrOpen)
}

func TestFileSourceRejectsEmptyDirectory(t *testing.T) {
	_, err := NewFileSource(t.TempDir())
	assert.ErrorIs(t, err, ErrOpen)
}

func TestFileSourceCorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	src, err := NewFileSource(path)
	require.NoError(t, err)

	_, err = src.Read()
	assert.ErrorIs(t, err, ErrNoFrame)
}
