package photo_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electronjoe/PhotoMap/internal/photo"
)

func TestLoad(t *testing.T) {
	root := t.TempDir()
	album := filepath.Join(root, "trip")
	nested := filepath.Join(album, "day2")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	for _, name := range []string{
		filepath.Join(album, "b.JPG"),
		filepath.Join(album, "a.jpeg"),
		filepath.Join(album, "notes.txt"),
		filepath.Join(nested, "scan.tiff"),
		filepath.Join(nested, "clip.mov"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	photos := photo.Load([]string{album, filepath.Join(root, "missing")}, slog.Default())

	require.Len(t, photos, 3)
	assert.Equal(t, filepath.Join(album, "a.jpeg"), photos[0].FilePath)
	assert.Equal(t, filepath.Join(album, "b.JPG"), photos[1].FilePath)
	assert.Equal(t, filepath.Join(nested, "scan.tiff"), photos[2].FilePath)
	assert.Equal(t, int64(1), photos[0].Size)
	assert.False(t, photos[0].ModTime.IsZero())
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, photo.IsImageFile("a.jpg"))
	assert.True(t, photo.IsImageFile("a.JPEG"))
	assert.True(t, photo.IsImageFile("scan.TIF"))
	assert.False(t, photo.IsImageFile("a.png"))
	assert.False(t, photo.IsImageFile("README"))
}
