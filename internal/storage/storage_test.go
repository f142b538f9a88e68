package storage

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

func TestSavePathDateMode(t *testing.T) {
	root := t.TempDir()

	path, err := SavePath(root, "shot.png", OrganizeDate, testTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2026", "03", "14", "shot.png"), path)

	// Directory must exist after the call.
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSavePathApplicationMode(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		filename string
		wantDir  string
	}{
		{"20260314_150926_Firefox.png", "Firefox"},
		{"plain.png", "unknown"},
		{"trailing_.png", "unknown"},
	}
	for _, tt := range tests {
		path, err := SavePath(root, tt.filename, OrganizeApplication, testTime)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, tt.wantDir, tt.filename), path)
	}
}

func TestSavePathNoneMode(t *testing.T) {
	root := t.TempDir()

	path, err := SavePath(root, "shot.png", OrganizeNone, testTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "shot.png"), path)
}

func TestSavePathIsIdempotent(t *testing.T) {
	root := t.TempDir()

	first, err := SavePath(root, "shot.png", OrganizeDate, testTime)
	require.NoError(t, err)
	second, err := SavePath(root, "shot.png", OrganizeDate, testTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSavePathPermissionError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0555))
	t.Cleanup(func() { _ = os.Chmod(root, 0755) })

	_, err := SavePath(root, "shot.png", OrganizeDate, testTime)
	assert.Error(t, err)
}

func TestResolveCollisionFreePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	assert.Equal(t, path, ResolveCollision(path))
}

func TestResolveCollisionAppendsSuffixes(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "shot.png")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0644))

	got := ResolveCollision(base)
	assert.Equal(t, filepath.Join(dir, "shot_1.png"), got)

	require.NoError(t, os.WriteFile(got, []byte("x"), 0644))
	assert.Equal(t, filepath.Join(dir, "shot_2.png"), ResolveCollision(base))
}

func TestWriteImageFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	for _, format := range []string{"png", "jpg", "bmp"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shot."+format)
			require.NoError(t, WriteImage(path, img, format))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestWriteImageUnsupportedFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	path := filepath.Join(t.TempDir(), "shot.gif")

	err := WriteImage(path, img, "gif")
	require.Error(t, err)
	// No stray file may be left behind.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
