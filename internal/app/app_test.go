package app

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/snapvault/snapvault/internal/capture"
	"github.com/snapvault/snapvault/internal/catalog"
	"github.com/snapvault/snapvault/internal/config"
	"github.com/snapvault/snapvault/internal/logging"
	"github.com/snapvault/snapvault/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	images int
	texts  []string
	fail   bool
}

func (f *fakeClipboard) WriteImage(image.Image) error {
	if f.fail {
		return assert.AnError
	}
	f.images++
	return nil
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.fail {
		return assert.AnError
	}
	f.texts = append(f.texts, text)
	return nil
}

type fixture struct {
	app     *App
	cfg     *config.Config
	catalog *catalog.Catalog
	clip    *fakeClipboard
	saveDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	saveDir := t.TempDir()
	t.Setenv("SNAPVAULT_CONFIG_PATH", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("SNAPVAULT_STATE_DIR", t.TempDir())

	cfg := config.Load()
	require.NoError(t, cfg.Set("storage.save_location", saveDir))
	require.NoError(t, cfg.Set("storage.organize_by", "none"))
	require.NoError(t, cfg.Set("storage.naming_pattern", "shot_{window}"))

	cat, err := catalog.Open(cfg.CatalogPath(), logging.Noop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cat.Close() })

	clip := &fakeClipboard{}
	windows := &window.StaticProvider{Info: window.Info{
		Title:  "Editor",
		Bounds: image.Rect(0, 0, 640, 480),
	}}
	grab := func(req capture.Request) (*image.RGBA, error) {
		bounds := req.Bounds
		if bounds.Empty() {
			bounds = image.Rect(0, 0, 100, 50)
		}
		return image.NewRGBA(bounds), nil
	}
	clock := func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	}

	a := New(cfg, cat, windows, logging.Noop(),
		WithClipboard(clip), WithGrabber(grab), WithClock(clock))

	return &fixture{app: a, cfg: cfg, catalog: cat, clip: clip, saveDir: saveDir}
}

func TestCaptureFullscreenSavesAndCatalogs(t *testing.T) {
	f := newFixture(t)

	result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(f.saveDir, "shot_screen.png"), result.Path)
	assert.FileExists(t, result.Path)
	assert.False(t, result.Copied)

	assert.NotZero(t, result.Record.ID)
	assert.Equal(t, 100, result.Record.Width)
	assert.Equal(t, 50, result.Record.Height)
	assert.Positive(t, result.Record.FileSize)
	assert.Equal(t, catalog.ModeFullscreen, result.Record.CaptureMode)
}

func TestCaptureWindowUsesProviderTitle(t *testing.T) {
	f := newFixture(t)

	result, err := f.app.Capture(catalog.ModeWindow, CaptureOptions{})
	require.NoError(t, err)

	assert.Equal(t, "shot_Editor.png", result.Record.Filename)
	assert.Equal(t, "Editor", result.Record.WindowName)
	assert.Equal(t, 640, result.Record.Width)
}

func TestCaptureRegion(t *testing.T) {
	f := newFixture(t)

	result, err := f.app.Capture(catalog.ModeRegion, CaptureOptions{
		Region: image.Rect(10, 10, 210, 110),
	})
	require.NoError(t, err)
	assert.Equal(t, 200, result.Record.Width)
	assert.Equal(t, 100, result.Record.Height)
	assert.Equal(t, catalog.ModeRegion, result.Record.CaptureMode)
}

func TestCaptureRejectsUnknownMode(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Capture("panorama", CaptureOptions{})
	assert.Error(t, err)
}

func TestRepeatedCapturesGetCollisionSuffixes(t *testing.T) {
	f := newFixture(t)

	// Fixed clock: all three captures produce the same base filename.
	var paths []string
	for i := 0; i < 3; i++ {
		result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
		require.NoError(t, err)
		paths = append(paths, filepath.Base(result.Path))
	}

	assert.Equal(t, []string{"shot_screen.png", "shot_screen_1.png", "shot_screen_2.png"}, paths)

	count, err := f.catalog.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCaptureToExplicitPath(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "sub", "named.png")

	result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.Path)
	assert.FileExists(t, out)
	assert.Equal(t, "named.png", result.Record.Filename)
}

func TestCaptureClipboardOnly(t *testing.T) {
	f := newFixture(t)

	result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{
		ToClipboard: true,
		OutputPath:  "-",
	})
	require.NoError(t, err)

	assert.True(t, result.Copied)
	assert.Empty(t, result.Path)
	assert.Equal(t, 1, f.clip.images)

	count, err := f.catalog.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "clipboard-only capture must not be catalogued")

	entries, err := os.ReadDir(f.saveDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyOnCaptureConfig(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cfg.Set("clipboard.copy_on_capture", "true"))

	result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
	require.NoError(t, err)
	assert.True(t, result.Copied)
	assert.NotEmpty(t, result.Path)
}

func TestClipboardFailureDoesNotUndoSave(t *testing.T) {
	f := newFixture(t)
	f.clip.fail = true

	result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{ToClipboard: true})
	require.NoError(t, err)
	assert.False(t, result.Copied)
	assert.FileExists(t, result.Path)
}

func TestHistoryAndDelete(t *testing.T) {
	f := newFixture(t)

	first, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
	require.NoError(t, err)
	_, err = f.app.Capture(catalog.ModeWindow, CaptureOptions{})
	require.NoError(t, err)

	records, err := f.app.History(0, 0, "")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = f.app.History(0, 0, "editor")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Editor", records[0].WindowName)

	ok, err := f.app.Delete(first.Record.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoFileExists(t, first.Path)

	ok, err = f.app.Delete(first.Record.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCopyPath(t *testing.T) {
	f := newFixture(t)

	result, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
	require.NoError(t, err)

	path, err := f.app.CopyPath(result.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Path, path)
	assert.Equal(t, []string{result.Path}, f.clip.texts)

	_, err = f.app.CopyPath(9999)
	assert.ErrorIs(t, err, catalog.ErrRecordNotFound)
}

func TestSweepDryRun(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
	require.NoError(t, err)

	// Fresh capture: nothing is old enough to sweep.
	candidates, err := f.app.Sweep(30, true)
	require.NoError(t, err)
	assert.Zero(t, candidates)

	count, err := f.catalog.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAutoSweepDisabledByDefault(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Capture(catalog.ModeFullscreen, CaptureOptions{})
	require.NoError(t, err)

	f.app.AutoSweep()

	count, err := f.catalog.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
