// Package app wires the capture pipeline together: grab pixels, name
// the file, organize and write it, record it in the catalog, and
// optionally hand it to the clipboard. Commands and the tray event
// loop both drive the same App.
package app

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/snapvault/snapvault/internal/capture"
	"github.com/snapvault/snapvault/internal/catalog"
	"github.com/snapvault/snapvault/internal/clipboard"
	"github.com/snapvault/snapvault/internal/config"
	"github.com/snapvault/snapvault/internal/logging"
	"github.com/snapvault/snapvault/internal/naming"
	"github.com/snapvault/snapvault/internal/storage"
	"github.com/snapvault/snapvault/internal/window"
)

// Clipboard abstracts the system clipboard for testability.
type Clipboard interface {
	WriteImage(img image.Image) error
	WriteText(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteImage(img image.Image) error { return clipboard.WriteImage(img) }
func (systemClipboard) WriteText(text string) error      { return clipboard.WriteText(text) }

// App holds the long-lived dependencies of the capture pipeline.
type App struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	windows window.Provider
	clip    Clipboard
	logger  logging.Logger

	grab func(capture.Request) (*image.RGBA, error)
	now  func() time.Time
}

// Option customizes an App. Used by tests to stub out hardware.
type Option func(*App)

// WithClipboard replaces the system clipboard.
func WithClipboard(clip Clipboard) Option {
	return func(a *App) { a.clip = clip }
}

// WithGrabber replaces the screen grabber.
func WithGrabber(grab func(capture.Request) (*image.RGBA, error)) Option {
	return func(a *App) { a.grab = grab }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New builds an App around the given configuration, catalog, and
// window provider.
func New(cfg *config.Config, cat *catalog.Catalog, windows window.Provider, logger logging.Logger, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		catalog: cat,
		windows: windows,
		clip:    systemClipboard{},
		logger:  logger,
		grab:    capture.Grab,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CaptureOptions adjust a single capture.
type CaptureOptions struct {
	// ToClipboard copies the captured image to the clipboard in
	// addition to (or, with OutputPath "-", instead of) saving it.
	ToClipboard bool
	// OutputPath, when set, bypasses naming and organization and
	// writes to the exact path given. "-" means clipboard only, no
	// file.
	OutputPath string
	// Region is the rectangle for region captures.
	Region image.Rectangle
}

// Result describes a finished capture.
type Result struct {
	// Path of the saved file, empty for clipboard-only captures.
	Path string
	// Record is the catalog row, zero when nothing was saved.
	Record catalog.Record
	// Copied reports whether the image landed on the clipboard.
	Copied bool
}

// Capture grabs the screen in the given mode and runs the save
// pipeline. Mode is one of the catalog capture modes.
func (a *App) Capture(mode string, opts CaptureOptions) (Result, error) {
	var req capture.Request
	windowTitle := ""

	switch mode {
	case catalog.ModeFullscreen:
		req = capture.Fullscreen()
	case catalog.ModeWindow:
		info := a.windows.Active()
		windowTitle = info.Title
		req = capture.Window(info.Bounds)
	case catalog.ModeRegion:
		req = capture.Region(opts.Region)
	default:
		return Result{}, fmt.Errorf("app: unknown capture mode %q", mode)
	}

	img, err := a.grab(req)
	if err != nil {
		return Result{}, err
	}
	a.logger.Debug("captured", "mode", mode, "bounds", img.Bounds().String())

	return a.finish(img, windowTitle, mode, opts)
}

func (a *App) finish(img image.Image, windowTitle, mode string, opts CaptureOptions) (Result, error) {
	var result Result

	copyWanted := opts.ToClipboard || a.cfg.GetBool("clipboard.copy_on_capture", false)
	saveWanted := opts.OutputPath != "-"
	if copyWanted && !a.cfg.GetBool("clipboard.save_and_copy", true) {
		saveWanted = opts.OutputPath != "" && opts.OutputPath != "-"
	}

	if saveWanted {
		path, rec, err := a.save(img, windowTitle, mode, opts.OutputPath)
		if err != nil {
			return Result{}, err
		}
		result.Path = path
		result.Record = rec
	}

	if copyWanted {
		if err := a.clip.WriteImage(img); err != nil {
			// A failed copy does not undo a successful save.
			if result.Path == "" {
				return Result{}, err
			}
			a.logger.Warn("clipboard copy failed", "error", err)
		} else {
			result.Copied = true
		}
	}

	if !saveWanted && !copyWanted {
		return Result{}, fmt.Errorf("app: capture discarded, neither save nor clipboard requested")
	}
	return result, nil
}

// save runs naming, organization, collision resolution, the atomic
// write, and the catalog insert.
func (a *App) save(img image.Image, windowTitle, mode, explicitPath string) (string, catalog.Record, error) {
	format := a.cfg.Get("storage.format", "png")
	now := a.now()

	var path string
	if explicitPath != "" {
		if err := os.MkdirAll(filepath.Dir(explicitPath), config.FileModeDir); err != nil {
			return "", catalog.Record{}, fmt.Errorf("app: create output directory: %w", err)
		}
		path = explicitPath
	} else {
		pattern := a.cfg.Get("storage.naming_pattern", naming.WindowToken)
		filename := naming.Generate(now, windowTitle, pattern, format)

		root := a.cfg.Get("storage.save_location", "")
		organizeBy := a.cfg.Get("storage.organize_by", storage.OrganizeDate)
		candidate, err := storage.SavePath(root, filename, organizeBy, now)
		if err != nil {
			return "", catalog.Record{}, err
		}
		path = storage.ResolveCollision(candidate)
	}

	if err := storage.WriteImage(path, img, format); err != nil {
		return "", catalog.Record{}, err
	}

	bounds := img.Bounds()
	rec := catalog.Record{
		Filename:    filepath.Base(path),
		Filepath:    path,
		WindowName:  windowTitle,
		CaptureMode: mode,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		FileSize:    fileSize(path),
	}
	if err := a.catalog.Insert(&rec); err != nil {
		return "", catalog.Record{}, err
	}

	a.logger.Info("capture saved", "path", path, "mode", mode, "bytes", rec.FileSize)
	return path, rec, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// History lists catalogued captures, newest first, optionally filtered
// by a search term. Limit is clamped to history.max_items.
func (a *App) History(limit, offset int, term string) ([]catalog.Record, error) {
	maxItems := a.cfg.GetInt("history.max_items", 1000)
	if limit <= 0 || limit > maxItems {
		limit = maxItems
	}
	return a.catalog.List(limit, offset, term)
}

// Delete removes one capture and its file. Returns false when the id
// is unknown.
func (a *App) Delete(id int64) (bool, error) {
	return a.catalog.Delete(id)
}

// CopyPath puts a saved capture's path on the clipboard.
func (a *App) CopyPath(id int64) (string, error) {
	rec, err := a.catalog.Get(id)
	if err != nil {
		return "", err
	}
	if err := a.clip.WriteText(rec.Filepath); err != nil {
		return "", err
	}
	return rec.Filepath, nil
}

// Sweep removes captures older than days. With dryRun it only reports
// how many would go.
func (a *App) Sweep(days int, dryRun bool) (int, error) {
	if days <= 0 {
		days = a.cfg.GetInt("auto_delete.days_to_keep", 30)
	}
	if dryRun {
		return a.catalog.SweepCandidates(days)
	}
	removed, err := a.catalog.Sweep(days)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		a.logger.Info("retention sweep removed captures", "count", removed, "days", days)
	}
	return removed, nil
}

// AutoSweep runs a retention sweep if auto_delete.enabled is set.
// Sweep failures are logged, not fatal.
func (a *App) AutoSweep() {
	if !a.cfg.GetBool("auto_delete.enabled", false) {
		return
	}
	days := a.cfg.GetInt("auto_delete.days_to_keep", 30)
	if _, err := a.catalog.Sweep(days); err != nil {
		a.logger.Error("auto sweep failed", "error", err)
	}
}
