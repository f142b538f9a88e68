// Package eventloop is the single-goroutine coordinator behind the
// tray. Hotkey activations and tray menu clicks arrive on channels;
// captures run one at a time on a worker goroutine with a busy guard,
// so overlapping requests are dropped instead of queued.
package eventloop

import (
	"context"
	"fmt"
	"image"

	"github.com/snapvault/snapvault/internal/app"
	"github.com/snapvault/snapvault/internal/capture"
	"github.com/snapvault/snapvault/internal/catalog"
	"github.com/snapvault/snapvault/internal/hotkey"
	"github.com/snapvault/snapvault/internal/logging"
	"github.com/snapvault/snapvault/internal/selector"
)

// Actions accepted by the loop. They double as hotkey binding names.
const (
	ActionQuickCapture  = "quick_capture"
	ActionWindowCapture = "window_capture"
	ActionRegionCapture = "region_capture"
)

const actionBuffer = 4

// Selector picks a screen region interactively. ok is false when the
// user cancelled.
type Selector func(screen image.Rectangle) (image.Rectangle, bool, error)

// Notifier receives capture outcomes, for tray tooltips.
type Notifier interface {
	CaptureDone(path string)
	CaptureFailed(err error)
	Busy(busy bool)
}

type noopNotifier struct{}

func (noopNotifier) CaptureDone(string)  {}
func (noopNotifier) CaptureFailed(error) {}
func (noopNotifier) Busy(bool)           {}

type outcome struct {
	path string
	err  error
}

// Loop coordinates hotkeys, tray actions, and the capture pipeline.
type Loop struct {
	app      *app.App
	logger   logging.Logger
	hotkeys  *hotkey.Listener
	selector Selector
	notifier Notifier

	actions chan string
	results chan outcome
	busy    bool
}

// Option customizes a Loop.
type Option func(*Loop)

// WithSelector replaces the interactive region selector.
func WithSelector(sel Selector) Option {
	return func(l *Loop) { l.selector = sel }
}

// WithNotifier attaches an outcome notifier.
func WithNotifier(n Notifier) Option {
	return func(l *Loop) { l.notifier = n }
}

// WithHotkeys attaches a started-elsewhere hotkey listener whose
// binding names are the loop actions.
func WithHotkeys(h *hotkey.Listener) Option {
	return func(l *Loop) { l.hotkeys = h }
}

// SetNotifier attaches an outcome notifier. Must be called before Run.
func (l *Loop) SetNotifier(n Notifier) {
	l.notifier = n
}

// New creates a Loop around the capture pipeline.
func New(a *app.App, logger logging.Logger, opts ...Option) *Loop {
	l := &Loop{
		app:      a,
		logger:   logger,
		selector: selector.Pick,
		notifier: noopNotifier{},
		actions:  make(chan string, actionBuffer),
		results:  make(chan outcome, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Trigger posts an action into the loop without blocking. Actions that
// arrive while the buffer is full are dropped.
func (l *Loop) Trigger(action string) {
	select {
	case l.actions <- action:
	default:
		l.logger.Warn("dropping action, loop backlogged", "action", action)
	}
}

// Run processes events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	var hotkeyEvents <-chan hotkey.Event
	if l.hotkeys != nil {
		hotkeyEvents = l.hotkeys.Events()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-hotkeyEvents:
			if !ok {
				hotkeyEvents = nil
				continue
			}
			l.dispatch(ev.Name)
		case action := <-l.actions:
			l.dispatch(action)
		case res := <-l.results:
			l.finish(res)
		}
	}
}

func (l *Loop) dispatch(action string) {
	if l.busy {
		l.logger.Debug("capture in progress, dropping action", "action", action)
		return
	}

	l.busy = true
	l.notifier.Busy(true)
	go func() {
		path, err := l.capture(action)
		l.results <- outcome{path: path, err: err}
	}()
}

func (l *Loop) finish(res outcome) {
	l.busy = false
	l.notifier.Busy(false)

	if res.err != nil {
		l.logger.Error("capture failed", "error", res.err)
		l.notifier.CaptureFailed(res.err)
		return
	}
	if res.path == "" {
		// Cancelled selection, nothing was captured.
		return
	}
	l.notifier.CaptureDone(res.path)
	l.app.AutoSweep()
}

func (l *Loop) capture(action string) (string, error) {
	var mode string
	opts := app.CaptureOptions{}

	switch action {
	case ActionQuickCapture:
		mode = catalog.ModeFullscreen
	case ActionWindowCapture:
		mode = catalog.ModeWindow
	case ActionRegionCapture:
		mode = catalog.ModeRegion
		screen, err := capture.VirtualBounds()
		if err != nil {
			return "", err
		}
		rect, ok, err := l.selector(screen)
		if err != nil {
			return "", err
		}
		if !ok {
			l.logger.Debug("region selection cancelled")
			return "", nil
		}
		opts.Region = rect
	default:
		return "", fmt.Errorf("eventloop: unknown action %q", action)
	}

	result, err := l.app.Capture(mode, opts)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}
