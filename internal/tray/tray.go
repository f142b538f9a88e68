// Package tray runs the system tray icon and menu. Menu clicks are
// forwarded to the event loop; the tray also implements the loop's
// Notifier so capture outcomes show up in the tooltip.
package tray

import (
	"fmt"

	"github.com/getlantern/systray"

	"github.com/snapvault/snapvault/internal/eventloop"
	"github.com/snapvault/snapvault/internal/logging"
)

const defaultTooltip = "snapvault"

// Tray owns the systray lifecycle.
type Tray struct {
	loop   *eventloop.Loop
	logger logging.Logger
	onQuit func()

	// OnHistory, when set, adds a History menu item and runs on click.
	OnHistory func()
}

// New creates a Tray that forwards menu actions to loop. onQuit runs
// when the user picks Quit or the tray shuts down.
func New(loop *eventloop.Loop, logger logging.Logger, onQuit func()) *Tray {
	return &Tray{loop: loop, logger: logger, onQuit: onQuit}
}

// Run blocks running the tray. It must be called on the main
// goroutine; some platforms require the UI thread.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit tears the tray down.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("snapvault")
	systray.SetTooltip(defaultTooltip)

	mQuick := systray.AddMenuItem("Capture screen", "Capture the full screen")
	mWindow := systray.AddMenuItem("Capture window", "Capture the active window")
	mRegion := systray.AddMenuItem("Capture region", "Select a region to capture")
	systray.AddSeparator()
	mHistory := systray.AddMenuItem("History", "Open the capture folder")
	mQuit := systray.AddMenuItem("Quit", "Quit snapvault")

	go func() {
		for {
			select {
			case <-mQuick.ClickedCh:
				t.loop.Trigger(eventloop.ActionQuickCapture)
			case <-mWindow.ClickedCh:
				t.loop.Trigger(eventloop.ActionWindowCapture)
			case <-mRegion.ClickedCh:
				t.loop.Trigger(eventloop.ActionRegionCapture)
			case <-mHistory.ClickedCh:
				if t.OnHistory != nil {
					t.OnHistory()
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	if t.onQuit != nil {
		t.onQuit()
	}
}

// CaptureDone implements eventloop.Notifier.
func (t *Tray) CaptureDone(path string) {
	systray.SetTooltip(fmt.Sprintf("%s\nlast capture: %s", defaultTooltip, path))
}

// CaptureFailed implements eventloop.Notifier.
func (t *Tray) CaptureFailed(err error) {
	systray.SetTooltip(fmt.Sprintf("%s\ncapture failed: %v", defaultTooltip, err))
}

// Busy implements eventloop.Notifier.
func (t *Tray) Busy(busy bool) {
	if busy {
		systray.SetTooltip(defaultTooltip + ": capturing...")
	}
}
