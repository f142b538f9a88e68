// Package capture grabs pixels off the screen. It wraps
// github.com/kbinani/screenshot behind a small request type so callers
// name what they want captured instead of computing rectangles.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Kind selects what a Request captures.
type Kind int

const (
	// KindFullscreen captures the union of all active displays.
	KindFullscreen Kind = iota
	// KindWindow captures the bounds of a single window.
	KindWindow
	// KindRegion captures an arbitrary screen rectangle.
	KindRegion
)

func (k Kind) String() string {
	switch k {
	case KindFullscreen:
		return "fullscreen"
	case KindWindow:
		return "window"
	case KindRegion:
		return "region"
	default:
		return "unknown"
	}
}

// Request describes one capture. Build it with Fullscreen, Window or
// Region rather than by hand.
type Request struct {
	Kind   Kind
	Bounds image.Rectangle
}

// Fullscreen requests the whole virtual screen.
func Fullscreen() Request {
	return Request{Kind: KindFullscreen}
}

// Window requests the given window rectangle. An empty rectangle means
// the window geometry could not be determined; Grab falls back to a
// fullscreen capture in that case.
func Window(bounds image.Rectangle) Request {
	return Request{Kind: KindWindow, Bounds: bounds}
}

// Region requests an arbitrary screen rectangle.
func Region(bounds image.Rectangle) Request {
	return Request{Kind: KindRegion, Bounds: bounds}
}

// Grab executes the request and returns the captured bitmap.
func Grab(req Request) (*image.RGBA, error) {
	switch req.Kind {
	case KindFullscreen:
		return grabFullscreen()
	case KindWindow:
		if req.Bounds.Empty() {
			return grabFullscreen()
		}
		return grabRect(req.Bounds)
	case KindRegion:
		if req.Bounds.Empty() {
			return nil, fmt.Errorf("capture: empty region %v", req.Bounds)
		}
		return grabRect(req.Bounds)
	default:
		return nil, fmt.Errorf("capture: unknown request kind %d", req.Kind)
	}
}

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("capture: no active displays")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

func grabFullscreen() (*image.RGBA, error) {
	bounds, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	return grabRect(bounds)
}

func grabRect(bounds image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture: grab %v: %w", bounds, err)
	}
	return img, nil
}
