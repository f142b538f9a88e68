// Package selection implements the drag state machine behind region
// captures. It is pure geometry: pointer events in, a normalized
// rectangle (or a cancellation) out. The caller owns the overlay
// window and feeds events from whatever windowing layer it uses.
package selection

// MinSpan is the smallest width and height, in pixels, a drag must
// exceed to count as a deliberate selection. Anything at or below it
// is treated as an accidental click and cancelled.
const MinSpan = 5

// State identifies where the machine is in a selection gesture.
type State int

const (
	// StateIdle means no drag is in progress.
	StateIdle State = iota
	// StateDragging means the pointer is down and the rectangle is
	// being adjusted.
	StateDragging
	// StateCompleted means a valid region was selected. Terminal.
	StateCompleted
	// StateCancelled means the gesture was abandoned. Terminal.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Region is an axis-aligned rectangle in screen coordinates with
// non-negative width and height.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Machine tracks one selection gesture. The zero value is ready to
// use and starts in StateIdle. It is not safe for concurrent use;
// the intended caller is a single event loop.
type Machine struct {
	state State

	anchorX, anchorY int
	curX, curY       int

	result Region
}

// State reports the current state.
func (m *Machine) State() State {
	return m.state
}

// PointerDown anchors the selection at the given point and moves the
// machine to StateDragging. Ignored unless the machine is idle.
func (m *Machine) PointerDown(x, y int) {
	if m.state != StateIdle {
		return
	}
	m.anchorX, m.anchorY = x, y
	m.curX, m.curY = x, y
	m.state = StateDragging
}

// PointerMove updates the free corner of the rectangle. Ignored
// unless a drag is in progress.
func (m *Machine) PointerMove(x, y int) {
	if m.state != StateDragging {
		return
	}
	m.curX, m.curY = x, y
}

// PointerUp ends the drag. If both dimensions of the selection exceed
// MinSpan the machine completes with the normalized region, otherwise
// it cancels. Ignored unless a drag is in progress.
func (m *Machine) PointerUp(x, y int) {
	if m.state != StateDragging {
		return
	}
	m.curX, m.curY = x, y

	region := m.normalized()
	if region.Width > MinSpan && region.Height > MinSpan {
		m.result = region
		m.state = StateCompleted
		return
	}
	m.state = StateCancelled
}

// Cancel abandons the gesture from any non-terminal state. Used for
// Escape and for overlay teardown.
func (m *Machine) Cancel() {
	if m.state == StateCompleted || m.state == StateCancelled {
		return
	}
	m.state = StateCancelled
}

// Preview returns the rectangle as it stands mid-drag, normalized, so
// the overlay can draw it. The second return is false when no drag is
// active.
func (m *Machine) Preview() (Region, bool) {
	if m.state != StateDragging {
		return Region{}, false
	}
	return m.normalized(), true
}

// Result returns the selected region. The second return is true only
// in StateCompleted.
func (m *Machine) Result() (Region, bool) {
	if m.state != StateCompleted {
		return Region{}, false
	}
	return m.result, true
}

// Reset returns a terminal machine to StateIdle so it can be reused
// for the next gesture. Ignored mid-drag.
func (m *Machine) Reset() {
	if m.state == StateDragging {
		return
	}
	*m = Machine{}
}

// normalized folds the anchor and current point into a rectangle with
// non-negative dimensions, regardless of drag direction.
func (m *Machine) normalized() Region {
	x, w := span(m.anchorX, m.curX)
	y, h := span(m.anchorY, m.curY)
	return Region{X: x, Y: y, Width: w, Height: h}
}

func span(a, b int) (origin, length int) {
	if b < a {
		a, b = b, a
	}
	return a, b - a
}
