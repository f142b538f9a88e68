package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsIdle(t *testing.T) {
	var m Machine
	assert.Equal(t, StateIdle, m.State())

	_, ok := m.Result()
	assert.False(t, ok)
	_, ok = m.Preview()
	assert.False(t, ok)
}

func TestBasicDrag(t *testing.T) {
	var m Machine

	m.PointerDown(10, 20)
	assert.Equal(t, StateDragging, m.State())

	m.PointerMove(110, 80)
	preview, ok := m.Preview()
	assert.True(t, ok)
	assert.Equal(t, Region{X: 10, Y: 20, Width: 100, Height: 60}, preview)

	m.PointerUp(110, 80)
	assert.Equal(t, StateCompleted, m.State())

	region, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, Region{X: 10, Y: 20, Width: 100, Height: 60}, region)
}

func TestDragUpAndLeftNormalizes(t *testing.T) {
	var m Machine

	m.PointerDown(50, 50)
	m.PointerUp(10, 10)

	assert.Equal(t, StateCompleted, m.State())
	region, _ := m.Result()
	assert.Equal(t, Region{X: 10, Y: 10, Width: 40, Height: 40}, region)
}

func TestTinyDragCancels(t *testing.T) {
	tests := []struct {
		name       string
		upX, upY   int
		wantCancel bool
	}{
		{"click in place", 100, 100, true},
		{"both dims at threshold", 105, 105, true},
		{"wide but flat", 200, 103, true},
		{"tall but narrow", 103, 200, true},
		{"just over threshold", 106, 106, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Machine
			m.PointerDown(100, 100)
			m.PointerUp(tt.upX, tt.upY)
			if tt.wantCancel {
				assert.Equal(t, StateCancelled, m.State())
				_, ok := m.Result()
				assert.False(t, ok)
			} else {
				assert.Equal(t, StateCompleted, m.State())
			}
		})
	}
}

func TestCancelMidDrag(t *testing.T) {
	var m Machine

	m.PointerDown(10, 10)
	m.PointerMove(200, 200)
	m.Cancel()

	assert.Equal(t, StateCancelled, m.State())
	_, ok := m.Result()
	assert.False(t, ok)
}

func TestCancelWhileIdle(t *testing.T) {
	var m Machine
	m.Cancel()
	assert.Equal(t, StateCancelled, m.State())
}

func TestEventsAfterTerminalAreIgnored(t *testing.T) {
	var m Machine

	m.PointerDown(0, 0)
	m.PointerUp(100, 100)
	assert.Equal(t, StateCompleted, m.State())
	region, _ := m.Result()

	m.PointerDown(500, 500)
	m.PointerMove(600, 600)
	m.PointerUp(700, 700)
	m.Cancel()

	assert.Equal(t, StateCompleted, m.State())
	got, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, region, got)
}

func TestMoveAndUpWhileIdleAreIgnored(t *testing.T) {
	var m Machine

	m.PointerMove(50, 50)
	m.PointerUp(50, 50)
	assert.Equal(t, StateIdle, m.State())
}

func TestSecondPointerDownDoesNotMoveAnchor(t *testing.T) {
	var m Machine

	m.PointerDown(10, 10)
	m.PointerDown(500, 500)
	m.PointerUp(60, 60)

	region, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, Region{X: 10, Y: 10, Width: 50, Height: 50}, region)
}

func TestResetReturnsTerminalMachineToIdle(t *testing.T) {
	var m Machine

	m.PointerDown(0, 0)
	m.PointerUp(100, 100)
	m.Reset()
	assert.Equal(t, StateIdle, m.State())

	m.PointerDown(20, 20)
	m.PointerUp(90, 90)
	region, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, Region{X: 20, Y: 20, Width: 70, Height: 70}, region)
}

func TestResetIgnoredMidDrag(t *testing.T) {
	var m Machine

	m.PointerDown(0, 0)
	m.Reset()
	assert.Equal(t, StateDragging, m.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "dragging", StateDragging.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.Equal(t, "unknown", State(99).String())
}
