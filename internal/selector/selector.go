// Package selector renders an interactive region picker in the
// terminal. The alt-screen grid stands in for the display: the mouse
// drag is tracked in terminal cells and scaled to screen pixels, with
// the drag lifecycle handled by the selection state machine.
package selector

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snapvault/snapvault/internal/selection"
)

var (
	marqueeStyle = lipgloss.NewStyle().Background(lipgloss.Color("63"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the picker. Screen is the virtual
// display rectangle the terminal grid maps onto.
type Model struct {
	machine selection.Machine
	screen  image.Rectangle

	cols, rows int
}

// NewModel creates a picker for the given screen rectangle.
func NewModel(screen image.Rectangle) *Model {
	return &Model{screen: screen}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "ctrl+c":
			m.machine.Cancel()
			return m, tea.Quit
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.cols == 0 || m.rows == 0 {
		return m, nil
	}
	x, y := m.toScreen(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.machine.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.machine.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.machine.PointerUp(x, y)
		if m.machine.State() != selection.StateDragging {
			return m, tea.Quit
		}
	}
	return m, nil
}

// toScreen scales a terminal cell to screen pixels.
func (m *Model) toScreen(col, row int) (int, int) {
	x := m.screen.Min.X + col*m.screen.Dx()/m.cols
	y := m.screen.Min.Y + row*m.screen.Dy()/m.rows
	return x, y
}

// toCell is the inverse mapping, for rendering the marquee.
func (m *Model) toCell(x, y int) (int, int) {
	col := (x - m.screen.Min.X) * m.cols / m.screen.Dx()
	row := (y - m.screen.Min.Y) * m.rows / m.screen.Dy()
	return col, row
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.cols == 0 || m.rows == 0 {
		return ""
	}

	hint := "drag to select a region, esc to cancel"
	region, active := m.machine.Preview()
	if active {
		hint = fmt.Sprintf("%dx%d at (%d,%d)", region.Width, region.Height, region.X, region.Y)
	}

	var b strings.Builder
	for row := 0; row < m.rows-1; row++ {
		line := make([]byte, m.cols)
		for i := range line {
			line[i] = ' '
		}
		if active {
			m.paintRow(&b, line, row, region)
		} else {
			b.Write(line)
		}
		b.WriteByte('\n')
	}
	b.WriteString(hintStyle.Render(hint))
	return b.String()
}

func (m *Model) paintRow(b *strings.Builder, line []byte, row int, region selection.Region) {
	left, top := m.toCell(region.X, region.Y)
	right, bottom := m.toCell(region.X+region.Width, region.Y+region.Height)
	if row < top || row > bottom || right < left {
		b.Write(line)
		return
	}
	left = clamp(left, 0, m.cols)
	right = clamp(right+1, 0, m.cols)
	b.Write(line[:left])
	b.WriteString(marqueeStyle.Render(string(line[left:right])))
	b.Write(line[right:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Result returns the selected screen rectangle. ok is false when the
// gesture was cancelled.
func (m *Model) Result() (image.Rectangle, bool) {
	region, ok := m.machine.Result()
	if !ok {
		return image.Rectangle{}, false
	}
	return image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height), true
}

// Pick runs the picker on the terminal and returns the selected
// rectangle. ok is false when the user cancelled.
func Pick(screen image.Rectangle) (image.Rectangle, bool, error) {
	model := NewModel(screen)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return image.Rectangle{}, false, fmt.Errorf("selector: %w", err)
	}
	rect, ok := model.Result()
	return rect, ok, nil
}
