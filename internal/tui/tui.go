// Package tui is the interactive history browser: search, scroll,
// copy a capture's path, or delete it without leaving the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/snapvault/snapvault/internal/app"
	"github.com/snapvault/snapvault/internal/catalog"
)

const pageSize = 200

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type recordsMsg struct {
	records []catalog.Record
	err     error
}

type statusMsg struct {
	text  string
	isErr bool
}

// Model is the bubbletea model for the history browser.
type Model struct {
	app *app.App

	search  textinput.Model
	records []catalog.Record
	cursor  int
	offset  int

	status    string
	statusErr bool

	width, height int
	searching     bool
}

// NewModel creates the history browser around the capture pipeline.
func NewModel(a *app.App) *Model {
	search := textinput.New()
	search.Placeholder = "search filename, window, tags, notes"
	search.CharLimit = 120

	return &Model{
		app:    a,
		search: search,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

func (m *Model) reload() tea.Cmd {
	term := m.search.Value()
	return func() tea.Msg {
		records, err := m.app.History(pageSize, 0, term)
		return recordsMsg{records: records, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case recordsMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(0, len(m.records)-1)
		}
		return m, nil
	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, m.reload()
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			m.cursor = 0
			return m, m.reload()
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			return m, m.reload()
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = max(0, len(m.records)-1)
	case "enter", "y":
		return m, m.copyPath()
	case "d", "x":
		return m, m.deleteSelected()
	case "r":
		return m, m.reload()
	}
	return m, nil
}

func (m *Model) selected() (catalog.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return catalog.Record{}, false
	}
	return m.records[m.cursor], true
}

func (m *Model) copyPath() tea.Cmd {
	rec, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		path, err := m.app.CopyPath(rec.ID)
		if err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: "copied " + path}
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	rec, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		deleted, err := m.app.Delete(rec.ID)
		if err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		if !deleted {
			return statusMsg{text: fmt.Sprintf("capture %d already gone", rec.ID), isErr: true}
		}
		return statusMsg{text: "deleted " + rec.Filename}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("snapvault history"))
	b.WriteString("  ")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(dimStyle.Render("press / to search"))
	}
	b.WriteString("\n\n")

	visible := m.height - 5
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	if len(m.records) == 0 {
		b.WriteString(dimStyle.Render("no captures"))
		b.WriteString("\n")
	}
	end := min(m.offset+visible, len(m.records))
	for i := m.offset; i < end; i++ {
		rec := m.records[i]
		label := rec.WindowName
		if label == "" {
			label = rec.CaptureMode
		}
		line := fmt.Sprintf("%5d  %s  %-30.30s  %8s  %s",
			rec.ID,
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			label,
			humanize.Bytes(uint64(rec.FileSize)),
			rec.Filename,
		)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter copy path · d delete · / search · r reload · q quit"))
	return b.String()
}

// Run starts the browser on the terminal.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
