// Package tui is the terminal column curator used by emissionsctl: the same
// include/rename operations as the web page, driven by the keyboard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"carbonfront/internal/columns"
	"carbonfront/internal/domain"
)

type state int

const (
	stateBrowsing state = iota
	stateRenaming
	stateConfirmed
	stateAborted
)

// Model curates a column registry in place.
type Model struct {
	state    state
	title    string
	registry *columns.Registry
	keys     []string
	cursor   int
	offset   int
	height   int
	input    textinput.Model
	err      error
}

// New creates a curator over reg. Changes are applied to reg directly.
func New(reg *columns.Registry, title string) Model {
	ti := textinput.New()
	ti.Prompt = "New name: "
	ti.CharLimit = 128

	return Model{
		state:    stateBrowsing,
		title:    title,
		registry: reg,
		keys:     reg.Keys(),
		input:    ti,
	}
}

// Confirmed reports whether the user accepted the selection.
func (m Model) Confirmed() bool {
	return m.state == stateConfirmed
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, counters and help take roughly a dozen lines
		m.height = msg.Height - 12
		if m.height < 5 {
			m.height = 5
		}
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateBrowsing:
			return m.updateBrowsing(msg)
		case stateRenaming:
			return m.updateRenaming(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.keys) == 0 {
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			m.state = stateAborted
			return m, tea.Quit
		}
		return m, nil
	}

	m.err = nil
	key := m.keys[m.cursor]
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.state = stateAborted
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.keys)-1 {
			m.cursor++
		}
	case " ":
		_ = m.registry.Toggle(key)
	case "a":
		m.registry.SetAll(true)
	case "n":
		m.registry.SetAll(false)
	case "r", "e":
		col, _ := m.registry.Get(key)
		if !col.Included {
			return m, nil
		}
		m.state = stateRenaming
		m.input.SetValue("")
		m.input.Placeholder = col.Header()
		return m, m.input.Focus()
	case "enter":
		if m.registry.IncludedCount() == 0 {
			m.err = domain.ErrNoColumnsSelected
			return m, nil
		}
		m.state = stateConfirmed
		return m, tea.Quit
	}
	m.scroll()
	return m, nil
}

func (m Model) updateRenaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.state = stateAborted
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.state = stateBrowsing
		return m, nil
	case "enter":
		if name := strings.TrimSpace(m.input.Value()); name != "" {
			_ = m.registry.Rename(m.keys[m.cursor], name)
		}
		m.input.Blur()
		m.state = stateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m Model) View() string {
	switch m.state {
	case stateConfirmed, stateAborted:
		return ""
	}

	var s strings.Builder
	s.WriteString(TitleStyle.Render("Column Mapping & Selection"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(m.title))
	s.WriteString("\n\n")

	if len(m.keys) == 0 {
		s.WriteString(ErrorStyle.Render(domain.ErrNoColumnsFound.Error()))
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit"))
		return BoxStyle.Render(s.String())
	}

	end := len(m.keys)
	if m.height > 0 && m.offset+m.height < end {
		end = m.offset + m.height
	}
	for i := m.offset; i < end; i++ {
		col, _ := m.registry.Get(m.keys[i])

		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		checked := " "
		if col.Included {
			checked = "✓"
		}
		line := fmt.Sprintf("%s [%s] %s", cursor, checked, col.Key)
		if col.Header() != col.Key {
			line += " → " + RenamedStyle.Render(col.Header())
		}

		switch {
		case m.cursor == i:
			line = SelectedStyle.Render(line)
		case col.Included:
			line = CheckedStyle.Render(line)
		default:
			line = UnselectedStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%d of %d columns selected\n", m.registry.IncludedCount(), m.registry.Len()))

	if m.state == stateRenaming {
		s.WriteString("\n")
		s.WriteString(m.input.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("enter: save • esc: cancel"))
		return BoxStyle.Render(s.String())
	}

	if m.err != nil {
		s.WriteString(ErrorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}
	s.WriteString(HelpStyle.Render("↑/↓: navigate • space: toggle • r: rename • a: all • n: none • enter: export • q: quit"))
	return BoxStyle.Render(s.String())
}

// Run shows the curator until the user confirms or quits. It returns true
// when the selection was confirmed.
func Run(reg *columns.Registry, title string) (bool, error) {
	final, err := tea.NewProgram(New(reg, title)).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.Confirmed(), nil
}
