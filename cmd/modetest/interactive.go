package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/internal/lines"
	"github.com/wippyai/rofi-mode/launcher"
	"github.com/wippyai/rofi-mode/pattern"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	selectedStyle = lipgloss.NewStyle().
			Underline(true)

	iconStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxVisible bounds how many rows are rendered at once.
const maxVisible = 15

type viewRow struct {
	text  string
	icon  string
	state abi.EntryState
	line  int
}

type interactiveModel struct {
	err      error
	launcher *launcher.Launcher
	name     string
	result   string
	entries  []lines.Entry
	rows     []viewRow
	input    textinput.Model
	opts     pattern.Options
	iconSize uint32
	cursor   int
	done     bool
}

func newInteractiveModel(name string, entries []lines.Entry, opts pattern.Options, iconSize uint32) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = name + "> "
	ti.Width = 40
	ti.Focus()

	return &interactiveModel{
		name:     name,
		entries:  entries,
		input:    ti,
		opts:     opts,
		iconSize: iconSize,
	}
}

type openedMsg struct {
	err      error
	launcher *launcher.Launcher
}

type filteredMsg struct {
	err   error
	query string
	rows  []viewRow
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.openMode)
}

func (m *interactiveModel) openMode() tea.Msg {
	l, err := openMode(context.Background(), m.name, m.entries, m.opts)
	return openedMsg{launcher: l, err: err}
}

func (m *interactiveModel) filter(query string) tea.Cmd {
	l := m.launcher
	iconSize := m.iconSize
	return func() tea.Msg {
		matches, err := l.Filter(query)
		if err != nil {
			return filteredMsg{err: err, query: query}
		}
		rows := make([]viewRow, 0, len(matches))
		for _, line := range matches {
			row, ok, err := l.Entry(line)
			if err != nil {
				return filteredMsg{err: err, query: query}
			}
			if !ok {
				continue
			}
			vr := viewRow{text: row.Text, state: row.State, line: line}
			if iconSize > 0 {
				if uid := l.Icon(line, iconSize); uid != 0 {
					vr.icon, _, _ = l.Icons().Lookup(uid)
				}
			}
			rows = append(rows, vr)
		}
		return filteredMsg{rows: rows, query: query}
	}
}

func (m *interactiveModel) close() {
	if m.launcher != nil {
		_ = m.launcher.Close(context.Background())
		m.launcher = nil
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.launcher != nil && len(m.rows) > 0 {
				m.launcher.Select(abi.MenuCancel, m.rows[m.cursor].line)
			}
			m.close()
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if m.launcher == nil || len(m.rows) == 0 {
				return m, nil
			}
			row := m.rows[m.cursor]
			next := m.launcher.Select(abi.MenuOK, row.line)
			m.result = fmt.Sprintf("%s -> %s", row.text, next)
			m.done = true
			m.close()
			return m, tea.Quit
		}

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.launcher = msg.launcher
		return m, m.filter(m.input.Value())

	case filteredMsg:
		// Drop results for a query the user already changed.
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.err = msg.err
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.launcher != nil && m.input.Value() != before {
		return m, tea.Batch(cmd, m.filter(m.input.Value()))
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	if m.done {
		return m.result + "\n"
	}
	if m.launcher == nil && m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress esc to quit.", m.err))
	}
	if m.launcher == nil {
		return "Loading mode..."
	}

	var b strings.Builder

	t := m.launcher.Table()
	b.WriteString(titleStyle.Render(t.DisplayName))
	b.WriteString(fmt.Sprintf(" %d entries\n\n", m.launcher.Count()))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.rows))
	for i := start; i < end; i++ {
		row := m.rows[i]
		text := renderRow(row)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + row.text))
		} else {
			b.WriteString("  " + text)
		}
		if row.icon != "" {
			b.WriteString(" ")
			b.WriteString(iconStyle.Render("[" + row.icon + "]"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to filter • ↑/↓ move • enter accept • esc cancel"))

	return b.String()
}

// renderRow styles a row by its state flags. Markup rows are shown as
// plain text; the terminal has no markup renderer.
func renderRow(row viewRow) string {
	style := lipgloss.NewStyle()
	switch {
	case row.state.Has(abi.Urgent):
		style = urgentStyle
	case row.state.Has(abi.Active):
		style = activeStyle
	}
	if row.state.Has(abi.Selected) {
		style = style.Inherit(selectedStyle)
	}
	return style.Render(row.text)
}

func runInteractive(name string, entries []lines.Entry, opts pattern.Options, iconSize uint32) error {
	m := newInteractiveModel(name, entries, opts, iconSize)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if m.result != "" {
		fmt.Println(m.result)
	}
	return err
}
