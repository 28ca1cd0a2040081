package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	guestbridge "github.com/wippyai/guest-bridge"
	"github.com/wippyai/guest-bridge/engine"
	"github.com/wippyai/guest-bridge/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sigStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateDetail
)

type interactiveModel struct {
	err      error
	eng      *engine.Engine
	filename string
	version  int32
	rows     []symbolResult
	visible  []int
	selected int
	filter   textinput.Model
	typing   bool
	state    modelState
}

func newInteractiveModel(filename string) *interactiveModel {
	filter := textinput.New()
	filter.Placeholder = "filter symbols"
	filter.Prompt = "/ "
	filter.Width = 40

	return &interactiveModel{
		filename: filename,
		filter:   filter,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err     error
	eng     *engine.Engine
	version int32
	rows    []symbolResult
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadAdapter
}

func (m *interactiveModel) loadAdapter() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	eng, err := engine.New(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}

	adapter, err := eng.LoadAdapter(ctx, data)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}
	env, err := adapter.Env()
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	version := guestbridge.OnLoad(adapter, nil)
	return loadedMsg{eng: eng, version: version, rows: sweep(env)}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			switch msg.String() {
			case "ctrl+c":
				return m, m.quit()
			case "enter", "esc":
				m.typing = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
					m.applyFilter()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, m.quit()

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.typing = true
				m.filter.Focus()
			}

		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateBrowse
			case stateBrowse:
				if m.filter.Value() != "" {
					m.filter.SetValue("")
					m.applyFilter()
				}
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng
		m.version = msg.version
		m.rows = msg.rows
		m.applyFilter()
	}

	return m, nil
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.eng != nil {
		m.eng.Close(context.Background())
	}
	return tea.Quit
}

// applyFilter recomputes the visible row set from the filter text.
func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, r := range m.rows {
		if needle == "" || strings.Contains(strings.ToLower(r.key), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.rows) == 0 {
		return "Loading adapter..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ABI Check"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		if m.version == guestbridge.VersionInvalid {
			b.WriteString(errorStyle.Render("load hook: failed, no protocol version"))
		} else {
			b.WriteString(fmt.Sprintf("load hook: protocol version 0x%08x", m.version))
		}
		b.WriteString("\n")

		passed := 0
		for _, r := range m.rows {
			if r.err == nil {
				passed++
			}
		}
		status := fmt.Sprintf("%d/%d contract symbols satisfied", passed, len(m.rows))
		if passed == len(m.rows) {
			b.WriteString(okStyle.Render(status))
		} else {
			b.WriteString(errorStyle.Render(status))
		}
		b.WriteString("\n")

		if m.typing || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")

		for pos, idx := range m.visible {
			r := m.rows[idx]
			line := m.formatRow(r)
			if pos == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("  no symbols match the filter"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter details • q quit"))

	case stateDetail:
		r := m.rows[m.visible[m.selected]]
		b.WriteString(symbolStyle.Render(r.key))
		if r.sig != "" {
			b.WriteString(" ")
			b.WriteString(sigStyle.Render(string(r.sig)))
		}
		b.WriteString("\n\n")

		if r.err == nil {
			b.WriteString(okStyle.Render("resolved"))
		} else {
			var bridgeErr *errors.Error
			if stderrors.As(r.err, &bridgeErr) && bridgeErr.Kind == errors.KindSignatureMismatch {
				b.WriteString(errorStyle.Render("signature mismatch"))
				b.WriteString("\n\n")
				b.WriteString("want ")
				b.WriteString(sigStyle.Render(bridgeErr.Want))
				b.WriteString("\ngot  ")
				b.WriteString(sigStyle.Render(bridgeErr.Got))
			} else {
				b.WriteString(errorStyle.Render(r.err.Error()))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatRow(r symbolResult) string {
	mark := okStyle.Render("ok  ")
	if r.err != nil {
		mark = errorStyle.Render("FAIL")
	}
	line := mark + " " + symbolStyle.Render(r.key)
	if r.sig != "" {
		line += " " + sigStyle.Render(string(r.sig))
	}
	return line
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
