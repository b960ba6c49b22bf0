// Package searchbar is the global search surface: a text input wired to
// the search aggregator plus the merged result list.
package searchbar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/search"
	"github.com/muynuddinr/work-management-system/internal/theme"
)

// NavigateMsg signals that a result was chosen; Link is the entity's
// list view.
type NavigateMsg struct {
	Link string
	Kind model.SearchKind
}

// CloseMsg signals the search surface should close.
type CloseMsg struct{}

// Model is the search view.
type Model struct {
	input      textinput.Model
	aggregator *search.Aggregator
	results    []model.SearchResult
	selected   int

	width, height int
}

// New creates the search view over the given aggregator.
func New(a *search.Aggregator, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "search users, tasks, documents..."
	ti.Prompt = "/ "
	ti.Width = width - 4

	return Model{
		input:      ti,
		aggregator: a,
		width:      width,
		height:     height,
	}
}

// Focus activates the input and subscribes to aggregator results.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	m.results = nil
	m.selected = 0
	return tea.Batch(m.input.Focus(), m.aggregator.WaitForResults())
}

// Update handles messages for the search view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case search.ResultsMsg:
		m.results = msg.Results
		if m.selected >= len(m.results) {
			m.selected = 0
		}
		return m, m.aggregator.WaitForResults()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.reset()
			return m, func() tea.Msg { return CloseMsg{} }

		case "up", "ctrl+k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.selected < len(m.results) {
				result := m.results[m.selected]
				m.reset()
				return m, func() tea.Msg {
					return NavigateMsg{Link: result.Link, Kind: result.Kind}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.aggregator.SetQuery(m.input.Value())
	}
	return m, cmd
}

// View renders the input and the merged results.
func (m Model) View() string {
	bar := lipgloss.NewStyle().
		Foreground(theme.ColorWhite).
		Padding(0, 1).
		Render(m.input.View())

	if len(m.results) == 0 {
		hint := theme.HelpStyle.Render("type at least 2 characters to search")
		return lipgloss.JoinVertical(lipgloss.Left, bar, hint)
	}

	lines := make([]string, 0, len(m.results)+1)
	lines = append(lines, bar)
	for i, r := range m.results {
		label := theme.KindLabelStyle(string(r.Kind)).Render(string(r.Kind))
		line := label + " " + r.Title
		if r.Subtitle != "" {
			line += theme.HelpStyle.Render(" · " + r.Subtitle)
		}
		if i == m.selected {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}

// reset clears the input, the result list and any pending dispatch.
func (m *Model) reset() {
	m.input.Reset()
	m.input.Blur()
	m.results = nil
	m.selected = 0
	m.aggregator.SetQuery("")
}
