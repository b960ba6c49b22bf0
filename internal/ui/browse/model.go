// Package browse renders a flat list of one entity kind. It is the
// landing view for global search navigation.
package browse

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/theme"
)

// CloseMsg signals the browse view should close.
type CloseMsg struct{}

// LoadedMsg carries the fetched entries for a kind.
type LoadedMsg struct {
	Kind    model.SearchKind
	Entries []Entry
	Err     error
}

// Entry is a single row in the browse list.
type Entry struct {
	ID       string
	Name     string
	Detail   string
	Status   string
	KindName string
}

func (e Entry) Title() string { return e.Name }

func (e Entry) Description() string {
	if e.Status != "" {
		return theme.StatusStyle(e.Status).Render(e.Status) + " " + e.Detail
	}
	return e.Detail
}

func (e Entry) FilterValue() string { return e.Name }

// Model is the browse view.
type Model struct {
	client *api.Client
	kind   model.SearchKind
	list   list.Model
	errMsg string

	width, height int
}

// New creates a browse view for the given entity kind.
func New(client *api.Client, kind model.SearchKind, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, width, height)
	l.Title = string(kind) + "s"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return Model{
		client: client,
		kind:   kind,
		list:   l,
		width:  width,
		height: height,
	}
}

// Kind reports which entity kind this view lists.
func (m Model) Kind() model.SearchKind { return m.kind }

// Load fetches the entries for the view's kind.
func (m Model) Load() tea.Cmd {
	client, kind := m.client, m.kind
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		switch kind {
		case model.SearchKindUser:
			users, err := client.Users.List(ctx, api.UserFilter{})
			if err != nil {
				return LoadedMsg{Kind: kind, Err: err}
			}
			entries := make([]Entry, 0, len(users))
			for _, u := range users {
				entries = append(entries, Entry{
					ID:     u.ID,
					Name:   u.Name,
					Detail: u.Email,
					Status: string(u.Role),
				})
			}
			return LoadedMsg{Kind: kind, Entries: entries}

		case model.SearchKindTask:
			tasks, err := client.Tasks.List(ctx, api.TaskFilter{})
			if err != nil {
				return LoadedMsg{Kind: kind, Err: err}
			}
			entries := make([]Entry, 0, len(tasks))
			for _, t := range tasks {
				entries = append(entries, Entry{
					ID:     t.ID,
					Name:   t.Title,
					Detail: t.Description,
					Status: t.Status,
				})
			}
			return LoadedMsg{Kind: kind, Entries: entries}

		case model.SearchKindDocument:
			docs, err := client.Documents.List(ctx, api.DocumentFilter{})
			if err != nil {
				return LoadedMsg{Kind: kind, Err: err}
			}
			entries := make([]Entry, 0, len(docs))
			for _, d := range docs {
				entries = append(entries, Entry{
					ID:     d.ID,
					Name:   d.Title,
					Detail: d.Category,
				})
			}
			return LoadedMsg{Kind: kind, Entries: entries}
		}

		return LoadedMsg{Kind: kind}
	}
}

// Update handles messages for the browse view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Kind != m.kind {
			return m, nil
		}
		if msg.Err != nil {
			m.errMsg = api.UserMessage(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		items := make([]list.Item, 0, len(msg.Entries))
		for _, e := range msg.Entries {
			items = append(items, e)
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if msg.String() == "esc" && m.list.FilterState() != list.Filtering {
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the browse list.
func (m Model) View() string {
	if m.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.ErrorStyle.Render(m.errMsg),
			m.list.View(),
		)
	}
	return m.list.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
