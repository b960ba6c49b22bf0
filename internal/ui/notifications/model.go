// Package notifications is the notification panel: a list over the
// poller's state with read / read-all / delete actions.
package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muynuddinr/work-management-system/internal/keys"
	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/notify"
	"github.com/muynuddinr/work-management-system/internal/theme"
)

// CloseMsg signals the panel should close.
type CloseMsg struct{}

// Item wraps a model.Notification for the bubbles list.
type Item struct {
	Notification model.Notification
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Notification.Title }

// Title returns the notification heading, marked when unread.
func (i Item) Title() string {
	title := i.Notification.Title
	if title == "" {
		title = i.Notification.Message
	}
	if !i.Notification.IsRead {
		return theme.UnreadStyle.Render("● ") + title
	}
	return "  " + title
}

// Description returns a short summary line.
func (i Item) Description() string {
	parts := []string{
		i.Notification.Type,
		relativeTime(i.Notification.CreatedAt),
	}
	if i.Notification.Priority == "high" {
		parts = append(parts, theme.PriorityStyle("high").Render("high"))
	}
	return "  " + strings.Join(parts, " | ")
}

// Model is the notification panel view.
type Model struct {
	list   list.Model
	poller *notify.Poller
	keys   *keys.KeyMap

	width, height int
}

// New creates the notification panel over the given poller.
func New(p *notify.Poller, k *keys.KeyMap, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		poller: p,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetItems replaces the list contents from a poller snapshot.
func (m *Model) SetItems(notifications []model.Notification) tea.Cmd {
	items := make([]list.Item, len(notifications))
	for i, n := range notifications {
		items[i] = Item{Notification: n}
	}
	return m.list.SetItems(items)
}

// Update handles messages for the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notify.RefreshedMsg:
		return m, m.SetItems(msg.Items)

	case notify.ActionMsg:
		return m, m.SetItems(msg.Items)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }

		case key.Matches(msg, m.keys.MarkRead):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, m.poller.MarkAsReadCmd(item.Notification.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.MarkAllRead):
			return m, m.poller.MarkAllAsReadCmd()

		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, m.poller.DeleteCmd(item.Notification.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.poller.Refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notifications.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// relativeTime formats a timestamp as a short "ago" string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
