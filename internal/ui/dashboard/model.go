// Package dashboard renders the role-specific home view. The two roles
// are matched exhaustively: adding a role means adding a renderer here.
package dashboard

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/store"
	"github.com/muynuddinr/work-management-system/internal/theme"
)

const loadTimeout = 15 * time.Second

// AdminLoadedMsg carries the admin dashboard aggregate.
type AdminLoadedMsg struct {
	Data *model.AdminDashboard
	Err  error
}

// InternLoadedMsg carries the intern dashboard aggregate.
type InternLoadedMsg struct {
	Data *model.InternDashboard
	Err  error
}

// cachedDataMsg carries tasks and recent notifications read from the
// local cache when the backend is unreachable.
type cachedDataMsg struct {
	tasks  []model.Task
	notifs []model.Notification
}

// Model is the dashboard view for the authenticated user's role.
type Model struct {
	client *api.Client
	cache  store.Store
	role   model.Role

	admin        *model.AdminDashboard
	intern       *model.InternDashboard
	cached       []model.Task
	cachedNotifs []model.Notification
	loadErr      error
	loading      bool

	width, height int
}

// New creates a dashboard for the given role. cache may be nil.
func New(client *api.Client, cache store.Store, role model.Role, width, height int) Model {
	return Model{
		client:  client,
		cache:   cache,
		role:    role,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init fetches the role-appropriate aggregate.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a command that fetches the dashboard data.
func (m Model) Load() tea.Cmd {
	client := m.client
	switch m.role {
	case model.RoleAdmin:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			data, err := client.Dashboard.Admin(ctx)
			return AdminLoadedMsg{Data: data, Err: err}
		}
	case model.RoleIntern:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			data, err := client.Dashboard.Intern(ctx)
			return InternLoadedMsg{Data: data, Err: err}
		}
	default:
		return nil
	}
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case AdminLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, m.loadCached()
		}
		m.loadErr = nil
		m.admin = msg.Data
		return m, nil

	case InternLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, m.loadCached()
		}
		m.loadErr = nil
		m.intern = msg.Data
		if msg.Data != nil && m.cache != nil {
			return m, m.mirrorTasks(msg.Data.UpcomingTasks)
		}
		return m, nil

	case cachedDataMsg:
		m.cached = msg.tasks
		m.cachedNotifs = msg.notifs
		return m, nil
	}

	return m, nil
}

// View renders the dashboard for the current role.
func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Loading dashboard...")
	}

	if m.loadErr != nil {
		return m.renderOffline()
	}

	switch m.role {
	case model.RoleAdmin:
		return m.renderAdmin()
	case model.RoleIntern:
		return m.renderIntern()
	default:
		return theme.ErrorStyle.Render("Unknown role")
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadCached reads recently cached tasks and notifications for the
// offline fallback. Either read failing independently still surfaces
// the other.
func (m Model) loadCached() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		var msg cachedDataMsg
		if tasks, err := cache.GetTasks(ctx, store.TaskFilter{Limit: 10}); err == nil {
			msg.tasks = tasks
		}
		if notifs, err := cache.GetNotifications(ctx, 10); err == nil {
			msg.notifs = notifs
		}
		return msg
	}
}

// mirrorTasks writes freshly fetched tasks into the local cache.
func (m Model) mirrorTasks(tasks []model.Task) tea.Cmd {
	if len(tasks) == 0 {
		return nil
	}
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		_ = cache.UpsertTasks(ctx, tasks)
		return nil
	}
}

// renderAdmin renders the admin aggregate.
func (m Model) renderAdmin() string {
	d := m.admin
	if d == nil {
		return ""
	}

	stats := lipgloss.JoinHorizontal(
		lipgloss.Top,
		statBox("Interns", fmt.Sprintf("%d (%d active)", d.TotalInterns, d.ActiveInterns)),
		statBox("Present today", fmt.Sprintf("%d", d.PresentToday)),
		statBox("Pending leaves", fmt.Sprintf("%d", d.PendingLeaves)),
		statBox("Open tasks", fmt.Sprintf("%d", d.TaskStats.Pending+d.TaskStats.InProgress)),
	)

	sections := []string{
		theme.HeaderStyle.Render("Overview"),
		stats,
	}

	if len(d.RecentWorkLogs) > 0 {
		sections = append(sections, theme.HeaderStyle.Render("Recent work logs"))
		for _, wl := range d.RecentWorkLogs {
			sections = append(sections, theme.ListItemStyle.Render(
				fmt.Sprintf("%s · %s (%.1fh)", wl.Date.Format("Jan 02"), wl.Title, wl.Hours),
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderIntern renders the intern aggregate.
func (m Model) renderIntern() string {
	d := m.intern
	if d == nil {
		return ""
	}

	stats := lipgloss.JoinHorizontal(
		lipgloss.Top,
		statBox("Tasks", fmt.Sprintf("%d open / %d done", d.TaskStats.Pending+d.TaskStats.InProgress, d.TaskStats.Completed)),
		statBox("Present days", fmt.Sprintf("%d", d.AttendanceStats.PresentDays)),
		statBox("Hours", fmt.Sprintf("%.1f", d.AttendanceStats.TotalHours)),
	)

	sections := []string{
		theme.HeaderStyle.Render("My overview"),
		stats,
	}

	if len(d.UpcomingTasks) > 0 {
		sections = append(sections, theme.HeaderStyle.Render("Upcoming tasks"))
		for _, t := range d.UpcomingTasks {
			due := ""
			if t.DueDate != nil {
				due = " · due " + t.DueDate.Format("Jan 02")
			}
			sections = append(sections, theme.ListItemStyle.Render(
				theme.StatusStyle(t.Status).Render(t.Status)+" "+t.Title+due,
			))
		}
	}

	if len(d.Announcements) > 0 {
		sections = append(sections, theme.HeaderStyle.Render("Announcements"))
		for _, a := range d.Announcements {
			sections = append(sections, theme.ListItemStyle.Render(
				theme.PriorityStyle(a.Priority).Render("•")+" "+a.Title,
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderOffline shows cached tasks and recent activity when the
// backend is unreachable.
func (m Model) renderOffline() string {
	sections := []string{
		theme.ErrorStyle.Render("Backend unreachable - showing cached data"),
	}

	if len(m.cached) == 0 && len(m.cachedNotifs) == 0 {
		sections = append(sections, theme.HelpStyle.Render("Nothing cached. Press r to retry."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if len(m.cached) > 0 {
		sections = append(sections, theme.HeaderStyle.Render("Cached tasks"))
		for _, t := range m.cached {
			sections = append(sections, theme.ListItemStyle.Render(
				theme.StatusStyle(t.Status).Render(t.Status)+" "+t.Title,
			))
		}
	}

	if len(m.cachedNotifs) > 0 {
		sections = append(sections, theme.HeaderStyle.Render("Recent activity"))
		for _, n := range m.cachedNotifs {
			sections = append(sections, theme.ListItemStyle.Render(
				theme.PriorityStyle(n.Priority).Render("•")+" "+n.Title+" · "+n.CreatedAt.Format("Jan 02"),
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statBox renders one labeled figure in a bordered box.
func statBox(label, value string) string {
	return theme.PanelStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			theme.HelpStyle.Render(label),
			lipgloss.NewStyle().Bold(true).Render(value),
		),
	)
}
