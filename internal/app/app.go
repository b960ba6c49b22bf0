// Package app is the root Bubble Tea model. It owns the session gate,
// the notification poller and the search aggregator, and routes
// messages to the active view.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/config"
	"github.com/muynuddinr/work-management-system/internal/keys"
	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/notify"
	"github.com/muynuddinr/work-management-system/internal/search"
	"github.com/muynuddinr/work-management-system/internal/session"
	"github.com/muynuddinr/work-management-system/internal/store"
	"github.com/muynuddinr/work-management-system/internal/ui"
	"github.com/muynuddinr/work-management-system/internal/ui/browse"
	"github.com/muynuddinr/work-management-system/internal/ui/dashboard"
	"github.com/muynuddinr/work-management-system/internal/ui/login"
	"github.com/muynuddinr/work-management-system/internal/ui/notifications"
	"github.com/muynuddinr/work-management-system/internal/ui/searchbar"
	"github.com/muynuddinr/work-management-system/internal/ui/worklog"
)

// SessionExpiredMsg is delivered when the server rejects the stored
// token. The session manager has already been cleared by the time this
// arrives; the app only has to fall back to the login view.
type SessionExpiredMsg struct{}

type statusClearMsg struct {
	id int
}

type view int

const (
	viewLogin view = iota
	viewDashboard
	viewBrowse
)

type overlay int

const (
	overlayNone overlay = iota
	overlayNotifications
	overlaySearch
	overlayWorklog
)

// Model is the root application model.
type Model struct {
	cfg    *config.Config
	client *api.Client
	sess   *session.Manager
	cache  store.Store
	keys   *keys.KeyMap
	logger *zap.Logger

	poller     *notify.Poller
	aggregator *search.Aggregator

	layout  ui.Layout
	view    view
	overlay overlay
	ready   bool

	login      login.Model
	dashboard  dashboard.Model
	browse     browse.Model
	notifPanel notifications.Model
	searchView searchbar.Model
	composer   worklog.Model

	unread    int
	statusMsg string
	statusID  int
}

// New creates the root model. The session manager must already be
// initialized.
func New(cfg *config.Config, client *api.Client, sess *session.Manager, cache store.Store, logger *zap.Logger) Model {
	return Model{
		cfg:    cfg,
		client: client,
		sess:   sess,
		cache:  cache,
		keys:   keys.DefaultKeyMap(),
		logger: logger,
	}
}

// Init satisfies tea.Model. View construction waits for the first
// WindowSizeMsg so every child gets real dimensions.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all application messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case SessionExpiredMsg:
		return m.handleSessionExpired()

	case login.AuthenticatedMsg:
		return m.openSession()

	case notify.RefreshedMsg:
		return m.handleRefreshed(msg)

	case notify.ActionMsg:
		m.unread = msg.UnreadCount
		if m.overlay == overlayNotifications {
			var cmd tea.Cmd
			m.notifPanel, cmd = m.notifPanel.Update(msg)
			return m, cmd
		}
		return m, nil

	case search.ResultsMsg:
		if m.overlay == overlaySearch {
			var cmd tea.Cmd
			m.searchView, cmd = m.searchView.Update(msg)
			return m, cmd
		}
		return m, nil

	case searchbar.NavigateMsg:
		return m.handleNavigate(msg)

	case searchbar.CloseMsg:
		m.overlay = overlayNone
		return m, nil

	case notifications.CloseMsg:
		m.overlay = overlayNone
		return m, nil

	case worklog.CloseMsg:
		m.overlay = overlayNone
		return m, nil

	case browse.CloseMsg:
		m.view = viewDashboard
		return m, nil

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToActive(msg)
}

// View renders the full frame.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.view == viewLogin {
		return m.login.View()
	}

	header := m.layout.RenderHeader("Work Management System", m.headerStatus())

	var content string
	switch m.overlay {
	case overlayNotifications:
		content = m.notifPanel.View()
	case overlaySearch:
		content = m.searchView.View()
	case overlayWorklog:
		content = m.composer.View()
	default:
		if m.view == viewBrowse {
			content = m.browse.View()
		} else {
			content = m.dashboard.View()
		}
	}

	return m.layout.Frame(header, content, m.layout.RenderStatusBar(m.hints()))
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout = ui.NewLayout(msg.Width, msg.Height)
	cw, ch := m.layout.ContentWidth(), m.layout.ContentHeight()

	if !m.ready {
		m.ready = true
		m.login = login.New(m.sess, msg.Width, msg.Height)
		if m.sess.Authenticated() {
			return m.openSession()
		}
		m.view = viewLogin
		return m, m.login.Init()
	}

	m.login.SetSize(msg.Width, msg.Height)
	if m.view != viewLogin {
		m.dashboard.SetSize(cw, ch)
		m.notifPanel.SetSize(cw, ch)
		m.searchView.SetSize(cw, ch)
		m.browse.SetSize(cw, ch)
		m.composer.SetSize(cw, ch)
	}
	return m, nil
}

// openSession builds the authenticated surface: dashboard plus a fresh
// poller and aggregator. Both are single-use, so each login gets new
// ones.
func (m Model) openSession() (tea.Model, tea.Cmd) {
	user := m.sess.User()
	if user == nil {
		m.view = viewLogin
		return m, nil
	}

	cw, ch := m.layout.ContentWidth(), m.layout.ContentHeight()

	m.poller = notify.New(m.client, m.cache, time.Duration(m.cfg.PollIntervalSec)*time.Second, m.logger)
	m.aggregator = search.New(m.client, time.Duration(m.cfg.SearchDebounceMs)*time.Millisecond, m.logger)

	m.dashboard = dashboard.New(m.client, m.cache, user.Role, cw, ch)
	m.notifPanel = notifications.New(m.poller, m.keys, cw, ch)
	m.searchView = searchbar.New(m.aggregator, cw, ch)

	m.view = viewDashboard
	m.overlay = overlayNone
	m.unread = 0

	return m, tea.Batch(m.dashboard.Load(), m.poller.Start())
}

// closeSession tears down the polling and search goroutines and drops
// back to the login view.
func (m Model) closeSession() (tea.Model, tea.Cmd) {
	if m.poller != nil {
		m.poller.Stop()
		m.poller = nil
	}
	if m.aggregator != nil {
		m.aggregator.Stop()
		m.aggregator = nil
	}

	m.view = viewLogin
	m.overlay = overlayNone
	m.unread = 0
	m.login = login.New(m.sess, m.layout.Width, m.layout.Height)
	return m, m.login.Init()
}

func (m Model) handleSessionExpired() (tea.Model, tea.Cmd) {
	m.logger.Info("session expired, returning to login")
	mdl, cmd := m.closeSession()
	root := mdl.(Model)
	root.statusMsg = "session expired, please sign in again"
	return root, tea.Batch(cmd, root.clearStatusLater())
}

func (m Model) handleRefreshed(msg notify.RefreshedMsg) (tea.Model, tea.Cmd) {
	if m.poller == nil {
		return m, nil
	}

	m.unread = msg.UnreadCount
	cmds := []tea.Cmd{m.poller.WaitForNextResult()}

	if msg.Err != nil {
		m.logger.Warn("notification refresh failed", zap.Error(msg.Err))
	}
	if m.overlay == overlayNotifications {
		cmds = append(cmds, m.notifPanel.SetItems(msg.Items))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleNavigate(msg searchbar.NavigateMsg) (tea.Model, tea.Cmd) {
	m.overlay = overlayNone

	kind := msg.Kind
	if kind == "" {
		switch msg.Link {
		case "/users":
			kind = model.SearchKindUser
		case "/documents":
			kind = model.SearchKindDocument
		default:
			kind = model.SearchKindTask
		}
	}

	m.browse = browse.New(m.client, kind, m.layout.ContentWidth(), m.layout.ContentHeight())
	m.view = viewBrowse
	return m, m.browse.Load()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of focus.
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.view == viewLogin {
		return m.routeToActive(msg)
	}

	// Overlays capture input; only their own close keys escape them.
	if m.overlay != overlayNone {
		return m.routeToActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		// q belongs to the browse list while it is on screen.
		if m.view == viewBrowse {
			return m.routeToActive(msg)
		}
		return m.quit()

	case key.Matches(msg, m.keys.Notifications):
		m.overlay = overlayNotifications
		m.poller.Refresh()
		return m, m.notifPanel.SetItems(m.poller.Items())

	case key.Matches(msg, m.keys.Search):
		m.overlay = overlaySearch
		return m, m.searchView.Focus()

	case key.Matches(msg, m.keys.Worklog):
		m.composer = worklog.New(m.client, m.cache, m.layout.ContentWidth(), m.layout.ContentHeight())
		m.overlay = overlayWorklog
		return m, m.composer.Init()

	case key.Matches(msg, m.keys.Refresh):
		if m.view == viewBrowse {
			return m, m.browse.Load()
		}
		m.poller.Refresh()
		return m, m.dashboard.Load()

	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	}

	return m.routeToActive(msg)
}

func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.view == viewLogin {
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	switch m.overlay {
	case overlayNotifications:
		m.notifPanel, cmd = m.notifPanel.Update(msg)
	case overlaySearch:
		m.searchView, cmd = m.searchView.Update(msg)
	case overlayWorklog:
		m.composer, cmd = m.composer.Update(msg)
	default:
		if m.view == viewBrowse {
			m.browse, cmd = m.browse.Update(msg)
		} else {
			m.dashboard, cmd = m.dashboard.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m.sess.Logout(ctx)

	return m.closeSession()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.poller != nil {
		m.poller.Stop()
	}
	if m.aggregator != nil {
		m.aggregator.Stop()
	}
	return m, tea.Quit
}

func (m *Model) clearStatusLater() tea.Cmd {
	m.statusID++
	id := m.statusID
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

func (m Model) headerStatus() string {
	user := m.sess.User()
	name := ""
	if user != nil {
		name = user.Name
	}
	if m.unread > 0 {
		return fmt.Sprintf("%s • %d unread", name, m.unread)
	}
	return name
}

func (m Model) hints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	switch {
	case m.overlay == overlaySearch:
		return "enter open • esc close"
	case m.overlay == overlayNotifications:
		return "m read • M all read • d delete • esc close"
	case m.overlay == overlayWorklog:
		return "enter submit • ctrl+d resume draft • esc close"
	case m.view == viewBrowse:
		return "/ search • esc back • r refresh • q quit"
	default:
		return "/ search • N notifications • w work log • r refresh • ctrl+l log out • q quit"
	}
}
