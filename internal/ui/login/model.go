// Package login is the sign-in / registration view.
package login

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/session"
	"github.com/muynuddinr/work-management-system/internal/theme"
)

// Mode selects between the login and registration forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// AuthenticatedMsg signals a successful login or registration.
type AuthenticatedMsg struct{}

// resultMsg carries the outcome of a submit attempt.
type resultMsg struct {
	err error
}

// formBindings backs the huh inputs. It is shared by pointer so the
// bindings survive model copies between Update calls.
type formBindings struct {
	email      string
	password   string
	name       string
	department string
}

// Model is the Bubble Tea model for the auth view.
type Model struct {
	session *session.Manager
	mode    Mode

	form       *huh.Form
	fb         *formBindings
	submitting bool
	spinner    spinner.Model
	errMsg     string

	width, height int
}

// New creates the auth view in login mode.
func New(s *session.Manager, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		session: s,
		mode:    ModeLogin,
		fb:      &formBindings{},
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildLoginForm()
	return m
}

// Init starts the active form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the auth view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.resetForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return AuthenticatedMsg{} }

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "tab" && !m.submitting && m.form.State != huh.StateCompleted {
			// Allow tab to move between fields; huh handles it.
			break
		}
		if msg.String() == "ctrl+r" && !m.submitting {
			m.toggleMode()
			return m, m.form.Init()
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}

	return m, cmd
}

// View renders the auth form inside a centered panel.
func (m Model) View() string {
	title := "Sign in"
	hint := "ctrl+r: create an account"
	if m.mode == ModeRegister {
		title = "Create account"
		hint = "ctrl+r: back to sign in"
	}

	var body string
	switch {
	case m.submitting:
		body = m.spinner.View() + " Signing in..."
	default:
		body = m.form.View()
	}

	sections := []string{
		theme.HeaderStyle.Render(title),
		body,
	}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
	}
	sections = append(sections, theme.HelpStyle.Render(hint))

	panel := theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		panel,
	)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// toggleMode switches between login and registration, rebuilding the form.
func (m *Model) toggleMode() {
	m.errMsg = ""
	if m.mode == ModeLogin {
		m.mode = ModeRegister
		m.form = m.buildRegisterForm()
	} else {
		m.mode = ModeLogin
		m.form = m.buildLoginForm()
	}
}

// resetForm rebuilds the active form after a failed submit so the user
// can try again.
func (m *Model) resetForm() {
	m.fb.password = ""
	if m.mode == ModeLogin {
		m.form = m.buildLoginForm()
	} else {
		m.form = m.buildRegisterForm()
	}
}

// submit runs the login or registration call off the UI goroutine.
func (m Model) submit() tea.Cmd {
	s := m.session
	mode := m.mode
	email := strings.TrimSpace(m.fb.email)
	password := m.fb.password
	name := strings.TrimSpace(m.fb.name)
	department := strings.TrimSpace(m.fb.department)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if mode == ModeLogin {
			err = s.Login(ctx, email, password)
		} else {
			err = s.Register(ctx, api.RegisterPayload{
				Name:       name,
				Email:      email,
				Password:   password,
				Department: department,
			})
		}
		return resultMsg{err: err}
	}
}

func (m *Model) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	)
}

func (m *Model) buildRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
			huh.NewInput().
				Title("Department").
				Placeholder("Engineering").
				Value(&m.fb.department),
		),
	)
}

// validateRequired returns a huh validator that rejects blank input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
