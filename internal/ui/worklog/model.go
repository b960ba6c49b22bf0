// Package worklog is the daily report composer. A submission that fails
// on a network error is kept as a local draft and offered again the
// next time the composer opens.
package worklog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/store"
	"github.com/muynuddinr/work-management-system/internal/theme"
)

// CloseMsg signals the composer should close.
type CloseMsg struct{}

type draftsMsg struct {
	drafts []store.Draft
}

type submitResultMsg struct {
	err     error
	draftID string
}

type draftSavedMsg struct {
	err error
}

// formBindings backs the huh inputs. Shared by pointer so the bindings
// survive model copies between Update calls.
type formBindings struct {
	date  string
	title string
	body  string
	hours string
}

// Model is the work log composer.
type Model struct {
	client *api.Client
	cache  store.Store

	form       *huh.Form
	fb         *formBindings
	draftID    string
	submitting bool
	statusMsg  string
	errMsg     string
	drafts     []store.Draft

	width, height int
}

// New creates the composer and kicks off a draft lookup.
func New(client *api.Client, cache store.Store, width, height int) Model {
	m := Model{
		client: client,
		cache:  cache,
		fb:     &formBindings{date: time.Now().Format("2006-01-02")},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init loads any pending drafts alongside the form.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.loadDrafts())
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftsMsg:
		m.drafts = msg.drafts
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			if api.IsNetworkError(msg.err) {
				// Keep the report; it can be resubmitted later.
				return m, m.saveDraft()
			}
			m.errMsg = api.UserMessage(msg.err)
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		cmds := []tea.Cmd{func() tea.Msg { return CloseMsg{} }}
		if msg.draftID != "" {
			cmds = append(cmds, m.deleteDraft(msg.draftID))
		}
		return m, tea.Batch(cmds...)

	case draftSavedMsg:
		if msg.err != nil {
			m.errMsg = "could not save the report locally"
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.statusMsg = "offline; report saved as draft"
		m.resetFields()
		m.form = m.buildForm()
		return m, tea.Batch(m.form.Init(), m.loadDrafts())

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if !m.submitting {
				return m, func() tea.Msg { return CloseMsg{} }
			}
			return m, nil
		case "ctrl+d":
			return m.resumeDraft()
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
		return m, m.submit()
	}

	return m, cmd
}

// View renders the composer.
func (m Model) View() string {
	header := theme.PanelStyle.Render("Daily Work Log")

	var sections []string
	sections = append(sections, header)

	if len(m.drafts) > 0 {
		sections = append(sections, theme.HelpStyle.Render(
			fmt.Sprintf("%d pending draft(s) - ctrl+d to resume the oldest", len(m.drafts)),
		))
	}
	if m.statusMsg != "" {
		sections = append(sections, theme.UnreadStyle.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
	}

	if m.submitting {
		sections = append(sections, "submitting...")
	} else {
		sections = append(sections, m.form.View())
	}
	sections = append(sections, theme.HelpStyle.Render("esc close"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the composer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) submit() tea.Cmd {
	payload := api.WorkLogPayload{
		Date:        m.fb.date,
		Title:       m.fb.title,
		Description: m.fb.body,
	}
	payload.Hours, _ = strconv.ParseFloat(m.fb.hours, 64)
	client, draftID := m.client, m.draftID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := client.WorkLogs.Create(ctx, payload)
		return submitResultMsg{err: err, draftID: draftID}
	}
}

func (m Model) saveDraft() tea.Cmd {
	hours, _ := strconv.ParseFloat(m.fb.hours, 64)
	draft := store.Draft{
		ID:          m.draftID,
		Date:        m.fb.date,
		Title:       m.fb.title,
		Description: m.fb.body,
		Hours:       hours,
	}
	cache := m.cache

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := cache.SaveDraft(ctx, draft)
		return draftSavedMsg{err: err}
	}
}

func (m Model) deleteDraft(id string) tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cache.DeleteDraft(ctx, id)
		return nil
	}
}

func (m Model) loadDrafts() tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		drafts, err := cache.GetDrafts(ctx)
		if err != nil {
			return draftsMsg{}
		}
		return draftsMsg{drafts: drafts}
	}
}

// resumeDraft loads the oldest pending draft into the form.
func (m Model) resumeDraft() (Model, tea.Cmd) {
	if len(m.drafts) == 0 || m.submitting {
		return m, nil
	}

	d := m.drafts[0]
	m.draftID = d.ID
	m.fb.date = d.Date
	m.fb.title = d.Title
	m.fb.body = d.Description
	m.fb.hours = strconv.FormatFloat(d.Hours, 'f', -1, 64)
	m.statusMsg = "draft loaded"
	m.form = m.buildForm()
	return m, m.form.Init()
}

func (m *Model) resetFields() {
	m.draftID = ""
	m.fb.date = time.Now().Format("2006-01-02")
	m.fb.title = ""
	m.fb.body = ""
	m.fb.hours = ""
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Title").
				Value(&m.fb.title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("What did you work on?").
				Value(&m.fb.body).
				Validate(validateRequired("description")),
			huh.NewInput().
				Title("Hours worked").
				Value(&m.fb.hours).
				Validate(validateHours),
		),
	).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(value string) error {
		if value == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateHours(value string) error {
	hours, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("hours must be a number")
	}
	if hours <= 0 || hours > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	return nil
}
