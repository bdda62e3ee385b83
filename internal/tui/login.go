package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyflow/internal/auth"
	"github.com/sadopc/studyflow/internal/store"
)

type loginMode int

const (
	modeSignIn loginMode = iota
	modeSignUp
)

// loginModel gates the app until SetUser succeeds. Provider failures show as
// a message string; they never touch the store.
type loginModel struct {
	store    *store.Store
	provider auth.Provider
	width    int
	height   int

	mode    loginMode
	form    *huh.Form
	errText string
	info    string

	email    *string
	password *string
	name     *string
}

func newLoginModel(s *store.Store, provider auth.Provider) loginModel {
	email, password, name := "", "", ""
	m := loginModel{
		store:    s,
		provider: provider,
		email:    &email,
		password: &password,
		name:     &name,
	}
	m.form = m.buildForm()
	return m
}

func (m *loginModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m loginModel) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Email").Value(m.email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(m.password),
	}
	if m.mode == modeSignUp {
		fields = append(fields, huh.NewInput().Title("Name").Value(m.name))
	}
	groupTitle := "Sign In"
	if m.mode == modeSignUp {
		groupTitle = "Create Account"
	}
	return huh.NewForm(huh.NewGroup(fields...).Title(groupTitle)).
		WithShowHelp(true).WithShowErrors(true)
}

func (m loginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			// Flip between sign-in and sign-up.
			if m.mode == modeSignIn {
				m.mode = modeSignUp
			} else {
				m.mode = modeSignIn
			}
			m.errText = ""
			m.info = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		case "ctrl+d":
			return m, m.demoLogin()
		}

	case authResultMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		if msg.message != "" {
			m.info = msg.message
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}

	return m, cmd
}

func (m loginModel) submit() tea.Cmd {
	email := strings.TrimSpace(*m.email)
	password := *m.password
	name := strings.TrimSpace(*m.name)
	mode := m.mode

	return func() tea.Msg {
		var user *store.User
		var err error
		if mode == modeSignUp {
			user, err = m.provider.SignUp(email, password, name)
		} else {
			user, err = m.provider.SignIn(email, password)
		}
		if errors.Is(err, auth.ErrConfirmationRequired) {
			return authResultMsg{message: err.Error()}
		}
		if err != nil {
			return authResultMsg{err: err}
		}
		if err := m.store.SetUser(user); err != nil {
			return authResultMsg{err: err}
		}
		// A real identity ends any lingering demo session.
		if err := m.store.SetDemoMode(false); err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{}
	}
}

func (m loginModel) demoLogin() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.SetUser(auth.DemoUser()); err != nil {
			return authResultMsg{err: err}
		}
		if err := m.store.SetDemoMode(true); err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{}
	}
}

func (m loginModel) view() string {
	w := m.width - 4
	if w < 30 {
		w = 30
	}

	logo := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("StudyFlow")
	tagline := mutedStyle.Render("Track smarter, learn faster")

	var lines []string
	lines = append(lines, logo, tagline, "")
	if m.errText != "" {
		lines = append(lines, errorStyle.Render(m.errText), "")
	}
	if m.info != "" {
		lines = append(lines, successStyle.Render(m.info), "")
	}
	lines = append(lines, m.form.View())
	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("ctrl+t: sign in / sign up   ctrl+d: try demo mode"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
