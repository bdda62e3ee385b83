package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sadopc/studyflow/internal/store"
)

// goalsModel lists subject goals and hosts the add-goal form.
type goalsModel struct {
	store  *store.Store
	width  int
	height int
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formSubject  *string
	formTarget   *string
	formDeadline *string
}

func newGoalsModel(s *store.Store) goalsModel {
	subject, target, deadline := "", "", ""
	return goalsModel{
		store:        s,
		formSubject:  &subject,
		formTarget:   &target,
		formDeadline: &deadline,
	}
}

func (m *goalsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		goals := m.store.Goals()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(goals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			if len(goals) == 0 {
				return m, nil
			}
			if err := m.store.DeleteGoal(goals[m.cursor].ID); err != nil {
				return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			if m.cursor >= len(goals)-1 && m.cursor > 0 {
				m.cursor--
			}
			return m, statusCmd("Goal deleted", false)
		}
	}
	return m, nil
}

func (m goalsModel) showForm() (goalsModel, tea.Cmd) {
	*m.formSubject = ""
	*m.formTarget = ""
	*m.formDeadline = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject").Value(m.formSubject).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("subject is required")
					}
					return nil
				}),
			huh.NewInput().Title("Target hours").Value(m.formTarget).
				Validate(func(v string) error {
					n, err := strconv.ParseFloat(v, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a number greater than 0")
					}
					return nil
				}),
			huh.NewInput().Title("Deadline (YYYY-MM-DD)").Value(m.formDeadline).
				Validate(func(v string) error {
					if _, err := time.Parse("2006-01-02", v); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		).Title("New Goal"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.saveGoal()
	}

	return m, cmd
}

func (m goalsModel) saveGoal() (goalsModel, tea.Cmd) {
	target, _ := strconv.ParseFloat(*m.formTarget, 64)
	userID := ""
	if u := m.store.User(); u != nil {
		userID = u.ID
	}

	goal := store.StudyGoal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Subject:     strings.TrimSpace(*m.formSubject),
		TargetHours: target,
		Deadline:    *m.formDeadline,
	}
	if err := m.store.AddGoal(goal); err != nil {
		return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return m, statusCmd("Goal added", false)
}

func (m goalsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Goals"), "", m.form.View()),
		)
	}

	goals := m.store.Goals()
	title := titleStyle.Render("Study Goals")
	if len(goals) == 0 {
		return panelStyle.Width(w).Render(
			title + "\n" + mutedStyle.Render("No goals yet. Press n to add one."),
		)
	}

	var rows []string
	rows = append(rows, title)
	for i, g := range goals {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %s", cursor, g.Subject, renderProgress(g, 24))))
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %.1f / %.1f hours · due %s", g.CurrentHours, g.TargetHours, g.Deadline)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderProgress draws a bar capped at 100% for display. The stored
// CurrentHours may exceed TargetHours; only the display caps.
func renderProgress(g store.StudyGoal, width int) string {
	pct := 0.0
	if g.TargetHours > 0 {
		pct = g.CurrentHours / g.TargetHours
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return successStyle.Render(bar) + mutedStyle.Render(fmt.Sprintf(" %3.0f%%", pct*100))
}
