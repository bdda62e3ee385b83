package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sadopc/studyflow/internal/remind"
	"github.com/sadopc/studyflow/internal/store"
)

// remindersModel lists reminders and hosts the add-reminder form. Toggling
// flips the enabled flag; the actual firing happens on the 60-second poll.
type remindersModel struct {
	store  *store.Store
	width  int
	height int
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle *string
	formTime  *string
	formDays  *[]string
}

func newRemindersModel(s *store.Store) remindersModel {
	title, timeStr := "", ""
	days := []string{}
	return remindersModel{
		store:     s,
		formTitle: &title,
		formTime:  &timeStr,
		formDays:  &days,
	}
}

func (m *remindersModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m remindersModel) update(msg tea.Msg) (remindersModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		reminders := m.store.Reminders()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(reminders)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Toggle):
			if len(reminders) == 0 {
				return m, nil
			}
			r := reminders[m.cursor]
			enabled := !r.Enabled
			if err := m.store.UpdateReminder(r.ID, store.ReminderUpdate{Enabled: &enabled}); err != nil {
				return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			return m, nil
		case key.Matches(msg, keys.Delete):
			if len(reminders) == 0 {
				return m, nil
			}
			if err := m.store.DeleteReminder(reminders[m.cursor].ID); err != nil {
				return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			if m.cursor >= len(reminders)-1 && m.cursor > 0 {
				m.cursor--
			}
			return m, statusCmd("Reminder deleted", false)
		}
	}
	return m, nil
}

func (m remindersModel) showForm() (remindersModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formTime = ""
	*m.formDays = []string{}

	var dayOptions []huh.Option[string]
	for _, d := range remind.Weekdays {
		dayOptions = append(dayOptions, huh.NewOption(capitalize(d), d))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().Title("Time (HH:MM, 24h)").Value(m.formTime).
				Validate(func(v string) error {
					if !remind.ValidTime(v) {
						return fmt.Errorf("use 24-hour HH:MM")
					}
					return nil
				}),
			huh.NewMultiSelect[string]().Title("Days").
				Options(dayOptions...).
				Value(m.formDays).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
		).Title("New Reminder"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m remindersModel) updateForm(msg tea.Msg) (remindersModel, tea.Cmd) {
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
		return m.saveReminder()
	}

	return m, cmd
}

func (m remindersModel) saveReminder() (remindersModel, tea.Cmd) {
	userID := ""
	if u := m.store.User(); u != nil {
		userID = u.ID
	}

	reminder := store.Reminder{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   strings.TrimSpace(*m.formTitle),
		Time:    *m.formTime,
		Days:    append([]string(nil), *m.formDays...),
		Enabled: true,
	}
	if err := m.store.AddReminder(reminder); err != nil {
		return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return m, statusCmd("Reminder added", false)
}

func (m remindersModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Reminders"), "", m.form.View()),
		)
	}

	reminders := m.store.Reminders()
	title := titleStyle.Render("Reminders")
	if len(reminders) == 0 {
		return panelStyle.Width(w).Render(
			title + "\n" + mutedStyle.Render("No reminders yet. Press n to add one."),
		)
	}

	var rows []string
	rows = append(rows, title)
	for i, r := range reminders {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		state := successStyle.Render("on ")
		if !r.Enabled {
			state = mutedStyle.Render("off")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s  %-24s %s", cursor, state, r.Time, r.Title, shortDays(r.Days))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  t: toggle  d: delete  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func shortDays(days []string) string {
	var out []string
	for _, d := range days {
		if len(d) >= 3 {
			out = append(out, capitalize(d[:3]))
		}
	}
	return mutedStyle.Render(strings.Join(out, " "))
}
