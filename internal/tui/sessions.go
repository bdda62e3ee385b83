package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studyflow/internal/store"
)

// sessionsModel lists the recorded study sessions, newest first.
type sessionsModel struct {
	store  *store.Store
	width  int
	height int
	cursor int
}

func newSessionsModel(s *store.Store) sessionsModel {
	return sessionsModel{store: s}
}

func (m *sessionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// listed returns sessions newest first, which is how the view shows them.
func (m sessionsModel) listed() []store.StudySession {
	sessions := m.store.Sessions()
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions
}

func (m sessionsModel) update(msg tea.Msg) (sessionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		sessions := m.listed()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(sessions)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if len(sessions) == 0 {
				return m, nil
			}
			target := sessions[m.cursor]
			if err := m.store.DeleteSession(target.ID); err != nil {
				return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			if m.cursor >= len(sessions)-1 && m.cursor > 0 {
				m.cursor--
			}
			return m, statusCmd("Session deleted", false)
		}
	}
	return m, nil
}

func (m sessionsModel) view() string {
	w := m.width - 4
	sessions := m.listed()

	title := titleStyle.Render("Study Sessions")
	if len(sessions) == 0 {
		return panelStyle.Width(w).Render(
			title + "\n" + mutedStyle.Render("No sessions yet. Start the timer to record one."),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-24s %10s", "Date", "Subject", "Duration")))

	visible := m.height - 8
	if visible < 3 {
		visible = 3
	}
	for i, s := range sessions {
		if i >= visible {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(sessions)-visible)))
			break
		}
		dateStr := s.Date
		if t, err := time.Parse(time.RFC3339, s.Date); err == nil {
			dateStr = t.Local().Format("Jan 02 15:04")
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-24s %10s", cursor, dateStr, s.Subject, formatMinutes(s.Duration))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  d: delete  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
