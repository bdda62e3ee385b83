package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewSessions
	viewGoals
	viewReminders
	viewTips
)

var viewNames = []string{"Timer", "Sessions", "Goals", "Reminders", "Tips"}

// --- Messages ---

// tickMsg drives the 1-second timer cadence. It carries the generation of
// the loop that scheduled it; the root model drops ticks from superseded
// loops so a pause/resume cycle never leaves two loops running.
type tickMsg struct {
	gen int
}

// pollMsg drives the 60-second reminder evaluation cadence for as long as
// the dashboard is mounted.
type pollMsg time.Time

type timerStartedMsg struct{}

type timerStoppedMsg struct {
	saved bool // whether a session was recorded
}

type statusMsg struct {
	text    string
	isError bool
}

type authResultMsg struct {
	err     error
	message string
}

type loggedOutMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
