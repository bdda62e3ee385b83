package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyflow/internal/notify"
	"github.com/sadopc/studyflow/internal/stats"
	"github.com/sadopc/studyflow/internal/store"
)

// dashboardModel is the Timer tab: the study timer plus the derived stats
// header and the coach recommendation.
type dashboardModel struct {
	store     *store.Store
	timer     timerModel
	notifier  *notify.Manager
	weekStart stats.WeekStart
	width     int
	height    int

	subject  textinput.Model
	entering bool
}

func newDashboardModel(s *store.Store, n *notify.Manager, ws stats.WeekStart) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "e.g., Mathematics, History, Programming..."
	ti.CharLimit = 64
	ti.Width = 40

	return dashboardModel{
		store:     s,
		timer:     newTimerModel(s, n),
		notifier:  n,
		weekStart: ws,
		subject:   ti,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.timer.running() }
func (d dashboardModel) isPaused() bool  { return d.timer.paused() }
func (d dashboardModel) elapsed() int    { return d.timer.elapsed() }

// formActive reports whether the subject input is capturing keystrokes.
func (d dashboardModel) formActive() bool { return d.entering }

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if err := d.timer.tick(); err != nil {
			return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return d, nil

	case tea.KeyMsg:
		if d.entering {
			return d.updateSubjectInput(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if d.timer.running() {
				return d, nil
			}
			if d.timer.paused() {
				// Resume a paused attempt without asking for a subject again.
				if err := d.timer.start(); err != nil {
					return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			d.entering = true
			d.subject.SetValue(d.store.CurrentSubject())
			d.subject.Focus()
			return d, textinput.Blink

		case key.Matches(msg, keys.Pause):
			if d.timer.running() {
				if err := d.timer.pause(); err != nil {
					return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
				return d, nil
			}
			if d.timer.paused() {
				// Resuming must restart the tick loop, same as keys.Start.
				if err := d.timer.start(); err != nil {
					return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			return d, nil

		case key.Matches(msg, keys.Stop):
			return d.stopTimer()
		}
	}
	return d, nil
}

func (d dashboardModel) updateSubjectInput(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		d.entering = false
		d.subject.Blur()
		return d, nil
	case key.Matches(msg, keys.Enter):
		d.entering = false
		d.subject.Blur()
		if err := d.store.SetCurrentSubject(strings.TrimSpace(d.subject.Value())); err != nil {
			return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		if err := d.timer.start(); err != nil {
			return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return d, func() tea.Msg { return timerStartedMsg{} }
	}

	var cmd tea.Cmd
	d.subject, cmd = d.subject.Update(msg)
	return d, cmd
}

func (d dashboardModel) stopTimer() (dashboardModel, tea.Cmd) {
	if !d.timer.running() && !d.timer.paused() {
		return d, nil
	}
	saved, err := d.timer.stop(time.Now())
	if err != nil {
		return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return d, func() tea.Msg { return timerStoppedMsg{saved: saved} }
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statsPanel := d.renderStatsPanel(contentWidth)
	coachPanel := d.renderCoachPanel(contentWidth)
	timerPanel := d.renderTimerPanel(contentWidth)
	chartPanel := d.renderWeekChart(contentWidth)

	sections := []string{statsPanel, coachPanel, timerPanel}
	if banner := d.renderNotifyBanner(contentWidth); banner != "" {
		sections = append([]string{banner}, sections...)
	}
	sections = append(sections, chartPanel)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d dashboardModel) renderNotifyBanner(w int) string {
	if d.notifier.Permission() != notify.PermissionDefault {
		return ""
	}
	text := "Enable notifications for reminders and break alerts (press N)"
	return panelStyle.Width(w).Render(highlightStyle.Render(text))
}

func (d dashboardModel) renderStatsPanel(w int) string {
	sessions := d.store.Sessions()
	now := time.Now()

	today := stats.TodayMinutes(sessions, now)
	week := stats.WeekMinutes(sessions, now, d.weekStart)
	streak := stats.Streak(sessions, now)

	cells := []string{
		fmt.Sprintf("%s %s", mutedStyle.Render("TODAY"), titleStyle.Render(formatMinutes(today))),
		fmt.Sprintf("%s %s", mutedStyle.Render("WEEK"), titleStyle.Render(formatMinutes(week))),
		fmt.Sprintf("%s %s", mutedStyle.Render("STREAK"), titleStyle.Render(fmt.Sprintf("%d days", streak))),
		fmt.Sprintf("%s %s", mutedStyle.Render("SESSIONS"), titleStyle.Render(fmt.Sprintf("%d", len(sessions)))),
	}

	return panelStyle.Width(w).Render(strings.Join(cells, "   "))
}

func (d dashboardModel) renderCoachPanel(w int) string {
	sessions := d.store.Sessions()
	now := time.Now()

	todayHours := float64(stats.TodayMinutes(sessions, now)) / 60
	streak := stats.Streak(sessions, now)
	subjects := stats.Subjects(sessions, now)

	message := stats.Recommendation(todayHours, streak, subjects)
	label := accentStyle.Bold(true).Render("AI STUDY COACH")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, label, normalItemStyle.Render(message)),
	)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.entering {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("What are you studying?"),
			"",
			d.subject.View(),
			"",
			mutedStyle.Render("enter: start  esc: cancel"),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	elapsed := d.timer.elapsed()
	timeStr := formatClock(elapsed)

	var timeDisplay, indicator string
	switch {
	case d.timer.running():
		timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
		indicator = successStyle.Render("●  STUDYING")
	case d.timer.paused():
		timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
		indicator = warningStyle.Render("⏸  PAUSED")
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(timeStr)
		indicator = mutedStyle.Render("■  IDLE")
	}

	lines := []string{timeDisplay, indicator}
	if subject := d.timer.subject(); subject != "" {
		lines = append(lines, highlightStyle.Render("Studying: "+subject))
	}
	if !d.timer.running() && !d.timer.paused() {
		lines = append(lines, mutedStyle.Render("Press s to start studying"))
	}

	style := panelStyle
	if d.timer.running() {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// renderWeekChart draws one bar per day for the last seven days, in hours.
func (d dashboardModel) renderWeekChart(w int) string {
	chartWidth := w - 6
	if chartWidth < 20 {
		chartWidth = 20
	}

	chart := barchart.New(chartWidth, 8)
	sessions := d.store.Sessions()
	now := time.Now()

	var bars []barchart.BarData
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		minutes := stats.TodayMinutes(sessions, day)
		bars = append(bars, barchart.BarData{
			Label: day.Format("Mon"),
			Values: []barchart.BarValue{{
				Name:  day.Format("2006-01-02"),
				Value: float64(minutes) / 60,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Last 7 Days (hours)"), chart.View()),
	)
}
