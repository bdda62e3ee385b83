package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyflow/internal/auth"
	"github.com/sadopc/studyflow/internal/export"
	"github.com/sadopc/studyflow/internal/notify"
	"github.com/sadopc/studyflow/internal/remind"
	"github.com/sadopc/studyflow/internal/stats"
	"github.com/sadopc/studyflow/internal/store"
)

// App is the root Bubble Tea model. While unauthenticated it shows the login
// view; afterwards the tabbed dashboard. Two cadences run as self-scheduling
// messages: a 1-second tick that only lives while the timer runs, and a
// 60-second poll that evaluates reminders for as long as the app is mounted.
type App struct {
	store    *store.Store
	provider auth.Provider
	notifier *notify.Manager
	width    int
	height   int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// tickGen identifies the live tick loop. Every (re)start bumps it, and
	// ticks carrying an older generation are dropped, so at most one loop
	// schedules ticks at a time.
	tickGen int

	login     loginModel
	dashboard dashboardModel
	sessions  sessionsModel
	goals     goalsModel
	reminders remindersModel
	tips      tipsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, provider auth.Provider, notifier *notify.Manager) App {
	h := help.New()
	h.ShowAll = false

	ws := stats.ParseWeekStart(s.GetSettingOr("week_start", "sunday"))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return App{
		store:      s,
		provider:   provider,
		notifier:   notifier,
		activeView: viewTimer,
		login:      newLoginModel(s, provider),
		dashboard:  newDashboardModel(s, notifier, ws),
		sessions:   newSessionsModel(s),
		goals:      newGoalsModel(s),
		reminders:  newRemindersModel(s),
		tips:       newTipsModel(rng),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{pollCmd()}
	if !a.store.IsAuthenticated() {
		cmds = append(cmds, a.login.Init())
	}
	if a.store.IsTimerRunning() {
		// A running timer was rehydrated from a previous process.
		cmds = append(cmds, tickCmd(a.tickGen))
	}
	return tea.Batch(cmds...)
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func pollCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.sessions.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.reminders.setSize(a.width, contentHeight)
		a.tips.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		if msg.gen != a.tickGen {
			// A tick from a superseded loop; the restarted loop already
			// covers this cadence.
			return a, nil
		}
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		if a.store.IsTimerRunning() {
			// Keep the loop alive only while running; pausing or stopping
			// lets it end here.
			return a, tea.Batch(cmd, tickCmd(a.tickGen))
		}
		return a, cmd

	case pollMsg:
		a.evaluateReminders(time.Time(msg))
		return a, pollCmd()

	case timerStartedMsg:
		a.status = "Timer started"
		a.tickGen++
		return a, tickCmd(a.tickGen)

	case timerStoppedMsg:
		if msg.saved {
			a.status = "Session saved"
		} else {
			a.status = "Too short to record (under a minute)"
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case loggedOutMsg:
		a.status = ""
		a.login = newLoginModel(a.store, a.provider)
		a.login.setSize(a.width, a.height-4)
		return a, a.login.Init()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	if !a.store.IsAuthenticated() {
		return a.updateLogin(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form or subject entry),
		// delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Notify):
			perm := a.notifier.Request()
			a.store.SetSetting("notifications", string(perm))
			a.status = "Notifications " + string(perm)
			return a, nil
		case key.Matches(msg, keys.Logout):
			if err := a.store.Logout(); err != nil {
				a.status = fmt.Sprintf("Error: %v", err)
				return a, nil
			}
			return a, func() tea.Msg { return loggedOutMsg{} }
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewSessions
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewGoals
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReminders
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewTips
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, nil
		}
	}

	return a.updateActiveView(msg)
}

// evaluateReminders fires a notification for every reminder due right now.
// No dedup: matching again within the same minute fires again.
func (a *App) evaluateReminders(now time.Time) {
	if !a.store.IsAuthenticated() {
		return
	}
	for _, r := range remind.Due(a.store.Reminders(), now) {
		a.notifier.Send("Study Reminder", r.Title)
	}
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	a.login, cmd = a.login.update(msg)
	if a.store.IsAuthenticated() {
		a.status = "Welcome back"
	}
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewSessions:
		a.sessions, cmd = a.sessions.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewReminders:
		a.reminders, cmd = a.reminders.update(msg)
	case viewTips:
		a.tips, cmd = a.tips.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTimer:
		return a.dashboard.formActive()
	case viewGoals:
		return a.goals.formActive
	case viewReminders:
		return a.reminders.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if !a.store.IsAuthenticated() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.login.view())
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.dashboard.view()
	case viewSessions:
		content = a.sessions.view()
	case viewGoals:
		content = a.goals.view()
	case viewReminders:
		content = a.reminders.view()
	case viewTips:
		content = a.tips.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("StudyFlow")
	who := ""
	if u := a.store.User(); u != nil {
		name := u.Name
		if name == "" {
			name = u.Email
		}
		who = mutedStyle.Render(" " + name)
		if a.store.IsDemoMode() {
			who += warningStyle.Render(" (demo)")
		}
	}

	left := title + who
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	if a.dashboard.isRunning() {
		timerInfo = successStyle.Render(" ● " + formatClock(a.dashboard.elapsed()))
	} else if a.dashboard.isPaused() {
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.dashboard.elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sessions := a.store.Sessions()

		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("studyflow-export-%s.csv", dateStr))
			if err := export.ToCSV(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("studyflow-export-%s.json", dateStr))
			if err := export.ToJSON(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
