package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studyflow/internal/auth"
	"github.com/sadopc/studyflow/internal/notify"
	"github.com/sadopc/studyflow/internal/store"
)

// recordingSink captures notification titles for assertions.
type recordingSink struct {
	sent []string
}

func (r *recordingSink) Notify(title, body string) error {
	r.sent = append(r.sent, title)
	return nil
}

func newTestTimer(t *testing.T) (timerModel, *store.Store, *recordingSink) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	s.SetUser(auth.DemoUser())
	sink := &recordingSink{}
	return newTimerModel(s, notify.NewManager(notify.PermissionGranted, sink)), s, sink
}

func tickN(t *testing.T, tm timerModel, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := tm.tick(); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
	}
}

// ============================================================
// Timer lifecycle
// ============================================================

func TestTimerShortAttemptDiscarded(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	s.SetCurrentSubject("Math")
	tm.start()
	tickN(t, tm, 59)

	saved, err := tm.stop(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if saved {
		t.Fatal("a 59-second attempt must not be recorded")
	}
	if len(s.Sessions()) != 0 {
		t.Fatalf("expected no sessions, got %d", len(s.Sessions()))
	}
	if s.IsTimerRunning() || s.TimerSeconds() != 0 || s.CurrentSubject() != "" {
		t.Fatal("timer must reset to idle even when nothing is saved")
	}
}

func TestTimerStopRecordsSession(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	s.SetCurrentSubject("Math")
	tm.start()
	tickN(t, tm, 90)

	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.Local)
	saved, err := tm.stop(now)
	if err != nil {
		t.Fatal(err)
	}
	if !saved {
		t.Fatal("a 90-second attempt must be recorded")
	}

	sessions := s.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Duration != 1 {
		t.Fatalf("90 seconds should record 1 minute, got %d", got.Duration)
	}
	if got.Subject != "Math" || !got.Completed {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.UserID != "demo-user" {
		t.Fatalf("session should carry the signed-in user, got %q", got.UserID)
	}
	if got.Date != now.Format(time.RFC3339) {
		t.Fatalf("unexpected date %q", got.Date)
	}
	if s.IsTimerRunning() || s.TimerSeconds() != 0 || s.CurrentSubject() != "" {
		t.Fatal("timer must reset after stop")
	}
}

func TestTimerDefaultSubject(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	tm.start()
	s.SetTimerSeconds(120)

	if _, err := tm.stop(time.Now()); err != nil {
		t.Fatal(err)
	}
	if got := s.Sessions()[0].Subject; got != "General" {
		t.Fatalf("expected default subject General, got %q", got)
	}
}

func TestTimerPauseKeepsElapsed(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	tm.start()
	tickN(t, tm, 10)

	tm.pause()
	if !tm.paused() {
		t.Fatal("expected paused state")
	}
	tm.tick() // ticks while paused are ignored
	if s.TimerSeconds() != 10 {
		t.Fatalf("pause must freeze elapsed at 10, got %d", s.TimerSeconds())
	}

	tm.start()
	if !tm.running() {
		t.Fatal("start should resume")
	}
	tickN(t, tm, 1)
	if s.TimerSeconds() != 11 {
		t.Fatalf("resume should continue from 10, got %d", s.TimerSeconds())
	}
}

func TestTimerStopFromIdle(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	saved, err := tm.stop(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if saved || len(s.Sessions()) != 0 {
		t.Fatal("stopping an idle timer must be a no-op")
	}
}

// ============================================================
// Break notification
// ============================================================

func TestBreakNotificationAtInterval(t *testing.T) {
	tm, s, sink := newTestTimer(t)
	tm.start()
	s.SetTimerSeconds(breakInterval - 1)

	tickN(t, tm, 1) // lands exactly on the interval
	if len(sink.sent) != 1 || sink.sent[0] != "StudyFlow" {
		t.Fatalf("expected one break notification, got %v", sink.sent)
	}

	tickN(t, tm, 1) // one past the interval
	if len(sink.sent) != 1 {
		t.Fatalf("no notification expected off the interval, got %v", sink.sent)
	}
}

func TestBreakNotificationRepeatsEachInterval(t *testing.T) {
	tm, s, sink := newTestTimer(t)
	tm.start()

	s.SetTimerSeconds(breakInterval - 1)
	tickN(t, tm, 1)
	s.SetTimerSeconds(2*breakInterval - 1)
	tickN(t, tm, 1)

	if len(sink.sent) != 2 {
		t.Fatalf("expected a notification per interval, got %v", sink.sent)
	}
}

// ============================================================
// Tick loop lifecycle
// ============================================================

func TestSpaceResumeRestartsTickLoop(t *testing.T) {
	app, s, _ := newTestApp(t)
	s.SetUser(auth.DemoUser())
	s.SetTimerRunning(true)
	s.SetTimerSeconds(5)

	space := tea.KeyMsg{Type: tea.KeySpace}

	model, _ := app.Update(space) // pause
	a := model.(App)
	if s.IsTimerRunning() {
		t.Fatal("space should pause a running timer")
	}

	// The old loop delivers its final tick and ends: no reschedule.
	model, cmd := a.Update(tickMsg{gen: a.tickGen})
	if cmd != nil {
		t.Fatal("a paused timer must not reschedule the tick loop")
	}
	a = model.(App)

	model, cmd = a.Update(space) // resume
	a = model.(App)
	if !s.IsTimerRunning() {
		t.Fatal("space should resume a paused timer")
	}
	if cmd == nil {
		t.Fatal("resuming must schedule work")
	}
	msg := cmd()
	if _, ok := msg.(timerStartedMsg); !ok {
		t.Fatalf("resume should announce the start, got %T", msg)
	}

	_, cmd = a.Update(msg)
	if cmd == nil {
		t.Fatal("the start announcement must restart the tick loop")
	}
}

func TestStaleTickDropped(t *testing.T) {
	app, s, _ := newTestApp(t)
	s.SetUser(auth.DemoUser())
	s.SetTimerRunning(true)
	s.SetTimerSeconds(10)

	// Restarting bumps the generation, superseding any pending tick.
	model, _ := app.Update(timerStartedMsg{})
	a := model.(App)

	model, cmd := a.Update(tickMsg{gen: a.tickGen - 1})
	if cmd != nil {
		t.Fatal("a superseded tick must not reschedule itself")
	}
	if s.TimerSeconds() != 10 {
		t.Fatalf("a superseded tick must not advance the timer, got %d", s.TimerSeconds())
	}
	a = model.(App)

	// The live generation still advances and keeps its loop alive.
	_, cmd = a.Update(tickMsg{gen: a.tickGen})
	if s.TimerSeconds() != 11 {
		t.Fatalf("expected 11 seconds after a live tick, got %d", s.TimerSeconds())
	}
	if cmd == nil {
		t.Fatal("a live tick must reschedule while running")
	}
}

// ============================================================
// Sign-in side effects
// ============================================================

func TestSignInClearsDemoFlag(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := auth.NewService(s)
	if _, err := svc.SignUp("ada@example.com", "hunter22", "Ada"); err != nil {
		t.Fatal(err)
	}

	// A demo session was used earlier and the flag survived logout.
	s.SetDemoMode(true)

	m := newLoginModel(s, svc)
	*m.email = "ada@example.com"
	*m.password = "hunter22"

	msg := m.submit()()
	if res, ok := msg.(authResultMsg); !ok || res.err != nil {
		t.Fatalf("expected successful sign-in, got %#v", msg)
	}
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated after sign-in")
	}
	if s.IsDemoMode() {
		t.Fatal("a real sign-in must clear the demo flag")
	}
}

// ============================================================
// Export
// ============================================================

func TestExportReportsMissingHome(t *testing.T) {
	app, s, _ := newTestApp(t)
	s.SetUser(auth.DemoUser())
	t.Setenv("HOME", "")

	msg := app.doExport(0)()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected a status message, got %T", msg)
	}
	if !status.isError {
		t.Fatalf("expected an error status, got %q", status.text)
	}
}

// ============================================================
// Reminder evaluation
// ============================================================

func newTestApp(t *testing.T) (*App, *store.Store, *recordingSink) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	sink := &recordingSink{}
	app := NewApp(s, auth.NewService(s), notify.NewManager(notify.PermissionGranted, sink))
	return &app, s, sink
}

func TestEvaluateRemindersFiresDue(t *testing.T) {
	app, s, sink := newTestApp(t)
	s.SetUser(auth.DemoUser())

	// Monday 2025-03-03 18:30 local.
	now := time.Date(2025, time.March, 3, 18, 30, 0, 0, time.Local)
	s.AddReminder(store.Reminder{ID: "r1", Title: "Evening review", Time: "18:30", Days: []string{"monday"}, Enabled: true})
	s.AddReminder(store.Reminder{ID: "r2", Title: "Morning review", Time: "08:00", Days: []string{"monday"}, Enabled: true})
	s.AddReminder(store.Reminder{ID: "r3", Title: "Disabled", Time: "18:30", Days: []string{"monday"}, Enabled: false})

	app.evaluateReminders(now)
	if len(sink.sent) != 1 || sink.sent[0] != "Study Reminder" {
		t.Fatalf("expected exactly the due reminder, got %v", sink.sent)
	}

	// Same minute again fires again; there is no dedup window.
	app.evaluateReminders(now.Add(30 * time.Second))
	if len(sink.sent) != 2 {
		t.Fatalf("expected a second fire within the minute, got %v", sink.sent)
	}
}

func TestEvaluateRemindersRequiresAuth(t *testing.T) {
	app, s, sink := newTestApp(t)
	now := time.Date(2025, time.March, 3, 18, 30, 0, 0, time.Local)
	s.AddReminder(store.Reminder{ID: "r1", Title: "Evening review", Time: "18:30", Days: []string{"monday"}, Enabled: true})

	app.evaluateReminders(now)
	if len(sink.sent) != 0 {
		t.Fatalf("signed-out evaluation must not notify, got %v", sink.sent)
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("monday"); got != "Monday" {
		t.Fatalf("expected Monday, got %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestDashboardViewRenders(t *testing.T) {
	app, s, _ := newTestApp(t)
	s.SetUser(auth.DemoUser())
	s.SetDemoMode(true)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	out := model.View()
	if !strings.Contains(out, "StudyFlow") {
		t.Fatal("view should carry the app title")
	}
	if !strings.Contains(out, "demo") {
		t.Fatal("view should mark demo mode")
	}
}
