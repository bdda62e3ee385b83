package tui

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/studyflow/internal/notify"
	"github.com/sadopc/studyflow/internal/store"
)

// breakInterval is how much elapsed study time earns a break notification.
const breakInterval = 25 * 60 // seconds

// minSessionSeconds is the shortest study attempt worth recording.
const minSessionSeconds = 60

// timerModel owns the study-timer logic. All timer state lives in the store
// (so it survives restarts); this model applies the tick and stop semantics
// on top of it.
type timerModel struct {
	store    *store.Store
	notifier *notify.Manager
}

func newTimerModel(s *store.Store, n *notify.Manager) timerModel {
	return timerModel{store: s, notifier: n}
}

func (t timerModel) running() bool {
	return t.store.IsTimerRunning()
}

// paused means an attempt is underway but not ticking.
func (t timerModel) paused() bool {
	return !t.store.IsTimerRunning() && t.store.TimerSeconds() > 0
}

func (t timerModel) elapsed() int {
	return t.store.TimerSeconds()
}

func (t timerModel) subject() string {
	return t.store.CurrentSubject()
}

func (t timerModel) start() error {
	return t.store.SetTimerRunning(true)
}

func (t timerModel) pause() error {
	return t.store.SetTimerRunning(false)
}

// tick advances the timer by one second. When the new elapsed value lands on
// an exact multiple of the break interval, a break notification fires.
func (t timerModel) tick() error {
	if !t.store.IsTimerRunning() {
		return nil
	}
	elapsed := t.store.TimerSeconds() + 1
	if err := t.store.SetTimerSeconds(elapsed); err != nil {
		return err
	}
	if elapsed%breakInterval == 0 {
		t.notifier.Send("StudyFlow", "Time for a 5-minute break! 🎉")
	}
	return nil
}

// stop ends the current attempt. Attempts of at least a minute are recorded
// as a completed session; shorter ones are discarded silently. The timer is
// reset to idle either way.
func (t timerModel) stop(now time.Time) (saved bool, err error) {
	elapsed := t.store.TimerSeconds()

	if elapsed >= minSessionSeconds {
		subject := t.store.CurrentSubject()
		if subject == "" {
			subject = "General"
		}
		userID := ""
		if u := t.store.User(); u != nil {
			userID = u.ID
		}
		minutes := elapsed / 60
		session := store.StudySession{
			ID:        uuid.NewString(),
			UserID:    userID,
			Subject:   subject,
			Duration:  minutes,
			Date:      now.Format(time.RFC3339),
			Completed: true,
			CreatedAt: now.Format(time.RFC3339),
		}
		if err := t.store.AddSession(session); err != nil {
			return false, err
		}
		t.notifier.Send("Session Complete!", fmt.Sprintf("You studied %s for %d minutes!", subject, minutes))
		saved = true
	}

	if err := t.store.SetTimerRunning(false); err != nil {
		return saved, err
	}
	if err := t.store.SetTimerSeconds(0); err != nil {
		return saved, err
	}
	if err := t.store.SetCurrentSubject(""); err != nil {
		return saved, err
	}
	return saved, nil
}
