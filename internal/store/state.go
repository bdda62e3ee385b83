package store

// All mutation operations funnel through this file. Each one updates the
// in-memory snapshot and commits the full serialized state before returning,
// in call order. Delete and update of an unknown id are silent no-ops: the
// collections behave as idempotent sets keyed by id, with insertion order
// preserved for the surviving items.

// Snapshot returns a copy of the current state. Slices are cloned so callers
// can hold the snapshot across later mutations.
func (s *Store) Snapshot() State {
	st := s.state
	st.Sessions = append([]StudySession(nil), s.state.Sessions...)
	st.Goals = append([]StudyGoal(nil), s.state.Goals...)
	st.Reminders = append([]Reminder(nil), s.state.Reminders...)
	if s.state.User != nil {
		u := *s.state.User
		st.User = &u
	}
	return st
}

func (s *Store) User() *User {
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Store) IsAuthenticated() bool { return s.state.IsAuthenticated }
func (s *Store) IsDemoMode() bool      { return s.state.IsDemoMode }
func (s *Store) IsTimerRunning() bool  { return s.state.IsTimerRunning }
func (s *Store) TimerSeconds() int     { return s.state.TimerSeconds }
func (s *Store) CurrentSubject() string {
	return s.state.CurrentSubject
}

func (s *Store) Sessions() []StudySession {
	return append([]StudySession(nil), s.state.Sessions...)
}

func (s *Store) Goals() []StudyGoal {
	return append([]StudyGoal(nil), s.state.Goals...)
}

func (s *Store) Reminders() []Reminder {
	return append([]Reminder(nil), s.state.Reminders...)
}

// SetUser sets the current user; IsAuthenticated is derived from it.
func (s *Store) SetUser(u *User) error {
	if u != nil {
		copied := *u
		s.state.User = &copied
	} else {
		s.state.User = nil
	}
	s.state.IsAuthenticated = u != nil
	return s.commit()
}

func (s *Store) SetDemoMode(demo bool) error {
	s.state.IsDemoMode = demo
	return s.commit()
}

func (s *Store) AddSession(session StudySession) error {
	s.state.Sessions = append(s.state.Sessions, session)
	return s.commit()
}

func (s *Store) UpdateSession(id string, upd SessionUpdate) error {
	for i := range s.state.Sessions {
		if s.state.Sessions[i].ID != id {
			continue
		}
		sess := &s.state.Sessions[i]
		if upd.Subject != nil {
			sess.Subject = *upd.Subject
		}
		if upd.Duration != nil {
			sess.Duration = *upd.Duration
		}
		if upd.Notes != nil {
			sess.Notes = *upd.Notes
		}
		if upd.Completed != nil {
			sess.Completed = *upd.Completed
		}
		break
	}
	return s.commit()
}

func (s *Store) DeleteSession(id string) error {
	kept := s.state.Sessions[:0]
	for _, sess := range s.state.Sessions {
		if sess.ID != id {
			kept = append(kept, sess)
		}
	}
	s.state.Sessions = kept
	return s.commit()
}

func (s *Store) AddGoal(goal StudyGoal) error {
	s.state.Goals = append(s.state.Goals, goal)
	return s.commit()
}

func (s *Store) UpdateGoal(id string, upd GoalUpdate) error {
	for i := range s.state.Goals {
		if s.state.Goals[i].ID != id {
			continue
		}
		goal := &s.state.Goals[i]
		if upd.Subject != nil {
			goal.Subject = *upd.Subject
		}
		if upd.TargetHours != nil {
			goal.TargetHours = *upd.TargetHours
		}
		if upd.CurrentHours != nil {
			goal.CurrentHours = *upd.CurrentHours
		}
		if upd.Deadline != nil {
			goal.Deadline = *upd.Deadline
		}
		break
	}
	return s.commit()
}

func (s *Store) DeleteGoal(id string) error {
	kept := s.state.Goals[:0]
	for _, goal := range s.state.Goals {
		if goal.ID != id {
			kept = append(kept, goal)
		}
	}
	s.state.Goals = kept
	return s.commit()
}

func (s *Store) AddReminder(reminder Reminder) error {
	s.state.Reminders = append(s.state.Reminders, reminder)
	return s.commit()
}

func (s *Store) UpdateReminder(id string, upd ReminderUpdate) error {
	for i := range s.state.Reminders {
		if s.state.Reminders[i].ID != id {
			continue
		}
		rem := &s.state.Reminders[i]
		if upd.Title != nil {
			rem.Title = *upd.Title
		}
		if upd.Time != nil {
			rem.Time = *upd.Time
		}
		if upd.Days != nil {
			rem.Days = append([]string(nil), upd.Days...)
		}
		if upd.Enabled != nil {
			rem.Enabled = *upd.Enabled
		}
		break
	}
	return s.commit()
}

func (s *Store) DeleteReminder(id string) error {
	kept := s.state.Reminders[:0]
	for _, rem := range s.state.Reminders {
		if rem.ID != id {
			kept = append(kept, rem)
		}
	}
	s.state.Reminders = kept
	return s.commit()
}

// SetTimerRunning flips the running flag without touching elapsed seconds,
// so pausing keeps the accumulated time.
func (s *Store) SetTimerRunning(running bool) error {
	s.state.IsTimerRunning = running
	return s.commit()
}

func (s *Store) SetTimerSeconds(seconds int) error {
	s.state.TimerSeconds = seconds
	return s.commit()
}

func (s *Store) SetCurrentSubject(subject string) error {
	s.state.CurrentSubject = subject
	return s.commit()
}

// Logout clears the identity and resets the timer. Sessions, goals and
// reminders are kept: study history survives logout/login cycles. The demo
// flag is not touched here; signing in with real credentials clears it.
func (s *Store) Logout() error {
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.state.IsTimerRunning = false
	s.state.TimerSeconds = 0
	s.state.CurrentSubject = ""
	return s.commit()
}
