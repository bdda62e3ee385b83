// Package stats derives analytics from the session history. Everything here
// is a pure function of (sessions, now); nothing mutates state.
package stats

import (
	"fmt"
	"time"

	"github.com/sadopc/studyflow/internal/store"
)

// WeekStart selects which weekday a week begins on.
type WeekStart int

const (
	WeekStartSunday WeekStart = iota
	WeekStartMonday
)

// ParseWeekStart maps the stored setting value to a WeekStart. Unknown
// values fall back to Sunday, the application default.
func ParseWeekStart(v string) WeekStart {
	if v == "monday" {
		return WeekStartMonday
	}
	return WeekStartSunday
}

// sessionDay parses a session date and truncates it to the local calendar
// day. The zero time is returned for unparseable dates, which never equals a
// real day.
func sessionDay(s store.StudySession, loc *time.Location) time.Time {
	t, err := time.Parse(time.RFC3339, s.Date)
	if err != nil {
		return time.Time{}
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TodayMinutes sums the duration of every session dated today in now's
// location.
func TodayMinutes(sessions []store.StudySession, now time.Time) int {
	today := dayOf(now)
	total := 0
	for _, s := range sessions {
		if sessionDay(s, now.Location()).Equal(today) {
			total += s.Duration
		}
	}
	return total
}

// startOfWeek returns the first day of now's week for the given convention.
func startOfWeek(now time.Time, ws WeekStart) time.Time {
	day := dayOf(now)
	offset := int(day.Weekday())
	if ws == WeekStartMonday {
		offset = (offset + 6) % 7
	}
	return day.AddDate(0, 0, -offset)
}

// WeekMinutes sums the duration of sessions dated within the current week,
// [start of week, start of next week). The week begins on Sunday unless
// WeekStartMonday is given.
func WeekMinutes(sessions []store.StudySession, now time.Time, ws WeekStart) int {
	weekStart := startOfWeek(now, ws)
	weekEnd := weekStart.AddDate(0, 0, 7)
	total := 0
	for _, s := range sessions {
		day := sessionDay(s, now.Location())
		if !day.Before(weekStart) && day.Before(weekEnd) {
			total += s.Duration
		}
	}
	return total
}

// Streak counts consecutive days with at least one session, scanning
// backward from today up to 365 days. An empty today does not end the scan
// (yesterday's run still counts); any empty day before today does. That
// asymmetry is long-standing observable behavior and is kept as is.
func Streak(sessions []store.StudySession, now time.Time) int {
	days := make(map[time.Time]bool, len(sessions))
	for _, s := range sessions {
		day := sessionDay(s, now.Location())
		if !day.IsZero() {
			days[day] = true
		}
	}

	streak := 0
	today := dayOf(now)
	for i := 0; i < 365; i++ {
		day := today.AddDate(0, 0, -i)
		if days[day] {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// Subjects returns the distinct subjects studied today, in first-seen order.
func Subjects(sessions []store.StudySession, now time.Time) []string {
	today := dayOf(now)
	seen := make(map[string]bool)
	var subjects []string
	for _, s := range sessions {
		if !sessionDay(s, now.Location()).Equal(today) {
			continue
		}
		if !seen[s.Subject] {
			seen[s.Subject] = true
			subjects = append(subjects, s.Subject)
		}
	}
	return subjects
}

// Recommendation picks the study-coach message. First match wins; the order
// is part of the product behavior.
func Recommendation(todayHours float64, streak int, subjects []string) string {
	if todayHours == 0 {
		return "You haven't studied yet today. Start with a short 25-minute session to build momentum!"
	}
	if todayHours > 4 {
		return "You've been studying hard today! Consider taking a longer break to let your brain consolidate the information."
	}
	if streak >= 7 {
		return fmt.Sprintf("Amazing! You're on a %d-day streak! Keep the momentum going, but remember to schedule rest days.", streak)
	}
	if len(subjects) == 1 {
		return "Try mixing in a different subject to give your brain variety. Interleaving different topics can improve long-term retention."
	}
	return "You're making great progress! Remember to take short breaks between study sessions for optimal learning."
}
