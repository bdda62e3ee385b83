// Package remind decides when reminders fire. Evaluation is minute-granular
// wall-clock matching: there is no dedup state and no catch-up for minutes
// the process slept through. Callers poll Due on a 60-second cadence.
package remind

import (
	"regexp"
	"strings"
	"time"

	"github.com/sadopc/studyflow/internal/store"
)

// Weekdays is the fixed day-name set reminders draw from, week as displayed.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTime reports whether v is a 24-hour "HH:MM" string.
func ValidTime(v string) bool {
	return timePattern.MatchString(v)
}

// DayName returns now's lower-case full weekday name.
func DayName(now time.Time) string {
	return strings.ToLower(now.Weekday().String())
}

// Clock returns now formatted as "HH:MM".
func Clock(now time.Time) string {
	return now.Format("15:04")
}

// Due returns every reminder that should fire at now: enabled, scheduled for
// now's weekday, and whose time equals now's "HH:MM". A reminder matching
// twice within the same minute fires twice.
func Due(reminders []store.Reminder, now time.Time) []store.Reminder {
	day := DayName(now)
	clock := Clock(now)

	var due []store.Reminder
	for _, r := range reminders {
		if !r.Enabled || r.Time != clock {
			continue
		}
		for _, d := range r.Days {
			if d == day {
				due = append(due, r)
				break
			}
		}
	}
	return due
}
