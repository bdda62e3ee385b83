package store

// User is the authenticated identity the app runs under. Name is optional.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// StudySession is one completed study attempt. Date is the creation time of
// the session (RFC 3339) and never changes afterwards.
type StudySession struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Subject   string `json:"subject"`
	Duration  int    `json:"duration"` // minutes
	Date      string `json:"date"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

type StudyGoal struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Subject      string  `json:"subject"`
	TargetHours  float64 `json:"targetHours"`
	CurrentHours float64 `json:"currentHours"`
	Deadline     string  `json:"deadline"`
}

// Reminder fires on the listed weekdays at Time ("HH:MM", 24h). Days holds
// lower-case full weekday names, e.g. "monday".
type Reminder struct {
	ID      string   `json:"id"`
	UserID  string   `json:"userId"`
	Title   string   `json:"title"`
	Time    string   `json:"time"`
	Days    []string `json:"days"`
	Enabled bool     `json:"enabled"`
}

// State is the full application state. It is serialized as a single record
// after every mutation; zero values are the startup defaults.
type State struct {
	User            *User          `json:"user"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	IsDemoMode      bool           `json:"isDemoMode"`
	Sessions        []StudySession `json:"sessions"`
	Goals           []StudyGoal    `json:"goals"`
	Reminders       []Reminder     `json:"reminders"`
	IsTimerRunning  bool           `json:"isTimerRunning"`
	TimerSeconds    int            `json:"timerSeconds"`
	CurrentSubject  string         `json:"currentSubject"`
}

// Account is a locally registered login. Only the bcrypt hash of the
// password is kept.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    string
}

// SessionUpdate carries the fields of a session that may be changed after
// creation. Nil fields are left untouched.
type SessionUpdate struct {
	Subject   *string
	Duration  *int
	Notes     *string
	Completed *bool
}

// GoalUpdate carries the updatable fields of a goal.
type GoalUpdate struct {
	Subject      *string
	TargetHours  *float64
	CurrentHours *float64
	Deadline     *string
}

// ReminderUpdate carries the updatable fields of a reminder.
type ReminderUpdate struct {
	Title   *string
	Time    *string
	Days    []string
	Enabled *bool
}
