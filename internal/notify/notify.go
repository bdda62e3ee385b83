// Package notify delivers (title, body) notifications behind the platform
// permission tri-state. Denied or not-yet-granted permission degrades
// silently, as do sink errors: the timer and reminder logic never see a
// notification failure.
package notify

import "github.com/gen2brain/beeep"

// Permission mirrors the platform notification permission.
type Permission string

const (
	PermissionDefault Permission = "default" // not yet asked
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ParsePermission maps a stored value to a Permission, defaulting to
// not-yet-asked for anything unknown.
func ParsePermission(v string) Permission {
	switch Permission(v) {
	case PermissionGranted, PermissionDenied:
		return Permission(v)
	default:
		return PermissionDefault
	}
}

// Sink displays a single notification.
type Sink interface {
	Notify(title, body string) error
}

// Desktop sends OS-level notifications.
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Manager gates a sink behind the permission state.
type Manager struct {
	perm Permission
	sink Sink
}

func NewManager(perm Permission, sink Sink) *Manager {
	return &Manager{perm: perm, sink: sink}
}

func (m *Manager) Permission() Permission {
	return m.perm
}

// Request asks for permission. The desktop has no prompt to show, so a
// not-yet-asked state simply becomes granted; an explicit denial stays.
func (m *Manager) Request() Permission {
	if m.perm == PermissionDefault {
		m.perm = PermissionGranted
	}
	return m.perm
}

// Send displays the notification if permission is granted and drops it
// otherwise. Sink errors are swallowed.
func (m *Manager) Send(title, body string) {
	if m.perm != PermissionGranted {
		return
	}
	_ = m.sink.Notify(title, body)
}
