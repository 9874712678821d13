package ports

import "time"

// SessionEventKind identifies a session lifecycle transition.
type SessionEventKind string

const (
	EventLogin       SessionEventKind = "login"
	EventLogout      SessionEventKind = "logout"
	EventInvalidated SessionEventKind = "invalidated"
)

// SessionEvent is a fire-and-forget notification about a session transition.
// Token is captured before the store is cleared so logout/invalidation
// notices can still identify the session they refer to.
type SessionEvent struct {
	Kind   SessionEventKind
	Email  string
	Token  string
	Reason string
	At     time.Time
}

// SessionNotifier delivers session events to the backend asynchronously.
// Notify must never block the caller and delivery failures must never affect
// the local session transition.
type SessionNotifier interface {
	Notify(event SessionEvent)
}

// Navigator performs the client-side jump to the login entry point after a
// forced invalidation.
type Navigator interface {
	ToLogin()
}
