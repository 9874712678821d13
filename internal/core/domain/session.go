package domain

// SessionState is the lifecycle state of the client-side session.
//
//	unknown          — before the startup check has settled
//	unauthenticated  — no valid session
//	authenticated    — valid token and active user
//
// Consumers must be able to tell unknown apart from unauthenticated so the
// UI does not flash a login redirect while the startup check is in flight.
type SessionState string

const (
	StateUnknown         SessionState = "unknown"
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticated   SessionState = "authenticated"
)

// Session couples the bearer token with the user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// IsAuthenticated holds if and only if both token and user are present and
// the user is active. An inactive user never authenticates, token or not.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil && s.User.Activo
}
