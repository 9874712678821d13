package ports

import "github.com/gestionmed/admin-gateway/internal/core/domain"

// SessionStore is the durable key/value area holding the session: token and
// user, plus the remember-me flag and the last visited route. All operations
// are synchronous and must never surface a storage fault past this boundary:
// implementations log the fault and report the value as absent. A corrupted
// serialized user self-heals by deleting the bad entry on read.
type SessionStore interface {
	Token() (string, bool)
	SetToken(token string)
	ClearToken()

	User() (*domain.User, bool)
	SetUser(user *domain.User)
	ClearUser()

	RememberMe() bool
	SetRememberMe(remember bool)

	LastRoute() (string, bool)
	SetLastRoute(route string)

	// ClearAll removes token and user together. Idempotent.
	ClearAll()
}

// HasActiveSession is exactly "token present AND user present". It says
// nothing about whether the backend still accepts the token — revalidating
// is the session manager's job.
func HasActiveSession(s SessionStore) bool {
	_, hasToken := s.Token()
	_, hasUser := s.User()
	return hasToken && hasUser
}
