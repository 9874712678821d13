package ports

import "github.com/gestionmed/admin-gateway/internal/core/domain"

// SessionReader exposes the read side of the session manager to transports
// and route guards.
type SessionReader interface {
	State() domain.SessionState
	CurrentUser() *domain.User
	IsAuthenticated() bool
}
