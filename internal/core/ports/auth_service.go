package ports

import (
	"context"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

// RegisterInput carries the fields the backend needs to create a user.
type RegisterInput struct {
	Email    string
	Password string
	Nombre   string
	Apellido string
	Rol      string
}

// AuthService talks to the backend's auth endpoints. It is stateless:
// persisting the token and user is the session manager's job, never this
// service's, so each method stays independently testable.
type AuthService interface {
	// Login exchanges credentials for a bearer token and a user summary.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// GetProfile fetches the full user record for the token currently held
	// by the session store (attached by the HTTP client gate).
	GetProfile(ctx context.Context) (*domain.User, error)
	// Register creates a new user on the backend.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}
