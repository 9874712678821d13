package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
)

// Session gates protected routes on the session manager's state and injects
// the current user into the request context. The unknown state maps to 503,
// not 401: the startup check has not settled yet and the UI must not be
// bounced to login prematurely.
func Session(sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch sessions.State() {
			case domain.StateUnknown:
				return domain.ErrSessionNotReady
			case domain.StateUnauthenticated:
				return domain.ErrNotAuthenticated
			}

			user := sessions.CurrentUser()
			if user == nil {
				return domain.ErrNotAuthenticated
			}

			c.Set("user", user)
			c.Set("rol", user.Rol)
			return next(c)
		}
	}
}
