package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

// Permission enforces a single permission literal on the user injected by the
// Session middleware. The check mirrors the server-side table; the backend
// still rejects unauthorized operations on its own.
func Permission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if !domain.CanAccess(user, permission) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
