package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

func invokePermission(t *testing.T, user *domain.User, permission string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/turnos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}

	handler := Permission(permission)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestPermission_Allowed(t *testing.T) {
	user := &domain.User{Rol: domain.RoleSecretaria, Activo: true}
	rec := invokePermission(t, user, domain.PermTurnosCrear)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPermission_Denied(t *testing.T) {
	user := &domain.User{Rol: domain.RoleProfesional, Activo: true}
	rec := invokePermission(t, user, domain.PermTurnosCrear)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "forbidden") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestPermission_AdminBypassesTable(t *testing.T) {
	user := &domain.User{Rol: domain.RoleAdministrador, Activo: true}
	rec := invokePermission(t, user, "reportes.exportar")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPermission_MissingUser(t *testing.T) {
	rec := invokePermission(t, nil, domain.PermPacientesVer)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
