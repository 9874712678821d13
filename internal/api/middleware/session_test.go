package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

type stubSessionReader struct {
	state domain.SessionState
	user  *domain.User
}

func (s *stubSessionReader) State() domain.SessionState { return s.state }
func (s *stubSessionReader) CurrentUser() *domain.User  { return s.user }
func (s *stubSessionReader) IsAuthenticated() bool      { return s.state == domain.StateAuthenticated }

func invokeSession(t *testing.T, reader *stubSessionReader) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/pacientes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(reader)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestSession_UnknownState(t *testing.T) {
	_, err := invokeSession(t, &stubSessionReader{state: domain.StateUnknown})
	if !errors.Is(err, domain.ErrSessionNotReady) {
		t.Fatalf("expected ErrSessionNotReady, got %v", err)
	}
}

func TestSession_Unauthenticated(t *testing.T) {
	_, err := invokeSession(t, &stubSessionReader{state: domain.StateUnauthenticated})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSession_AuthenticatedWithoutUser(t *testing.T) {
	_, err := invokeSession(t, &stubSessionReader{state: domain.StateAuthenticated})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSession_AuthenticatedInjectsUser(t *testing.T) {
	user := &domain.User{ID: "7", Email: "sec@test.com", Rol: domain.RoleSecretaria, Activo: true}
	c, err := invokeSession(t, &stubSessionReader{state: domain.StateAuthenticated, user: user})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := c.Get("user").(*domain.User)
	if !ok || got.Email != "sec@test.com" {
		t.Fatalf("user not injected into context: %#v", c.Get("user"))
	}
	if rol, _ := c.Get("rol").(string); rol != domain.RoleSecretaria {
		t.Fatalf("rol not injected, got %q", rol)
	}
}
