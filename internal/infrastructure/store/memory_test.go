package store

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
)

func newTestMemory() *Memory {
	return NewMemory(zerolog.Nop())
}

func TestMemory_TokenRoundTrip(t *testing.T) {
	s := newTestMemory()

	if _, ok := s.Token(); ok {
		t.Fatalf("fresh store must report no token")
	}

	s.SetToken("t1")
	token, ok := s.Token()
	if !ok || token != "t1" {
		t.Fatalf("Token() = %q, %v; want t1, true", token, ok)
	}

	s.ClearToken()
	if _, ok := s.Token(); ok {
		t.Fatalf("token survived ClearToken")
	}
}

func TestMemory_UserRoundTrip(t *testing.T) {
	s := newTestMemory()
	user := &domain.User{ID: "1", Email: "ana@test.com", Nombre: "Ana", Apellido: "Gómez", Rol: domain.RoleSecretaria, Activo: true, Telefono: "555-0101"}

	s.SetUser(user)
	got, ok := s.User()
	if !ok {
		t.Fatalf("expected stored user")
	}
	if *got != *user {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, user)
	}

	s.ClearUser()
	if _, ok := s.User(); ok {
		t.Fatalf("user survived ClearUser")
	}
}

func TestMemory_CorruptedUserSelfHeals(t *testing.T) {
	s := newTestMemory()
	s.mu.Lock()
	s.values[keyUser] = "{not valid json"
	s.mu.Unlock()

	if _, ok := s.User(); ok {
		t.Fatalf("corrupted entry must read as absent")
	}
	// The bad entry must be gone: the next read is a clean miss, not a
	// repeated decode failure.
	s.mu.Lock()
	_, stillThere := s.values[keyUser]
	s.mu.Unlock()
	if stillThere {
		t.Fatalf("corrupted entry was not removed")
	}
	if _, ok := s.User(); ok {
		t.Fatalf("second read after corruption must also be absent")
	}
}

func TestMemory_ClearAllIdempotent(t *testing.T) {
	s := newTestMemory()
	s.SetToken("t1")
	s.SetUser(&domain.User{ID: "1", Activo: true})
	s.SetRememberMe(true)
	s.SetLastRoute("/turnos")

	s.ClearAll()
	s.ClearAll()

	if _, ok := s.Token(); ok {
		t.Fatalf("token survived ClearAll")
	}
	if _, ok := s.User(); ok {
		t.Fatalf("user survived ClearAll")
	}
	// ClearAll composes the token and user clears only.
	if !s.RememberMe() {
		t.Fatalf("remember_me must survive ClearAll")
	}
	if route, ok := s.LastRoute(); !ok || route != "/turnos" {
		t.Fatalf("last_route must survive ClearAll, got %q, %v", route, ok)
	}
}

func TestMemory_HasActiveSession(t *testing.T) {
	s := newTestMemory()
	if ports.HasActiveSession(s) {
		t.Fatalf("empty store must not report an active session")
	}

	s.SetToken("t1")
	if ports.HasActiveSession(s) {
		t.Fatalf("token without user is not an active session")
	}

	s.SetUser(&domain.User{ID: "1", Activo: true})
	if !ports.HasActiveSession(s) {
		t.Fatalf("token plus user must report an active session")
	}
}

func TestMemory_RememberMeAndLastRoute(t *testing.T) {
	s := newTestMemory()
	if s.RememberMe() {
		t.Fatalf("default remember_me must be false")
	}
	s.SetRememberMe(true)
	if !s.RememberMe() {
		t.Fatalf("remember_me not persisted")
	}
	s.SetRememberMe(false)
	if s.RememberMe() {
		t.Fatalf("remember_me not cleared")
	}

	if _, ok := s.LastRoute(); ok {
		t.Fatalf("default last_route must be absent")
	}
	s.SetLastRoute("/pacientes")
	if route, ok := s.LastRoute(); !ok || route != "/pacientes" {
		t.Fatalf("LastRoute() = %q, %v", route, ok)
	}
}
