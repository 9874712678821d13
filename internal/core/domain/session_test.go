package domain

import "testing"

func TestSession_IsAuthenticated(t *testing.T) {
	active := &User{ID: "1", Email: "ana@test.com", Rol: RoleSecretaria, Activo: true}
	inactive := &User{ID: "2", Email: "baja@test.com", Rol: RoleProfesional, Activo: false}

	cases := []struct {
		name string
		s    Session
		want bool
	}{
		{"token and active user", Session{Token: "t1", User: active}, true},
		{"missing token", Session{User: active}, false},
		{"missing user", Session{Token: "t1"}, false},
		{"empty session", Session{}, false},
		{"inactive user with valid token", Session{Token: "t1", User: inactive}, false},
	}
	for _, tc := range cases {
		if got := tc.s.IsAuthenticated(); got != tc.want {
			t.Fatalf("%s: IsAuthenticated() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, rol := range []string{RoleAdministrador, RoleProfesional, RoleSecretaria} {
		if !ValidRole(rol) {
			t.Fatalf("expected %q to be valid", rol)
		}
	}
	if ValidRole("paciente") {
		t.Fatalf("unexpected valid role")
	}
}

func TestUser_Clone(t *testing.T) {
	var nilUser *User
	if nilUser.Clone() != nil {
		t.Fatalf("clone of nil must be nil")
	}

	u := &User{ID: "1", Email: "ana@test.com", Rol: RoleSecretaria, Activo: true}
	clone := u.Clone()
	clone.Rol = RoleAdministrador
	if u.Rol != RoleSecretaria {
		t.Fatalf("mutating the clone must not touch the original")
	}
}
