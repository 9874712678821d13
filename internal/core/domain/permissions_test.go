package domain

import "testing"

func TestHasPermission_AdminWildcard(t *testing.T) {
	admin := &User{ID: "1", Email: "admin@test.com", Rol: RoleAdministrador, Activo: true}

	perms := []string{
		PermPacientesCrear,
		PermTurnosCancelar,
		PermEvolucionesEditar,
		PermUsuariosCrear,
		"permiso.inexistente",
		"",
	}
	for _, p := range perms {
		if !HasPermission(admin, p) {
			t.Fatalf("administrador denied %q, want allowed for every literal", p)
		}
	}
}

func TestHasPermission_NilUser(t *testing.T) {
	if HasPermission(nil, PermPacientesVer) {
		t.Fatalf("nil user must never be granted a permission")
	}
	if CanAccess(nil, PermPacientesVer) {
		t.Fatalf("CanAccess must mirror HasPermission for nil user")
	}
}

func TestHasPermission_ExactMatchOnly(t *testing.T) {
	secretaria := &User{Rol: RoleSecretaria, Activo: true}

	if !HasPermission(secretaria, PermPacientesCrear) {
		t.Fatalf("secretaria should hold %q", PermPacientesCrear)
	}
	// No prefix credit: holding pacientes.crear says nothing about "pacientes".
	if HasPermission(secretaria, "pacientes") {
		t.Fatalf("prefix %q must not match", "pacientes")
	}
	if HasPermission(secretaria, "pacientes.") {
		t.Fatalf("partial literal must not match")
	}
	if HasPermission(secretaria, PermEvolucionesCrear) {
		t.Fatalf("secretaria must not hold %q", PermEvolucionesCrear)
	}
}

func TestHasPermission_ProfesionalTable(t *testing.T) {
	profesional := &User{Rol: RoleProfesional, Activo: true}

	allowed := []string{PermPacientesVer, PermEvolucionesCrear, PermArchivosSubir, PermNotasCrear}
	for _, p := range allowed {
		if !HasPermission(profesional, p) {
			t.Fatalf("profesional should hold %q", p)
		}
	}
	denied := []string{PermPacientesCrear, PermUsuariosCrear, PermTurnosCancelar, PermPagosCrear}
	for _, p := range denied {
		if HasPermission(profesional, p) {
			t.Fatalf("profesional must not hold %q", p)
		}
	}
}

func TestHasPermission_UnknownRole(t *testing.T) {
	ghost := &User{Rol: "becario", Activo: true}
	if HasPermission(ghost, PermPacientesVer) {
		t.Fatalf("unknown role must be denied everything")
	}
}

func TestCanAccess_Alias(t *testing.T) {
	secretaria := &User{Rol: RoleSecretaria, Activo: true}
	perms := []string{PermPacientesVer, PermEvolucionesCrear, "otro.permiso"}
	for _, p := range perms {
		if CanAccess(secretaria, p) != HasPermission(secretaria, p) {
			t.Fatalf("CanAccess diverged from HasPermission for %q", p)
		}
	}
}

func TestRolePermissions_Copy(t *testing.T) {
	perms := RolePermissions(RoleSecretaria)
	if len(perms) == 0 {
		t.Fatalf("expected a non-empty set for secretaria")
	}
	if got := RolePermissions(RoleAdministrador); got != nil {
		t.Fatalf("administrador has no enumerated set, got %v", got)
	}
}
