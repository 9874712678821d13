package domain

// Permission literals are dot-namespaced action identifiers mirrored from the
// server-side authorization table. The gateway's checks are a UX shortcut:
// the backend independently rejects unauthorized operations.
const (
	PermPacientesVer      = "pacientes.ver"
	PermPacientesCrear    = "pacientes.crear"
	PermPacientesEditar   = "pacientes.editar"
	PermPacientesEliminar = "pacientes.eliminar"

	PermTurnosVer      = "turnos.ver"
	PermTurnosCrear    = "turnos.crear"
	PermTurnosEditar   = "turnos.editar"
	PermTurnosCancelar = "turnos.cancelar"

	PermProfesionalesVer    = "profesionales.ver"
	PermProfesionalesEditar = "profesionales.editar"

	PermPagosVer   = "pagos.ver"
	PermPagosCrear = "pagos.crear"

	PermNotasVer   = "notas.ver"
	PermNotasCrear = "notas.crear"

	PermEvolucionesVer    = "evoluciones.ver"
	PermEvolucionesCrear  = "evoluciones.crear"
	PermEvolucionesEditar = "evoluciones.editar"

	PermArchivosVer   = "archivos.ver"
	PermArchivosSubir = "archivos.subir"

	PermUsuariosVer   = "usuarios.ver"
	PermUsuariosCrear = "usuarios.crear"
)

// rolePermissions maps each non-administrator role to its permission set.
// administrador is deliberately absent: it is granted everything by the
// wildcard rule in HasPermission, evaluated before this table.
var rolePermissions = map[string]map[string]struct{}{
	RoleSecretaria: setOf(
		PermPacientesVer,
		PermPacientesCrear,
		PermPacientesEditar,
		PermTurnosVer,
		PermTurnosCrear,
		PermTurnosEditar,
		PermTurnosCancelar,
		PermProfesionalesVer,
		PermPagosVer,
		PermPagosCrear,
		PermNotasVer,
		PermNotasCrear,
	),
	RoleProfesional: setOf(
		PermPacientesVer,
		PermTurnosVer,
		PermEvolucionesVer,
		PermEvolucionesCrear,
		PermEvolucionesEditar,
		PermNotasVer,
		PermNotasCrear,
		PermArchivosVer,
		PermArchivosSubir,
	),
}

func setOf(perms ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether user may perform the action identified by
// permission. Rules, in order: a nil user is denied; an administrador is
// allowed unconditionally; any other role needs an exact match in its set —
// no prefix or wildcard matching on the literal.
func HasPermission(user *User, permission string) bool {
	if user == nil {
		return false
	}
	if user.Rol == RoleAdministrador {
		return true
	}
	perms, ok := rolePermissions[user.Rol]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// CanAccess is an alias of HasPermission kept for route guards.
func CanAccess(user *User, permission string) bool {
	return HasPermission(user, permission)
}

// RolePermissions returns a copy of the permission set for rol. Administrators
// have no enumerated set; callers should rely on HasPermission instead.
func RolePermissions(rol string) []string {
	perms, ok := rolePermissions[rol]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(perms))
	for p := range perms {
		out = append(out, p)
	}
	return out
}
