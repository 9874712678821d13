package domain

// Roles form a closed enumeration mirrored from the backend.
// Rol: "administrador" | "profesional" | "secretaria"
const (
	RoleAdministrador = "administrador"
	RoleProfesional   = "profesional"
	RoleSecretaria    = "secretaria"
)

// ValidRole reports whether rol is one of the known roles.
func ValidRole(rol string) bool {
	switch rol {
	case RoleAdministrador, RoleProfesional, RoleSecretaria:
		return true
	}
	return false
}

// User models an authenticated actor of the medical office. The backend owns
// the record; the gateway only ever replaces its copy wholesale after a
// successful profile fetch.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rol      string `json:"rol"`
	Activo   bool   `json:"activo"`
	Telefono string `json:"telefono,omitempty"`
}

// Clone returns a copy so callers cannot mutate shared session state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
