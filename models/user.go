package models

// User roles stored in usuario.rol.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// User represents a system user. The password hash never leaves the server.
type User struct {
	IDUsuario int64  `json:"id_usuario"`
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
	Password  string `json:"-"`
	Rol       string `json:"rol"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=100"`
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"omitempty,oneof=admin vendedor"`
}

// Validate returns per-field validation messages, or nil when valid.
func (r *CreateUserRequest) Validate() []string {
	return CheckStruct(r)
}

// UserPatch carries the optional fields of a partial user update.
type UserPatch struct {
	Nombre   *string `json:"nombre"`
	Correo   *string `json:"correo"`
	Password *string `json:"password"`
	Rol      *string `json:"rol"`
}
