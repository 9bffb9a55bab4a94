package models

// Cliente represents a customer in the database
type Cliente struct {
	IDCliente         int64  `json:"id_cliente"`
	Nombre            string `json:"nombre"`
	ApellidoPaterno   string `json:"apellido_paterno"`
	ApellidoMaterno   string `json:"apellido_materno,omitempty"`
	Correo            string `json:"correo"`
	Telefono          string `json:"telefono,omitempty"`
	CURP              string `json:"curp,omitempty"`
	ClaveElector      string `json:"clave_elector,omitempty"`
	DocIdentificacion string `json:"doc_identificacion,omitempty"`
	DocCURP           string `json:"doc_curp,omitempty"`
}

// CreateClienteRequest represents the request body for creating a customer
type CreateClienteRequest struct {
	Nombre            string `json:"nombre" validate:"required,max=100"`
	ApellidoPaterno   string `json:"apellido_paterno" validate:"required,max=50"`
	ApellidoMaterno   string `json:"apellido_materno" validate:"omitempty,max=50"`
	Correo            string `json:"correo" validate:"required,email"`
	Telefono          string `json:"telefono" validate:"omitempty,numeric,len=10"`
	CURP              string `json:"curp" validate:"required,len=18"`
	ClaveElector      string `json:"clave_elector" validate:"omitempty,len=20"`
	DocIdentificacion string `json:"doc_identificacion" validate:"omitempty"`
	DocCURP           string `json:"doc_curp" validate:"omitempty"`
}

// Validate returns per-field validation messages, or nil when valid.
func (r *CreateClienteRequest) Validate() []string {
	return CheckStruct(r)
}

// ClientePatch carries the optional fields of a partial customer update.
// Only non-nil fields are applied; the column set is fixed.
type ClientePatch struct {
	Nombre            *string `json:"nombre"`
	ApellidoPaterno   *string `json:"apellido_paterno"`
	ApellidoMaterno   *string `json:"apellido_materno"`
	Correo            *string `json:"correo"`
	Telefono          *string `json:"telefono"`
	ClaveElector      *string `json:"clave_elector"`
	DocIdentificacion *string `json:"doc_identificacion"`
	DocCURP           *string `json:"doc_curp"`
}
