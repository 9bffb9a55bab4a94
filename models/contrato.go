package models

import (
	"github.com/shopspring/decimal"
)

// Contract status values stored in contrato_venta.estado_contrato.
const (
	EstadoContratoActivo    = "activo"
	EstadoContratoCancelado = "cancelado"
	EstadoContratoPagado    = "pagado"
)

// ContratoVenta represents a sales contract in the database
type ContratoVenta struct {
	IDContrato     int64           `json:"id_contrato"`
	IDLote         int64           `json:"id_lote"`
	IDCliente      int64           `json:"id_cliente"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
	Enganche       decimal.Decimal `json:"enganche"`
	PlazoMeses     int             `json:"plazo_meses"`
	EstadoContrato string          `json:"estado_contrato"`
	FechaContrato  string          `json:"fecha_contrato"`
}

// CreateContratoRequest represents the request body for creating a sales contract.
// The client is resolved in order: id_cliente, then correo_cliente lookup, then
// inline creation with nombre/apellido_paterno.
// Example: {"id_lote": 7, "correo_cliente": "a@b.com", "nombre": "Ana",
// "apellido_paterno": "Lopez", "precio_total": 120000.00, "enganche": 20000.00,
// "plazo_meses": 10}
type CreateContratoRequest struct {
	IDLote         int64           `json:"id_lote" validate:"required,gt=0"`
	IDCliente      *int64          `json:"id_cliente" validate:"omitempty,gt=0"`
	CorreoCliente  string          `json:"correo_cliente" validate:"required_without=IDCliente,omitempty,email"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
	Enganche       decimal.Decimal `json:"enganche"`
	PlazoMeses     int             `json:"plazo_meses" validate:"required,min=1"`
	EstadoContrato string          `json:"estado_contrato" validate:"omitempty,oneof=activo cancelado pagado"`

	// Inline client fields, forbidden when id_cliente is present.
	Nombre          string `json:"nombre" validate:"excluded_with=IDCliente,omitempty,max=100"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"excluded_with=IDCliente,omitempty,max=50"`
	ApellidoMaterno string `json:"apellido_materno" validate:"omitempty,max=50"`
	Telefono        string `json:"telefono" validate:"omitempty,max=20"`
}

// Validate returns the per-field validation messages for the request,
// or nil when the payload is well formed. Money fields are checked by
// hand because validator tags cannot inspect decimal values.
func (r *CreateContratoRequest) Validate() []string {
	detalles := CheckStruct(r)

	if r.PrecioTotal.LessThanOrEqual(decimal.Zero) {
		detalles = append(detalles, "El precio total debe ser positivo.")
	}
	if r.Enganche.IsNegative() {
		detalles = append(detalles, "El enganche no puede ser negativo.")
	}
	if r.PrecioTotal.Exponent() < -2 {
		detalles = append(detalles, "El precio total no puede tener más de 2 decimales.")
	}
	if r.Enganche.Exponent() < -2 {
		detalles = append(detalles, "El enganche no puede tener más de 2 decimales.")
	}

	if len(detalles) == 0 {
		return nil
	}
	return detalles
}

// CreateContratoResponse represents the response after creating a contract:
// the contract row, the fixed monthly installment, and the generated schedule.
type CreateContratoResponse struct {
	Contrato    *ContratoVenta  `json:"contrato"`
	Mensualidad decimal.Decimal `json:"mensualidad"`
	Pagos       []Pago          `json:"pagos"`
}

// ContratoDetalle is a contract row joined with its client and property,
// as returned by the contract listing.
type ContratoDetalle struct {
	ContratoVenta
	ClienteNombre   string `json:"cliente_nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno,omitempty"`
	Correo          string `json:"correo"`
	Telefono        string `json:"telefono,omitempty"`
	LoteTipo        string `json:"lote_tipo"`
	NumLote         string `json:"numlote"`
	Direccion       string `json:"direccion,omitempty"`
}
