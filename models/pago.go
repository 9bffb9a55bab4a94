package models

import "github.com/shopspring/decimal"

// Payment status values stored in pago.estado_pago.
const (
	EstadoPagoPendiente = "pendiente"
	EstadoPagoPagado    = "pagado"
	EstadoPagoAtrasado  = "atrasado"
)

// MetodoPagoPendiente is the placeholder method for scheduled, unpaid installments.
const MetodoPagoPendiente = "pendiente"

// Pago represents one scheduled installment in the database.
// FechaPago is a plain date (YYYY-MM-DD).
type Pago struct {
	IDPago     int64           `json:"id_pago"`
	IDContrato int64           `json:"id_contrato"`
	NumeroPago int             `json:"numero_pago"`
	Monto      decimal.Decimal `json:"monto"`
	FechaPago  string          `json:"fecha_pago"`
	MetodoPago string          `json:"metodo_pago"`
	EstadoPago string          `json:"estado_pago"`
}

// MarcarPagadoRequest represents the request body for marking an installment paid.
// Example: {"metodo_pago": "transferencia"}
type MarcarPagadoRequest struct {
	MetodoPago string `json:"metodo_pago"`
}
