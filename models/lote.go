package models

import "github.com/shopspring/decimal"

// Property type values stored in lote.tipo.
const (
	TipoLoteCasa         = "casa"
	TipoLoteDepartamento = "departamento"
	TipoLoteTerreno      = "terreno"
	TipoLoteComercial    = "comercial"
	TipoLoteOtro         = "otro"
)

// Property availability values stored in lote.estado_propiedad.
const (
	EstadoPropiedadDisponible = "disponible"
	EstadoPropiedadEnProceso  = "en proceso"
	EstadoPropiedadRentada    = "rentada"
	EstadoPropiedadVendida    = "vendida"
)

// Lote represents a sellable property in the database
type Lote struct {
	IDPropiedad     int64           `json:"id_propiedad"`
	Tipo            string          `json:"tipo"`
	NumLote         string          `json:"numlote"`
	Manzana         string          `json:"manzana,omitempty"`
	Direccion       string          `json:"direccion,omitempty"`
	IDColonia       int64           `json:"id_colonia,omitempty"`
	SuperficieM2    decimal.Decimal `json:"superficie_m2"`
	Precio          decimal.Decimal `json:"precio"`
	EstadoPropiedad string          `json:"estado_propiedad"`
	Imagen          string          `json:"imagen,omitempty"`
}

// CreateLoteRequest represents the form fields for creating a property.
// The image, when present, arrives as a multipart file alongside these fields.
type CreateLoteRequest struct {
	Tipo               string          `json:"tipo" validate:"required,oneof=casa departamento terreno comercial otro"`
	NumLote            string          `json:"numlote" validate:"required,max=20"`
	Manzana            string          `json:"manzana" validate:"omitempty,max=20"`
	Direccion          string          `json:"direccion" validate:"omitempty,max=200"`
	IDEstado           int64           `json:"id_estado" validate:"omitempty,gt=0"`
	IDCiudad           int64           `json:"id_ciudad" validate:"omitempty,gt=0"`
	IDColonia          int64           `json:"id_colonia" validate:"omitempty,gt=0"`
	NombreColoniaNueva string          `json:"nombre_colonia_nueva" validate:"omitempty,max=100"`
	SuperficieM2       decimal.Decimal `json:"superficie_m2"`
	Precio             decimal.Decimal `json:"precio"`
	EstadoPropiedad    string          `json:"estado_propiedad" validate:"omitempty,oneof=disponible 'en proceso' rentada vendida"`
	Imagen             string          `json:"-"`
}

// Validate returns per-field validation messages, or nil when valid.
func (r *CreateLoteRequest) Validate() []string {
	detalles := CheckStruct(r)

	if r.SuperficieM2.LessThanOrEqual(decimal.Zero) {
		detalles = append(detalles, "La superficie debe ser positiva.")
	}
	if r.Precio.LessThanOrEqual(decimal.Zero) {
		detalles = append(detalles, "El precio debe ser positivo.")
	}

	if len(detalles) == 0 {
		return nil
	}
	return detalles
}

// LotePatch carries the optional fields of a partial property update.
// Only non-nil fields are applied; column names are fixed, never taken
// from request keys.
type LotePatch struct {
	Tipo               *string          `json:"tipo"`
	NumLote            *string          `json:"numlote"`
	Manzana            *string          `json:"manzana"`
	Direccion          *string          `json:"direccion"`
	IDEstado           *int64           `json:"id_estado"`
	IDCiudad           *int64           `json:"id_ciudad"`
	IDColonia          *int64           `json:"id_colonia"`
	NombreColoniaNueva *string          `json:"nombre_colonia_nueva"`
	SuperficieM2       *decimal.Decimal `json:"superficie_m2"`
	Precio             *decimal.Decimal `json:"precio"`
	EstadoPropiedad    *string          `json:"estado_propiedad"`
	Imagen             *string          `json:"-"`
}
