package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContratoRequest() *CreateContratoRequest {
	return &CreateContratoRequest{
		IDLote:          7,
		CorreoCliente:   "ana@example.com",
		Nombre:          "Ana",
		ApellidoPaterno: "López",
		PrecioTotal:     decimal.NewFromInt(120000),
		Enganche:        decimal.NewFromInt(20000),
		PlazoMeses:      10,
	}
}

func TestCreateContratoRequestValida(t *testing.T) {
	req := validContratoRequest()
	assert.Nil(t, req.Validate())
}

func TestCreateContratoRequestConIDCliente(t *testing.T) {
	id := int64(3)
	req := &CreateContratoRequest{
		IDLote:      7,
		IDCliente:   &id,
		PrecioTotal: decimal.NewFromInt(120000),
		Enganche:    decimal.NewFromInt(20000),
		PlazoMeses:  10,
	}
	assert.Nil(t, req.Validate())
}

func TestCreateContratoRequestSinLote(t *testing.T) {
	req := validContratoRequest()
	req.IDLote = 0

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "El ID del lote es obligatorio.")
}

func TestCreateContratoRequestSinCliente(t *testing.T) {
	req := validContratoRequest()
	req.CorreoCliente = ""
	req.Nombre = ""
	req.ApellidoPaterno = ""

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "Debe proporcionar id_cliente o correo_cliente.")
}

func TestCreateContratoRequestNombreConIDCliente(t *testing.T) {
	id := int64(3)
	req := validContratoRequest()
	req.IDCliente = &id

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "No debe enviar nombre cuando proporciona un ID de cliente.")
	assert.Contains(t, detalles, "No debe enviar apellido_paterno cuando proporciona un ID de cliente.")
}

func TestCreateContratoRequestCorreoInvalido(t *testing.T) {
	req := validContratoRequest()
	req.CorreoCliente = "no-es-correo"

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "Correo inválido.")
}

func TestCreateContratoRequestMontosInvalidos(t *testing.T) {
	req := validContratoRequest()
	req.PrecioTotal = decimal.Zero
	req.Enganche = decimal.NewFromInt(-1)

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "El precio total debe ser positivo.")
	assert.Contains(t, detalles, "El enganche no puede ser negativo.")
}

func TestCreateContratoRequestDecimalesExcesivos(t *testing.T) {
	req := validContratoRequest()
	req.PrecioTotal = decimal.RequireFromString("120000.123")

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "El precio total no puede tener más de 2 decimales.")
}

func TestCreateContratoRequestPlazoInvalido(t *testing.T) {
	req := validContratoRequest()
	req.PlazoMeses = 0

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "El plazo en meses es obligatorio.")
}

func TestCreateClienteRequestValida(t *testing.T) {
	req := &CreateClienteRequest{
		Nombre:          "Juan",
		ApellidoPaterno: "Pérez",
		Correo:          "juan@example.com",
		Telefono:        "5512345678",
		CURP:            "PEPJ800101HDFRRN09",
	}
	assert.Nil(t, req.Validate())
}

func TestCreateClienteRequestCURPInvalida(t *testing.T) {
	req := &CreateClienteRequest{
		Nombre:          "Juan",
		ApellidoPaterno: "Pérez",
		Correo:          "juan@example.com",
		CURP:            "CORTA",
	}

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "La CURP debe tener 18 caracteres.")
}

func TestCreateClienteRequestTelefonoInvalido(t *testing.T) {
	req := &CreateClienteRequest{
		Nombre:          "Juan",
		ApellidoPaterno: "Pérez",
		Correo:          "juan@example.com",
		Telefono:        "55-1234",
		CURP:            "PEPJ800101HDFRRN09",
	}

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.NotEmpty(t, detalles)
}

func TestCreateLoteRequestValida(t *testing.T) {
	req := &CreateLoteRequest{
		Tipo:         TipoLoteTerreno,
		NumLote:      "L-12",
		SuperficieM2: decimal.RequireFromString("250.5"),
		Precio:       decimal.NewFromInt(500000),
	}
	assert.Nil(t, req.Validate())
}

func TestCreateLoteRequestTipoInvalido(t *testing.T) {
	req := &CreateLoteRequest{
		Tipo:         "bodega",
		NumLote:      "L-12",
		SuperficieM2: decimal.NewFromInt(250),
		Precio:       decimal.NewFromInt(500000),
	}

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "El tipo debe ser casa, departamento, terreno, comercial u otro.")
}

func TestCreateUserRequestPasswordCorta(t *testing.T) {
	req := &CreateUserRequest{
		Nombre:   "Admin",
		Correo:   "admin@example.com",
		Password: "corta",
	}

	detalles := req.Validate()
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "La contraseña debe tener al menos 8 caracteres.")
}

func TestVerifyOTPRequest(t *testing.T) {
	req := &VerifyOTPRequest{Correo: "ana@example.com", OTP: "123456"}
	assert.Nil(t, CheckStruct(req))

	req.OTP = "12ab56"
	detalles := CheckStruct(req)
	require.NotNil(t, detalles)
	assert.Contains(t, detalles, "El OTP debe contener sólo dígitos.")
}
