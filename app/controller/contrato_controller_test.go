package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/models"
)

// fakeContratoRepo satisfies ContratoRepositoryInterface with canned behavior
type fakeContratoRepo struct {
	createFn  func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error)
	listFn    func(ctx context.Context) ([]models.ContratoDetalle, error)
	getByIDFn func(ctx context.Context, id int64) (*models.ContratoDetalle, error)
}

func (f *fakeContratoRepo) Create(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeContratoRepo) List(ctx context.Context) ([]models.ContratoDetalle, error) {
	return f.listFn(ctx)
}

func (f *fakeContratoRepo) GetByID(ctx context.Context, id int64) (*models.ContratoDetalle, error) {
	return f.getByIDFn(ctx, id)
}

func postContrato(t *testing.T, c *ContratoController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contratos", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.Create(rec, req)
	return rec
}

const contratoValido = `{
	"id_lote": 7,
	"correo_cliente": "ana@example.com",
	"nombre": "Ana",
	"apellido_paterno": "López",
	"precio_total": 120000.00,
	"enganche": 20000.00,
	"plazo_meses": 10
}`

func TestCreateContratoExitoso(t *testing.T) {
	repo := &fakeContratoRepo{
		createFn: func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
			assert.Equal(t, int64(7), req.IDLote)
			assert.Equal(t, "ana@example.com", req.CorreoCliente)

			mensualidad := decimal.RequireFromString("10000.00")
			pagos := make([]models.Pago, 0, 10)
			for i := 1; i <= 10; i++ {
				pagos = append(pagos, models.Pago{
					IDPago:     int64(300 + i),
					IDContrato: 15,
					NumeroPago: i,
					Monto:      mensualidad,
					FechaPago:  "2026-09-29",
					MetodoPago: models.MetodoPagoPendiente,
					EstadoPago: models.EstadoPagoPendiente,
				})
			}
			return &models.CreateContratoResponse{
				Contrato: &models.ContratoVenta{
					IDContrato:     15,
					IDLote:         req.IDLote,
					IDCliente:      42,
					PrecioTotal:    req.PrecioTotal,
					Enganche:       req.Enganche,
					PlazoMeses:     req.PlazoMeses,
					EstadoContrato: models.EstadoContratoActivo,
					FechaContrato:  "2026-08-29T12:00:00Z",
				},
				Mensualidad: mensualidad,
				Pagos:       pagos,
			}, nil
		},
	}
	rec := postContrato(t, NewContratoController(repo), contratoValido)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Contrato    *models.ContratoVenta `json:"contrato"`
		Mensualidad decimal.Decimal       `json:"mensualidad"`
		Pagos       []models.Pago         `json:"pagos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Contrato)
	assert.Equal(t, int64(15), resp.Contrato.IDContrato)
	assert.True(t, resp.Mensualidad.Equal(decimal.RequireFromString("10000")))
	require.Len(t, resp.Pagos, 10)
	assert.Equal(t, 1, resp.Pagos[0].NumeroPago)
	assert.Equal(t, 10, resp.Pagos[9].NumeroPago)
}

func TestCreateContratoValidacion(t *testing.T) {
	repo := &fakeContratoRepo{
		createFn: func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
			t.Fatal("repository must not be called on validation failure")
			return nil, nil
		},
	}
	rec := postContrato(t, NewContratoController(repo), `{"precio_total": 100, "plazo_meses": 10}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Mensaje  string   `json:"mensaje"`
		Detalles []string `json:"detalles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Error de validación", resp.Mensaje)
	assert.Contains(t, resp.Detalles, "El ID del lote es obligatorio.")
	assert.Contains(t, resp.Detalles, "Debe proporcionar id_cliente o correo_cliente.")
}

func TestCreateContratoEngancheMayor(t *testing.T) {
	repo := &fakeContratoRepo{
		createFn: func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
			t.Fatal("repository must not be called when enganche >= precio_total")
			return nil, nil
		},
	}
	body := `{"id_lote": 7, "correo_cliente": "a@b.com", "nombre": "Ana", "apellido_paterno": "López",
		"precio_total": 100000, "enganche": 100000, "plazo_meses": 10}`
	rec := postContrato(t, NewContratoController(repo), body)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "El enganche debe ser menor que el precio total", resp["message"])
}

func TestCreateContratoLoteNoDisponible(t *testing.T) {
	repo := &fakeContratoRepo{
		createFn: func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
			return nil, apperrors.Newf(apperrors.CodeBusinessRule, "Lote no disponible (estado actual: %s)", "vendida")
		},
	}
	rec := postContrato(t, NewContratoController(repo), contratoValido)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Lote no disponible (estado actual: vendida)", resp["message"])
}

func TestCreateContratoLoteNoEncontrado(t *testing.T) {
	repo := &fakeContratoRepo{
		createFn: func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Lote no encontrado")
		},
	}
	rec := postContrato(t, NewContratoController(repo), contratoValido)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Lote no encontrado", resp["message"])
}

func TestCreateContratoErrorPersistencia(t *testing.T) {
	repo := &fakeContratoRepo{
		createFn: func(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
			return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear contrato", context.DeadlineExceeded)
		},
	}
	rec := postContrato(t, NewContratoController(repo), contratoValido)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Error al crear contrato", resp["message"])
	assert.NotEmpty(t, resp["error"])
}

func TestCreateContratoMetodoNoPermitido(t *testing.T) {
	repo := &fakeContratoRepo{}
	req := httptest.NewRequest(http.MethodGet, "/api/contratos", nil)
	rec := httptest.NewRecorder()
	NewContratoController(repo).Create(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListContratos(t *testing.T) {
	repo := &fakeContratoRepo{
		listFn: func(ctx context.Context) ([]models.ContratoDetalle, error) {
			return []models.ContratoDetalle{
				{
					ContratoVenta: models.ContratoVenta{
						IDContrato:     15,
						IDLote:         7,
						IDCliente:      42,
						PrecioTotal:    decimal.NewFromInt(120000),
						Enganche:       decimal.NewFromInt(20000),
						PlazoMeses:     10,
						EstadoContrato: models.EstadoContratoActivo,
						FechaContrato:  "2026-08-29T12:00:00Z",
					},
					ClienteNombre:   "Ana",
					ApellidoPaterno: "López",
					Correo:          "ana@example.com",
					LoteTipo:        models.TipoLoteTerreno,
					NumLote:         "L-12",
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contratos", nil)
	rec := httptest.NewRecorder()
	NewContratoController(repo).List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.ContratoDetalle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Ana", resp[0].ClienteNombre)
	assert.Equal(t, "L-12", resp[0].NumLote)
}
