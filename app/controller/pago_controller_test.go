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

// fakePagoRepo satisfies PagoRepositoryInterface with canned behavior
type fakePagoRepo struct {
	getByIDFn      func(ctx context.Context, id int64) (*models.Pago, error)
	getByContrFn   func(ctx context.Context, id int64) ([]models.Pago, error)
	marcarPagadoFn func(ctx context.Context, id int64, metodo string) (*models.Pago, error)
}

func (f *fakePagoRepo) GetByID(ctx context.Context, id int64) (*models.Pago, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePagoRepo) GetByContrato(ctx context.Context, id int64) ([]models.Pago, error) {
	return f.getByContrFn(ctx, id)
}

func (f *fakePagoRepo) MarcarPagado(ctx context.Context, id int64, metodo string) (*models.Pago, error) {
	return f.marcarPagadoFn(ctx, id, metodo)
}

// fakeReciboService satisfies ReciboServiceInterface
type fakeReciboService struct {
	generarFn func(ctx context.Context, pago *models.Pago, contrato *models.ContratoDetalle) ([]byte, error)
}

func (f *fakeReciboService) GenerarRecibo(ctx context.Context, pago *models.Pago, contrato *models.ContratoDetalle) ([]byte, error) {
	return f.generarFn(ctx, pago, contrato)
}

func pagoPendiente() *models.Pago {
	return &models.Pago{
		IDPago:     301,
		IDContrato: 15,
		NumeroPago: 1,
		Monto:      decimal.RequireFromString("10000.00"),
		FechaPago:  "2026-09-29",
		MetodoPago: models.MetodoPagoPendiente,
		EstadoPago: models.EstadoPagoPendiente,
	}
}

func TestGetPagosPorContrato(t *testing.T) {
	repo := &fakePagoRepo{
		getByContrFn: func(ctx context.Context, id int64) ([]models.Pago, error) {
			assert.Equal(t, int64(15), id)
			return []models.Pago{*pagoPendiente()}, nil
		},
	}
	c := NewPagoController(repo, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pagos/contrato/15", nil)
	rec := httptest.NewRecorder()
	c.GetByContrato(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var pagos []models.Pago
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pagos))
	require.Len(t, pagos, 1)
	assert.Equal(t, int64(301), pagos[0].IDPago)
}

func TestGetPagosContratoIDInvalido(t *testing.T) {
	c := NewPagoController(&fakePagoRepo{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pagos/contrato/abc", nil)
	rec := httptest.NewRecorder()
	c.GetByContrato(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarcarPagado(t *testing.T) {
	repo := &fakePagoRepo{
		marcarPagadoFn: func(ctx context.Context, id int64, metodo string) (*models.Pago, error) {
			assert.Equal(t, int64(301), id)
			assert.Equal(t, "transferencia", metodo)

			p := pagoPendiente()
			p.MetodoPago = metodo
			p.EstadoPago = models.EstadoPagoPagado
			return p, nil
		},
	}
	c := NewPagoController(repo, nil, nil)

	body := bytes.NewBufferString(`{"metodo_pago": "transferencia"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/pagos/301/pagar", body)
	rec := httptest.NewRecorder()
	c.MarcarPagado(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var pago models.Pago
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pago))
	assert.Equal(t, models.EstadoPagoPagado, pago.EstadoPago)
	assert.Equal(t, "transferencia", pago.MetodoPago)
}

func TestMarcarPagadoSinCuerpo(t *testing.T) {
	repo := &fakePagoRepo{
		marcarPagadoFn: func(ctx context.Context, id int64, metodo string) (*models.Pago, error) {
			// The repository applies the "efectivo" default.
			assert.Equal(t, "", metodo)
			p := pagoPendiente()
			p.MetodoPago = "efectivo"
			p.EstadoPago = models.EstadoPagoPagado
			return p, nil
		},
	}
	c := NewPagoController(repo, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/pagos/301/pagar", nil)
	rec := httptest.NewRecorder()
	c.MarcarPagado(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMarcarPagadoNoEncontrado(t *testing.T) {
	repo := &fakePagoRepo{
		marcarPagadoFn: func(ctx context.Context, id int64, metodo string) (*models.Pago, error) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Pago no encontrado")
		},
	}
	c := NewPagoController(repo, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/pagos/999/pagar", nil)
	rec := httptest.NewRecorder()
	c.MarcarPagado(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Pago no encontrado", resp["message"])
}

func TestGenerarReciboPagoPendiente(t *testing.T) {
	repo := &fakePagoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*models.Pago, error) {
			return pagoPendiente(), nil
		},
	}
	c := NewPagoController(repo, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pagos/301/recibo", nil)
	rec := httptest.NewRecorder()
	c.GenerarRecibo(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "El pago no ha sido realizado, no hay recibo que generar", resp["message"])
}

func TestGenerarRecibo(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")

	pagos := &fakePagoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*models.Pago, error) {
			p := pagoPendiente()
			p.EstadoPago = models.EstadoPagoPagado
			p.MetodoPago = "efectivo"
			return p, nil
		},
	}
	contratos := &fakeContratoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*models.ContratoDetalle, error) {
			assert.Equal(t, int64(15), id)
			return &models.ContratoDetalle{
				ContratoVenta: models.ContratoVenta{
					IDContrato:  15,
					PrecioTotal: decimal.NewFromInt(120000),
					Enganche:    decimal.NewFromInt(20000),
					PlazoMeses:  10,
				},
				ClienteNombre:   "Ana",
				ApellidoPaterno: "López",
				LoteTipo:        models.TipoLoteTerreno,
				NumLote:         "L-12",
			}, nil
		},
	}
	recibos := &fakeReciboService{
		generarFn: func(ctx context.Context, pago *models.Pago, contrato *models.ContratoDetalle) ([]byte, error) {
			assert.Equal(t, int64(301), pago.IDPago)
			assert.Equal(t, int64(15), contrato.IDContrato)
			return pdf, nil
		},
	}
	c := NewPagoController(pagos, contratos, recibos)

	req := httptest.NewRequest(http.MethodGet, "/api/pagos/301/recibo", nil)
	rec := httptest.NewRecorder()
	c.GenerarRecibo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, pdf, rec.Body.Bytes())
}
