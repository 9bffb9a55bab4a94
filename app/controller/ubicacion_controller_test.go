package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/models"
)

// fakeUbicacionRepo satisfies UbicacionRepositoryInterface
type fakeUbicacionRepo struct {
	estadosFn     func(ctx context.Context) ([]models.Estado, error)
	ciudadesFn    func(ctx context.Context, idEstado int64) ([]models.Ciudad, error)
	coloniasFn    func(ctx context.Context, idCiudad int64) ([]models.Colonia, error)
	ciudadPorCPFn func(ctx context.Context, cp string) (*models.CiudadPorCP, error)
}

func (f *fakeUbicacionRepo) GetEstados(ctx context.Context) ([]models.Estado, error) {
	return f.estadosFn(ctx)
}
func (f *fakeUbicacionRepo) GetCiudades(ctx context.Context, idEstado int64) ([]models.Ciudad, error) {
	return f.ciudadesFn(ctx, idEstado)
}
func (f *fakeUbicacionRepo) GetColonias(ctx context.Context, idCiudad int64) ([]models.Colonia, error) {
	return f.coloniasFn(ctx, idCiudad)
}
func (f *fakeUbicacionRepo) GetCiudadPorCP(ctx context.Context, cp string) (*models.CiudadPorCP, error) {
	return f.ciudadPorCPFn(ctx, cp)
}

func TestGetEstados(t *testing.T) {
	repo := &fakeUbicacionRepo{
		estadosFn: func(ctx context.Context) ([]models.Estado, error) {
			return []models.Estado{
				{IDEstado: 1, NombreEstado: "Chihuahua"},
				{IDEstado: 2, NombreEstado: "Sonora"},
			}, nil
		},
	}
	c := NewUbicacionController(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ubicacion/estados", nil)
	rec := httptest.NewRecorder()
	c.GetEstados(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var estados []models.Estado
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &estados))
	require.Len(t, estados, 2)
	assert.Equal(t, "Chihuahua", estados[0].NombreEstado)
}

func TestGetCiudadesPorEstado(t *testing.T) {
	repo := &fakeUbicacionRepo{
		ciudadesFn: func(ctx context.Context, idEstado int64) ([]models.Ciudad, error) {
			assert.Equal(t, int64(2), idEstado)
			return []models.Ciudad{{IDCiudad: 9, NombreCiudad: "Hermosillo", IDEstado: 2}}, nil
		},
	}
	c := NewUbicacionController(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ubicacion/ciudades/2", nil)
	rec := httptest.NewRecorder()
	c.GetCiudades(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ciudades []models.Ciudad
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ciudades))
	require.Len(t, ciudades, 1)
	assert.Equal(t, "Hermosillo", ciudades[0].NombreCiudad)
}

func TestGetCiudadesEstadoInvalido(t *testing.T) {
	c := NewUbicacionController(&fakeUbicacionRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ubicacion/ciudades/xx", nil)
	rec := httptest.NewRecorder()
	c.GetCiudades(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCiudadPorCP(t *testing.T) {
	repo := &fakeUbicacionRepo{
		ciudadPorCPFn: func(ctx context.Context, cp string) (*models.CiudadPorCP, error) {
			assert.Equal(t, "83200", cp)
			return &models.CiudadPorCP{
				IDCiudad:     9,
				NombreCiudad: "Hermosillo",
				IDEstado:     2,
				NombreEstado: "Sonora",
			}, nil
		},
	}
	c := NewUbicacionController(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ubicacion/cp/83200", nil)
	rec := httptest.NewRecorder()
	c.GetCiudadPorCP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ciudad models.CiudadPorCP
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ciudad))
	assert.Equal(t, "Sonora", ciudad.NombreEstado)
}

func TestGetCiudadPorCPNoEncontrado(t *testing.T) {
	repo := &fakeUbicacionRepo{
		ciudadPorCPFn: func(ctx context.Context, cp string) (*models.CiudadPorCP, error) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Código postal no encontrado")
		},
	}
	c := NewUbicacionController(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ubicacion/cp/00000", nil)
	rec := httptest.NewRecorder()
	c.GetCiudadPorCP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Código postal no encontrado", resp["message"])
}
