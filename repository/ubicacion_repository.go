package repository

import (
	"context"
	"database/sql"
	"log"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/db"
	"inmobiliaria-api/models"
)

// UbicacionRepository handles the geographic reference lookups
type UbicacionRepository struct{}

// NewUbicacionRepository creates a new UbicacionRepository
func NewUbicacionRepository() *UbicacionRepository {
	return &UbicacionRepository{}
}

// Ensure UbicacionRepository implements UbicacionRepositoryInterface
var _ UbicacionRepositoryInterface = (*UbicacionRepository)(nil)

// GetEstados retrieves all states ordered by name
func (r *UbicacionRepository) GetEstados(ctx context.Context) ([]models.Estado, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id_estado, nombre_estado FROM estado ORDER BY nombre_estado`)
	if err != nil {
		log.Printf("❌ GetEstados: Error fetching states: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los estados", err)
	}
	defer rows.Close()

	var estados []models.Estado
	for rows.Next() {
		var e models.Estado
		if err := rows.Scan(&e.IDEstado, &e.NombreEstado); err != nil {
			log.Printf("❌ GetEstados: Error scanning state: %v", err)
			continue
		}
		estados = append(estados, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los estados", err)
	}
	return estados, nil
}

// GetCiudades retrieves the cities of a state ordered by name
func (r *UbicacionRepository) GetCiudades(ctx context.Context, idEstado int64) ([]models.Ciudad, error) {
	rows, err := db.DB.QueryContext(ctx,
		`SELECT id_ciudad, nombre_ciudad, id_estado FROM ciudad WHERE id_estado=$1 ORDER BY nombre_ciudad`, idEstado)
	if err != nil {
		log.Printf("❌ GetCiudades: Error fetching cities: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener las ciudades", err)
	}
	defer rows.Close()

	var ciudades []models.Ciudad
	for rows.Next() {
		var c models.Ciudad
		if err := rows.Scan(&c.IDCiudad, &c.NombreCiudad, &c.IDEstado); err != nil {
			log.Printf("❌ GetCiudades: Error scanning city: %v", err)
			continue
		}
		ciudades = append(ciudades, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener las ciudades", err)
	}
	return ciudades, nil
}

// GetColonias retrieves the neighborhoods of a city ordered by name
func (r *UbicacionRepository) GetColonias(ctx context.Context, idCiudad int64) ([]models.Colonia, error) {
	rows, err := db.DB.QueryContext(ctx,
		`SELECT id_colonia, nombre_colonia, COALESCE(codigo_postal, '') AS codigo_postal, id_ciudad
		 FROM colonia WHERE id_ciudad=$1 ORDER BY nombre_colonia`, idCiudad)
	if err != nil {
		log.Printf("❌ GetColonias: Error fetching neighborhoods: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener las colonias", err)
	}
	defer rows.Close()

	var colonias []models.Colonia
	for rows.Next() {
		var c models.Colonia
		if err := rows.Scan(&c.IDColonia, &c.NombreColonia, &c.CodigoPostal, &c.IDCiudad); err != nil {
			log.Printf("❌ GetColonias: Error scanning neighborhood: %v", err)
			continue
		}
		colonias = append(colonias, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener las colonias", err)
	}
	return colonias, nil
}

// GetCiudadPorCP resolves the city and state of a postal code
func (r *UbicacionRepository) GetCiudadPorCP(ctx context.Context, codigoPostal string) (*models.CiudadPorCP, error) {
	query := `
		SELECT ci.id_ciudad, ci.nombre_ciudad, ci.id_estado, e.nombre_estado
		FROM colonia c
		JOIN ciudad ci ON c.id_ciudad = ci.id_ciudad
		JOIN estado e ON ci.id_estado = e.id_estado
		WHERE c.codigo_postal = $1
		LIMIT 1
	`
	var resultado models.CiudadPorCP
	err := db.DB.QueryRowContext(ctx, query, codigoPostal).Scan(
		&resultado.IDCiudad,
		&resultado.NombreCiudad,
		&resultado.IDEstado,
		&resultado.NombreEstado,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Código postal no encontrado")
		}
		log.Printf("❌ GetCiudadPorCP: Error fetching postal code: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al buscar por código postal", err)
	}
	return &resultado, nil
}
