package repository

import (
	"context"
	"database/sql"
	"log"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/db"
	"inmobiliaria-api/models"
)

// LoteRepository handles database operations for properties
type LoteRepository struct{}

// NewLoteRepository creates a new LoteRepository
func NewLoteRepository() *LoteRepository {
	return &LoteRepository{}
}

// Ensure LoteRepository implements LoteRepositoryInterface
var _ LoteRepositoryInterface = (*LoteRepository)(nil)

const loteColumns = `id_propiedad, tipo, numlote, COALESCE(manzana, '') AS manzana,
       COALESCE(direccion, '') AS direccion, COALESCE(id_colonia, 0) AS id_colonia,
       superficie_m2, precio, estado_propiedad, COALESCE(imagen, '') AS imagen`

func scanLote(row interface{ Scan(...interface{}) error }) (*models.Lote, error) {
	var l models.Lote
	err := row.Scan(
		&l.IDPropiedad,
		&l.Tipo,
		&l.NumLote,
		&l.Manzana,
		&l.Direccion,
		&l.IDColonia,
		&l.SuperficieM2,
		&l.Precio,
		&l.EstadoPropiedad,
		&l.Imagen,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetAll retrieves all properties
func (r *LoteRepository) GetAll(ctx context.Context) ([]models.Lote, error) {
	log.Printf("📦 GetAllLotes: Fetching properties")

	rows, err := db.DB.QueryContext(ctx, `SELECT `+loteColumns+` FROM lote ORDER BY id_propiedad`)
	if err != nil {
		log.Printf("❌ GetAllLotes: Error fetching properties: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los lotes", err)
	}
	defer rows.Close()

	var lotes []models.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			log.Printf("❌ GetAllLotes: Error scanning property: %v", err)
			continue
		}
		lotes = append(lotes, *l)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetAllLotes: Error iterating properties: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los lotes", err)
	}

	log.Printf("✅ GetAllLotes: Successfully fetched %d properties", len(lotes))
	return lotes, nil
}

// GetByID retrieves a property by ID
func (r *LoteRepository) GetByID(ctx context.Context, id int64) (*models.Lote, error) {
	log.Printf("📦 GetLote: Fetching property id=%d", id)

	row := db.DB.QueryRowContext(ctx, `SELECT `+loteColumns+` FROM lote WHERE id_propiedad=$1`, id)
	lote, err := scanLote(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetLote: Property not found: id=%d", id)
			return nil, apperrors.New(apperrors.CodeNotFound, "Lote no encontrado")
		}
		log.Printf("❌ GetLote: Error fetching property: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el lote", err)
	}

	return lote, nil
}

// resolveColonia returns the colonia id to attach, creating a new colonia
// inside the transaction when nombre_colonia_nueva is supplied.
func resolveColonia(ctx context.Context, tx *sql.Tx, idColonia int64, nombreNueva string, idCiudad int64) (sql.NullInt64, error) {
	if nombreNueva != "" && idCiudad > 0 {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id_colonia FROM colonia WHERE nombre_colonia=$1 AND id_ciudad=$2 LIMIT 1`,
			nombreNueva, idCiudad).Scan(&id)
		if err == nil {
			return sql.NullInt64{Int64: id, Valid: true}, nil
		}
		if err != sql.ErrNoRows {
			return sql.NullInt64{}, err
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO colonia (nombre_colonia, id_ciudad) VALUES ($1, $2) RETURNING id_colonia`,
			nombreNueva, idCiudad).Scan(&id)
		if err != nil {
			return sql.NullInt64{}, err
		}
		log.Printf("✅ resolveColonia: Created colonia id=%d (%s)", id, nombreNueva)
		return sql.NullInt64{Int64: id, Valid: true}, nil
	}

	if idColonia > 0 {
		return sql.NullInt64{Int64: idColonia, Valid: true}, nil
	}
	return sql.NullInt64{}, nil
}

// Create inserts a property; when a new colonia name is supplied, the colonia
// is resolved-or-created in the same transaction.
func (r *LoteRepository) Create(ctx context.Context, req *models.CreateLoteRequest) (*models.Lote, error) {
	log.Printf("📦 CreateLote: Creating property numlote=%s, tipo=%s", req.NumLote, req.Tipo)

	estado := req.EstadoPropiedad
	if estado == "" {
		estado = models.EstadoPropiedadDisponible
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear el lote", err)
	}
	defer tx.Rollback()

	colonia, err := resolveColonia(ctx, tx, req.IDColonia, req.NombreColoniaNueva, req.IDCiudad)
	if err != nil {
		log.Printf("❌ CreateLote: Error resolving colonia: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al resolver la colonia", err)
	}

	query := `
		INSERT INTO lote (tipo, numlote, manzana, direccion, id_colonia, superficie_m2, precio, estado_propiedad, imagen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + loteColumns

	row := tx.QueryRowContext(ctx, query,
		req.Tipo,
		req.NumLote,
		sql.NullString{String: req.Manzana, Valid: req.Manzana != ""},
		sql.NullString{String: req.Direccion, Valid: req.Direccion != ""},
		colonia,
		req.SuperficieM2,
		req.Precio,
		estado,
		sql.NullString{String: req.Imagen, Valid: req.Imagen != ""},
	)
	lote, err := scanLote(row)
	if err != nil {
		log.Printf("❌ CreateLote: Error inserting property: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear el lote", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear el lote", err)
	}

	log.Printf("✅ CreateLote: Successfully created property id=%d", lote.IDPropiedad)
	return lote, nil
}

// Update applies a partial update. Only the fixed set of known columns can
// change; user input never reaches column names.
func (r *LoteRepository) Update(ctx context.Context, id int64, patch *models.LotePatch) (*models.Lote, error) {
	log.Printf("📦 UpdateLote: Updating property id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar el lote", err)
	}
	defer tx.Rollback()

	if patch.NombreColoniaNueva != nil && patch.IDCiudad != nil {
		colonia, err := resolveColonia(ctx, tx, 0, *patch.NombreColoniaNueva, *patch.IDCiudad)
		if err != nil {
			log.Printf("❌ UpdateLote: Error resolving colonia: %v", err)
			return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al resolver la colonia", err)
		}
		if colonia.Valid {
			patch.IDColonia = &colonia.Int64
		}
	}

	query := `
		UPDATE lote SET
			tipo = COALESCE($1, tipo),
			numlote = COALESCE($2, numlote),
			manzana = COALESCE($3, manzana),
			direccion = COALESCE($4, direccion),
			id_colonia = COALESCE($5, id_colonia),
			superficie_m2 = COALESCE($6, superficie_m2),
			precio = COALESCE($7, precio),
			estado_propiedad = COALESCE($8, estado_propiedad),
			imagen = COALESCE($9, imagen)
		WHERE id_propiedad = $10
		RETURNING ` + loteColumns

	row := tx.QueryRowContext(ctx, query,
		patch.Tipo,
		patch.NumLote,
		patch.Manzana,
		patch.Direccion,
		patch.IDColonia,
		patch.SuperficieM2,
		patch.Precio,
		patch.EstadoPropiedad,
		patch.Imagen,
		id,
	)
	lote, err := scanLote(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ UpdateLote: Property not found: id=%d", id)
			return nil, apperrors.New(apperrors.CodeNotFound, "Lote no encontrado")
		}
		log.Printf("❌ UpdateLote: Error updating property: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar el lote", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar el lote", err)
	}

	log.Printf("✅ UpdateLote: Successfully updated property id=%d", id)
	return lote, nil
}

// Delete removes a property
func (r *LoteRepository) Delete(ctx context.Context, id int64) (*models.Lote, error) {
	log.Printf("📦 DeleteLote: Deleting property id=%d", id)

	row := db.DB.QueryRowContext(ctx, `DELETE FROM lote WHERE id_propiedad=$1 RETURNING `+loteColumns, id)
	lote, err := scanLote(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ DeleteLote: Property not found: id=%d", id)
			return nil, apperrors.New(apperrors.CodeNotFound, "Lote no encontrado")
		}
		log.Printf("❌ DeleteLote: Error deleting property: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al eliminar el lote", err)
	}

	log.Printf("✅ DeleteLote: Successfully deleted property id=%d", id)
	return lote, nil
}
