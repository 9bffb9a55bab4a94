package repository

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"inmobiliaria-api/amortizacion"
	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/db"
	"inmobiliaria-api/models"
)

// ContratoRepository handles database operations for sales contracts
type ContratoRepository struct{}

// NewContratoRepository creates a new ContratoRepository
func NewContratoRepository() *ContratoRepository {
	return &ContratoRepository{}
}

// Ensure ContratoRepository implements ContratoRepositoryInterface
var _ ContratoRepositoryInterface = (*ContratoRepository)(nil)

// Create creates a sales contract: it reserves the property under a row lock,
// resolves (or creates) the paying client, inserts the contract, generates the
// installment schedule, and flips the property to "en proceso".
// All steps run inside a single transaction; any failure rolls back everything.
func (r *ContratoRepository) Create(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error) {
	log.Printf("📦 CreateContrato: Creating contract for id_lote=%d, plazo=%d", req.IDLote, req.PlazoMeses)

	estadoContrato := req.EstadoContrato
	if estadoContrato == "" {
		estadoContrato = models.EstadoContratoActivo
	}

	// Start transaction. Rollback is a no-op once the commit succeeds, so the
	// deferred call guarantees release on every failure path.
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ CreateContrato: Error starting transaction: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear contrato", err)
	}
	defer tx.Rollback()

	// Lock the property row and check availability. The lock is held until
	// commit/rollback so a concurrent contract on the same lote waits here
	// and re-reads the updated state.
	var idPropiedad int64
	var estadoPropiedad string
	queryLote := `SELECT id_propiedad, estado_propiedad FROM lote WHERE id_propiedad=$1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, queryLote, req.IDLote).Scan(&idPropiedad, &estadoPropiedad)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ CreateContrato: Lote not found: id=%d", req.IDLote)
			return nil, apperrors.New(apperrors.CodeNotFound, "Lote no encontrado")
		}
		log.Printf("❌ CreateContrato: Error fetching lote: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al consultar el lote", err)
	}

	if estadoPropiedad != models.EstadoPropiedadDisponible {
		log.Printf("❌ CreateContrato: Lote not available: id=%d, estado=%s", req.IDLote, estadoPropiedad)
		return nil, apperrors.Newf(apperrors.CodeBusinessRule, "Lote no disponible (estado actual: %s)", estadoPropiedad)
	}

	// Resolve the paying client inside the same transaction.
	idCliente, err := r.resolveCliente(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	// Insert the contract row.
	queryContrato := `
		INSERT INTO contrato_venta (id_lote, id_cliente, precio_total, enganche, plazo_meses, estado_contrato)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_contrato, id_lote, id_cliente, precio_total, enganche, plazo_meses, estado_contrato, fecha_contrato
	`
	var contrato models.ContratoVenta
	var fechaContrato time.Time
	err = tx.QueryRowContext(ctx, queryContrato,
		req.IDLote,
		idCliente,
		req.PrecioTotal,
		req.Enganche,
		req.PlazoMeses,
		estadoContrato,
	).Scan(
		&contrato.IDContrato,
		&contrato.IDLote,
		&contrato.IDCliente,
		&contrato.PrecioTotal,
		&contrato.Enganche,
		&contrato.PlazoMeses,
		&contrato.EstadoContrato,
		&fechaContrato,
	)
	if err != nil {
		log.Printf("❌ CreateContrato: Error inserting contract: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear contrato", err)
	}
	contrato.FechaContrato = fechaContrato.Format(time.RFC3339)

	// Fixed equal installment; the last payment is not adjusted for rounding drift.
	mensualidad := amortizacion.Mensualidad(req.PrecioTotal, req.Enganche, req.PlazoMeses)
	pagos := amortizacion.Schedule(contrato.IDContrato, fechaContrato, req.PlazoMeses, mensualidad)

	// Bulk-insert the schedule in sequence order; downstream consumers rely on
	// ORDER BY numero_pago matching creation order.
	pagosCreados, err := insertPagos(ctx, tx, pagos)
	if err != nil {
		log.Printf("❌ CreateContrato: Error inserting payments: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al generar los pagos", err)
	}

	// Flip the property to "en proceso"; the row lock from the reservation
	// step is still held.
	queryUpdateLote := `UPDATE lote SET estado_propiedad=$1 WHERE id_propiedad=$2`
	if _, err := tx.ExecContext(ctx, queryUpdateLote, models.EstadoPropiedadEnProceso, req.IDLote); err != nil {
		log.Printf("❌ CreateContrato: Error updating lote state: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar el estado del lote", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ CreateContrato: Error committing transaction: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear contrato", err)
	}

	log.Printf("✅ CreateContrato: Successfully created contract id=%d with %d payments", contrato.IDContrato, len(pagosCreados))
	return &models.CreateContratoResponse{
		Contrato:    &contrato,
		Mensualidad: mensualidad,
		Pagos:       pagosCreados,
	}, nil
}

// resolveCliente resolves the paying client id, in order: explicit id_cliente,
// lookup by correo_cliente, inline creation with the minimal fields.
func (r *ContratoRepository) resolveCliente(ctx context.Context, tx *sql.Tx, req *models.CreateContratoRequest) (int64, error) {
	if req.IDCliente != nil {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id_cliente FROM cliente WHERE id_cliente=$1`, *req.IDCliente).Scan(&id)
		if err != nil {
			if err == sql.ErrNoRows {
				log.Printf("❌ CreateContrato: Cliente not found: id=%d", *req.IDCliente)
				return 0, apperrors.New(apperrors.CodeNotFound, "Cliente indicado no existe")
			}
			return 0, apperrors.Wrap(apperrors.CodePersistence, "Error al consultar el cliente", err)
		}
		return id, nil
	}

	if req.CorreoCliente != "" {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id_cliente FROM cliente WHERE correo=$1`, req.CorreoCliente).Scan(&id)
		if err == nil {
			log.Printf("📦 CreateContrato: Resolved existing cliente id=%d by correo", id)
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, apperrors.Wrap(apperrors.CodePersistence, "Error al consultar el cliente", err)
		}

		// No match by email: create a minimal client if the required fields came in.
		if req.Nombre == "" || req.ApellidoPaterno == "" {
			return 0, apperrors.New(apperrors.CodeValidation, "No existe cliente y faltan datos para crearlo (nombre/apellido_paterno)")
		}

		queryInsert := `
			INSERT INTO cliente (nombre, apellido_paterno, apellido_materno, correo, telefono)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id_cliente
		`
		err = tx.QueryRowContext(ctx, queryInsert,
			req.Nombre,
			req.ApellidoPaterno,
			sql.NullString{String: req.ApellidoMaterno, Valid: req.ApellidoMaterno != ""},
			req.CorreoCliente,
			normalizeTelefono(req.Telefono),
		).Scan(&id)
		if err != nil {
			return 0, apperrors.Wrap(apperrors.CodePersistence, "Error al crear el cliente", err)
		}
		log.Printf("✅ CreateContrato: Created new cliente id=%d for correo=%s", id, req.CorreoCliente)
		return id, nil
	}

	return 0, apperrors.New(apperrors.CodeValidation, "Debe proporcionar id_cliente o correo_cliente con datos para crear cliente")
}

// insertPagos persists the generated schedule inside the transaction,
// preserving input order as sequence numbers.
func insertPagos(ctx context.Context, tx *sql.Tx, pagos []models.Pago) ([]models.Pago, error) {
	queryInsert := `
		INSERT INTO pago (id_contrato, numero_pago, monto, fecha_pago, metodo_pago, estado_pago)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_pago, id_contrato, numero_pago, monto, fecha_pago, metodo_pago, estado_pago
	`
	created := make([]models.Pago, 0, len(pagos))
	for _, p := range pagos {
		var row models.Pago
		var fechaPago time.Time
		err := tx.QueryRowContext(ctx, queryInsert,
			p.IDContrato,
			p.NumeroPago,
			p.Monto,
			p.FechaPago,
			p.MetodoPago,
			p.EstadoPago,
		).Scan(
			&row.IDPago,
			&row.IDContrato,
			&row.NumeroPago,
			&row.Monto,
			&fechaPago,
			&row.MetodoPago,
			&row.EstadoPago,
		)
		if err != nil {
			return nil, err
		}
		row.FechaPago = fechaPago.Format("2006-01-02")
		created = append(created, row)
	}
	return created, nil
}

// normalizeTelefono trims surrounding whitespace; empty phones persist as NULL.
func normalizeTelefono(telefono string) sql.NullString {
	trimmed := strings.TrimSpace(telefono)
	return sql.NullString{String: trimmed, Valid: trimmed != ""}
}

const contratoDetalleColumns = `
	cv.id_contrato, cv.id_lote, cv.id_cliente, cv.precio_total, cv.enganche,
	cv.plazo_meses, cv.estado_contrato, cv.fecha_contrato,
	c.nombre AS cliente_nombre, c.apellido_paterno,
	COALESCE(c.apellido_materno, '') AS apellido_materno,
	c.correo, COALESCE(c.telefono, '') AS telefono,
	l.tipo AS lote_tipo, l.numlote, COALESCE(l.direccion, '') AS direccion`

// GetByID retrieves one contract joined with its client and property
func (r *ContratoRepository) GetByID(ctx context.Context, idContrato int64) (*models.ContratoDetalle, error) {
	query := `
		SELECT ` + contratoDetalleColumns + `
		FROM contrato_venta cv
		INNER JOIN cliente c ON cv.id_cliente = c.id_cliente
		INNER JOIN lote l ON cv.id_lote = l.id_propiedad
		WHERE cv.id_contrato = $1
	`

	var c models.ContratoDetalle
	var fechaContrato time.Time
	err := db.DB.QueryRowContext(ctx, query, idContrato).Scan(
		&c.IDContrato,
		&c.IDLote,
		&c.IDCliente,
		&c.PrecioTotal,
		&c.Enganche,
		&c.PlazoMeses,
		&c.EstadoContrato,
		&fechaContrato,
		&c.ClienteNombre,
		&c.ApellidoPaterno,
		&c.ApellidoMaterno,
		&c.Correo,
		&c.Telefono,
		&c.LoteTipo,
		&c.NumLote,
		&c.Direccion,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Contrato no encontrado")
		}
		log.Printf("❌ GetContrato: Error fetching contract: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el contrato", err)
	}
	c.FechaContrato = fechaContrato.Format(time.RFC3339)

	return &c, nil
}

// List retrieves all contracts joined with their client and property
func (r *ContratoRepository) List(ctx context.Context) ([]models.ContratoDetalle, error) {
	log.Printf("📦 ListContratos: Fetching contracts")

	query := `
		SELECT ` + contratoDetalleColumns + `
		FROM contrato_venta cv
		INNER JOIN cliente c ON cv.id_cliente = c.id_cliente
		INNER JOIN lote l ON cv.id_lote = l.id_propiedad
		ORDER BY cv.fecha_contrato DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ ListContratos: Error fetching contracts: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los contratos", err)
	}
	defer rows.Close()

	var contratos []models.ContratoDetalle
	for rows.Next() {
		var c models.ContratoDetalle
		var fechaContrato time.Time
		err := rows.Scan(
			&c.IDContrato,
			&c.IDLote,
			&c.IDCliente,
			&c.PrecioTotal,
			&c.Enganche,
			&c.PlazoMeses,
			&c.EstadoContrato,
			&fechaContrato,
			&c.ClienteNombre,
			&c.ApellidoPaterno,
			&c.ApellidoMaterno,
			&c.Correo,
			&c.Telefono,
			&c.LoteTipo,
			&c.NumLote,
			&c.Direccion,
		)
		if err != nil {
			log.Printf("❌ ListContratos: Error scanning contract: %v", err)
			continue
		}
		c.FechaContrato = fechaContrato.Format(time.RFC3339)
		contratos = append(contratos, c)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ ListContratos: Error iterating contracts: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los contratos", err)
	}

	log.Printf("✅ ListContratos: Successfully fetched %d contracts", len(contratos))
	return contratos, nil
}
