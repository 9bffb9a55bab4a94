package repository

import (
	"context"
	"database/sql"
	"log"
	"time"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/db"
	"inmobiliaria-api/models"
)

// PagoRepository handles database operations for installments
type PagoRepository struct{}

// NewPagoRepository creates a new PagoRepository
func NewPagoRepository() *PagoRepository {
	return &PagoRepository{}
}

// Ensure PagoRepository implements PagoRepositoryInterface
var _ PagoRepositoryInterface = (*PagoRepository)(nil)

const pagoColumns = `id_pago, id_contrato, numero_pago, monto, fecha_pago, metodo_pago, estado_pago`

func scanPago(row interface{ Scan(...interface{}) error }) (*models.Pago, error) {
	var p models.Pago
	var fecha time.Time
	err := row.Scan(
		&p.IDPago,
		&p.IDContrato,
		&p.NumeroPago,
		&p.Monto,
		&fecha,
		&p.MetodoPago,
		&p.EstadoPago,
	)
	if err != nil {
		return nil, err
	}
	p.FechaPago = fecha.Format("2006-01-02")
	return &p, nil
}

// GetByID retrieves one installment
func (r *PagoRepository) GetByID(ctx context.Context, idPago int64) (*models.Pago, error) {
	row := db.DB.QueryRowContext(ctx, `SELECT `+pagoColumns+` FROM pago WHERE id_pago=$1`, idPago)
	pago, err := scanPago(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Pago no encontrado")
		}
		log.Printf("❌ GetPago: Error fetching installment: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el pago", err)
	}
	return pago, nil
}

// GetByContrato retrieves the schedule of a contract, in sequence order
func (r *PagoRepository) GetByContrato(ctx context.Context, idContrato int64) ([]models.Pago, error) {
	log.Printf("📦 GetPagos: Fetching installments for contrato=%d", idContrato)

	rows, err := db.DB.QueryContext(ctx,
		`SELECT `+pagoColumns+` FROM pago WHERE id_contrato=$1 ORDER BY numero_pago`, idContrato)
	if err != nil {
		log.Printf("❌ GetPagos: Error fetching installments: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los pagos", err)
	}
	defer rows.Close()

	var pagos []models.Pago
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			log.Printf("❌ GetPagos: Error scanning installment: %v", err)
			continue
		}
		pagos = append(pagos, *p)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetPagos: Error iterating installments: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los pagos", err)
	}

	log.Printf("✅ GetPagos: Successfully fetched %d installments", len(pagos))
	return pagos, nil
}

// MarcarPagado marks an installment as paid with the given payment method
func (r *PagoRepository) MarcarPagado(ctx context.Context, idPago int64, metodoPago string) (*models.Pago, error) {
	log.Printf("📦 MarcarPagado: Marking installment id=%d as paid", idPago)

	if metodoPago == "" {
		metodoPago = "efectivo"
	}

	query := `
		UPDATE pago
		SET estado_pago=$1, metodo_pago=$2, fecha_pago=NOW()
		WHERE id_pago=$3
		RETURNING ` + pagoColumns

	row := db.DB.QueryRowContext(ctx, query, models.EstadoPagoPagado, metodoPago, idPago)
	pago, err := scanPago(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ MarcarPagado: Installment not found: id=%d", idPago)
			return nil, apperrors.New(apperrors.CodeNotFound, "Pago no encontrado")
		}
		log.Printf("❌ MarcarPagado: Error updating installment: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al marcar el pago", err)
	}

	log.Printf("✅ MarcarPagado: Installment id=%d paid via %s", idPago, metodoPago)
	return pago, nil
}
