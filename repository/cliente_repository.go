package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/db"
	"inmobiliaria-api/models"
)

// ClienteRepository handles database operations for customers
type ClienteRepository struct{}

// NewClienteRepository creates a new ClienteRepository
func NewClienteRepository() *ClienteRepository {
	return &ClienteRepository{}
}

// Ensure ClienteRepository implements ClienteRepositoryInterface
var _ ClienteRepositoryInterface = (*ClienteRepository)(nil)

const clienteColumns = `id_cliente, nombre, apellido_paterno,
       COALESCE(apellido_materno, '') AS apellido_materno, correo,
       COALESCE(telefono, '') AS telefono, COALESCE(curp, '') AS curp,
       COALESCE(clave_elector, '') AS clave_elector,
       COALESCE(doc_identificacion, '') AS doc_identificacion,
       COALESCE(doc_curp, '') AS doc_curp`

func scanCliente(row interface{ Scan(...interface{}) error }) (*models.Cliente, error) {
	var c models.Cliente
	err := row.Scan(
		&c.IDCliente,
		&c.Nombre,
		&c.ApellidoPaterno,
		&c.ApellidoMaterno,
		&c.Correo,
		&c.Telefono,
		&c.CURP,
		&c.ClaveElector,
		&c.DocIdentificacion,
		&c.DocCURP,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll retrieves all customers
func (r *ClienteRepository) GetAll(ctx context.Context) ([]models.Cliente, error) {
	log.Printf("📦 GetAllClientes: Fetching customers")

	rows, err := db.DB.QueryContext(ctx, `SELECT `+clienteColumns+` FROM cliente ORDER BY id_cliente`)
	if err != nil {
		log.Printf("❌ GetAllClientes: Error fetching customers: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los clientes", err)
	}
	defer rows.Close()

	var clientes []models.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			log.Printf("❌ GetAllClientes: Error scanning customer: %v", err)
			continue
		}
		clientes = append(clientes, *c)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetAllClientes: Error iterating customers: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los clientes", err)
	}

	log.Printf("✅ GetAllClientes: Successfully fetched %d customers", len(clientes))
	return clientes, nil
}

// GetByCURP retrieves a customer by its CURP
func (r *ClienteRepository) GetByCURP(ctx context.Context, curp string) (*models.Cliente, error) {
	log.Printf("📦 GetCliente: Fetching customer curp=%s", curp)

	row := db.DB.QueryRowContext(ctx, `SELECT `+clienteColumns+` FROM cliente WHERE curp=$1`, curp)
	cliente, err := scanCliente(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Cliente no encontrado")
		}
		log.Printf("❌ GetCliente: Error fetching customer: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el cliente", err)
	}
	return cliente, nil
}

// GetByCorreo retrieves a customer by email
func (r *ClienteRepository) GetByCorreo(ctx context.Context, correo string) (*models.Cliente, error) {
	row := db.DB.QueryRowContext(ctx, `SELECT `+clienteColumns+` FROM cliente WHERE correo=$1`, correo)
	cliente, err := scanCliente(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Cliente no encontrado")
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el cliente", err)
	}
	return cliente, nil
}

// checkUnico rejects the insert/update when another customer already holds the
// value in the given unique column. The column name is one of a fixed set,
// never user input.
func checkUnico(ctx context.Context, column, value, excludeCURP string) error {
	if value == "" {
		return nil
	}
	query := fmt.Sprintf(`SELECT 1 FROM cliente WHERE %s = $1`, column)
	args := []interface{}{value}
	if excludeCURP != "" {
		query += ` AND curp <> $2`
		args = append(args, excludeCURP)
	}
	query += ` LIMIT 1`

	var one int
	err := db.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodePersistence, "Error al validar unicidad", err)
	}
	return apperrors.Newf(apperrors.CodeBusinessRule, "El %s '%s' ya está registrado en otro cliente", column, value)
}

// Create inserts a customer after checking the unique natural keys
func (r *ClienteRepository) Create(ctx context.Context, req *models.CreateClienteRequest) (*models.Cliente, error) {
	log.Printf("📦 CreateCliente: Creating customer correo=%s", req.Correo)

	checks := []struct{ column, value string }{
		{"correo", req.Correo},
		{"telefono", req.Telefono},
		{"curp", req.CURP},
		{"clave_elector", req.ClaveElector},
	}
	for _, c := range checks {
		if err := checkUnico(ctx, c.column, c.value, ""); err != nil {
			log.Printf("❌ CreateCliente: %v", err)
			return nil, err
		}
	}

	query := `
		INSERT INTO cliente (nombre, apellido_paterno, apellido_materno, correo, telefono, curp, clave_elector, doc_identificacion, doc_curp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + clienteColumns

	row := db.DB.QueryRowContext(ctx, query,
		req.Nombre,
		req.ApellidoPaterno,
		sql.NullString{String: req.ApellidoMaterno, Valid: req.ApellidoMaterno != ""},
		req.Correo,
		sql.NullString{String: req.Telefono, Valid: req.Telefono != ""},
		req.CURP,
		sql.NullString{String: req.ClaveElector, Valid: req.ClaveElector != ""},
		sql.NullString{String: req.DocIdentificacion, Valid: req.DocIdentificacion != ""},
		sql.NullString{String: req.DocCURP, Valid: req.DocCURP != ""},
	)
	cliente, err := scanCliente(row)
	if err != nil {
		log.Printf("❌ CreateCliente: Error inserting customer: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear el cliente", err)
	}

	log.Printf("✅ CreateCliente: Successfully created customer id=%d", cliente.IDCliente)
	return cliente, nil
}

// Update applies a partial update to the customer identified by CURP.
// The column set is fixed; request keys never become SQL.
func (r *ClienteRepository) Update(ctx context.Context, curp string, patch *models.ClientePatch) (*models.Cliente, error) {
	log.Printf("📦 UpdateCliente: Updating customer curp=%s", curp)

	checks := []struct {
		column string
		value  *string
	}{
		{"correo", patch.Correo},
		{"telefono", patch.Telefono},
		{"clave_elector", patch.ClaveElector},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := checkUnico(ctx, c.column, *c.value, curp); err != nil {
			log.Printf("❌ UpdateCliente: %v", err)
			return nil, err
		}
	}

	query := `
		UPDATE cliente SET
			nombre = COALESCE($1, nombre),
			apellido_paterno = COALESCE($2, apellido_paterno),
			apellido_materno = COALESCE($3, apellido_materno),
			correo = COALESCE($4, correo),
			telefono = COALESCE($5, telefono),
			clave_elector = COALESCE($6, clave_elector),
			doc_identificacion = COALESCE($7, doc_identificacion),
			doc_curp = COALESCE($8, doc_curp)
		WHERE curp = $9
		RETURNING ` + clienteColumns

	row := db.DB.QueryRowContext(ctx, query,
		patch.Nombre,
		patch.ApellidoPaterno,
		patch.ApellidoMaterno,
		patch.Correo,
		patch.Telefono,
		patch.ClaveElector,
		patch.DocIdentificacion,
		patch.DocCURP,
		curp,
	)
	cliente, err := scanCliente(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ UpdateCliente: Customer not found: curp=%s", curp)
			return nil, apperrors.New(apperrors.CodeNotFound, "Cliente no encontrado")
		}
		log.Printf("❌ UpdateCliente: Error updating customer: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar el cliente", err)
	}

	log.Printf("✅ UpdateCliente: Successfully updated customer curp=%s", curp)
	return cliente, nil
}

// Delete removes a customer by CURP
func (r *ClienteRepository) Delete(ctx context.Context, curp string) (*models.Cliente, error) {
	log.Printf("📦 DeleteCliente: Deleting customer curp=%s", curp)

	row := db.DB.QueryRowContext(ctx, `DELETE FROM cliente WHERE curp=$1 RETURNING `+clienteColumns, curp)
	cliente, err := scanCliente(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Cliente no encontrado")
		}
		log.Printf("❌ DeleteCliente: Error deleting customer: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al eliminar el cliente", err)
	}

	log.Printf("✅ DeleteCliente: Successfully deleted customer curp=%s", curp)
	return cliente, nil
}
