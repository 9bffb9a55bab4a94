package repository

import (
	"context"
	"database/sql"
	"log"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/db"
	"inmobiliaria-api/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

const userColumns = `id_usuario, nombre, correo, password, COALESCE(rol, 'vendedor') AS rol`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.IDUsuario, &u.Nombre, &u.Correo, &u.Password, &u.Rol)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAll retrieves all users
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM usuario ORDER BY id_usuario`)
	if err != nil {
		log.Printf("❌ GetAllUsers: Error fetching users: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los usuarios", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Printf("❌ GetAllUsers: Error scanning user: %v", err)
			continue
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener los usuarios", err)
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := db.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuario WHERE id_usuario=$1`, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Usuario no encontrado")
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el usuario", err)
	}
	return user, nil
}

// GetByCorreo retrieves a user by email, for login
func (r *UserRepository) GetByCorreo(ctx context.Context, correo string) (*models.User, error) {
	row := db.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuario WHERE correo=$1`, correo)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Usuario no encontrado")
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al obtener el usuario", err)
	}
	return user, nil
}

// Create inserts a user with an already-hashed password
func (r *UserRepository) Create(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error) {
	log.Printf("📦 CreateUser: Creating user correo=%s", req.Correo)

	rol := req.Rol
	if rol == "" {
		rol = models.RolVendedor
	}

	query := `
		INSERT INTO usuario (nombre, correo, password, rol)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := db.DB.QueryRowContext(ctx, query, req.Nombre, req.Correo, passwordHash, rol)
	user, err := scanUser(row)
	if err != nil {
		log.Printf("❌ CreateUser: Error inserting user: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al crear el usuario", err)
	}

	log.Printf("✅ CreateUser: Successfully created user id=%d", user.IDUsuario)
	return user, nil
}

// Update applies a partial update. Password, when present, must arrive hashed.
func (r *UserRepository) Update(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error) {
	log.Printf("📦 UpdateUser: Updating user id=%d", id)

	query := `
		UPDATE usuario SET
			nombre = COALESCE($1, nombre),
			correo = COALESCE($2, correo),
			password = COALESCE($3, password),
			rol = COALESCE($4, rol)
		WHERE id_usuario = $5
		RETURNING ` + userColumns

	row := db.DB.QueryRowContext(ctx, query, patch.Nombre, patch.Correo, patch.Password, patch.Rol, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Usuario no encontrado")
		}
		log.Printf("❌ UpdateUser: Error updating user: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar el usuario", err)
	}

	log.Printf("✅ UpdateUser: Successfully updated user id=%d", id)
	return user, nil
}

// UpdatePassword replaces the password hash of the user with the given email
func (r *UserRepository) UpdatePassword(ctx context.Context, correo string, passwordHash string) error {
	result, err := db.DB.ExecContext(ctx, `UPDATE usuario SET password=$1 WHERE correo=$2`, passwordHash, correo)
	if err != nil {
		log.Printf("❌ UpdatePassword: Error updating password: %v", err)
		return apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar la contraseña", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.CodePersistence, "Error al actualizar la contraseña", err)
	}
	if affected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "Usuario no encontrado")
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	row := db.DB.QueryRowContext(ctx, `DELETE FROM usuario WHERE id_usuario=$1 RETURNING `+userColumns, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, "Usuario no encontrado")
		}
		log.Printf("❌ DeleteUser: Error deleting user: %v", err)
		return nil, apperrors.Wrap(apperrors.CodePersistence, "Error al eliminar el usuario", err)
	}
	log.Printf("✅ DeleteUser: Successfully deleted user id=%d", id)
	return user, nil
}
