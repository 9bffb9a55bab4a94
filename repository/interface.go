package repository

import (
	"context"

	"inmobiliaria-api/models"
)

// ContratoRepositoryInterface defines the contract for sales-contract operations
type ContratoRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateContratoRequest) (*models.CreateContratoResponse, error)
	List(ctx context.Context) ([]models.ContratoDetalle, error)
	GetByID(ctx context.Context, idContrato int64) (*models.ContratoDetalle, error)
}

// LoteRepositoryInterface defines the contract for property operations
type LoteRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Lote, error)
	GetByID(ctx context.Context, id int64) (*models.Lote, error)
	Create(ctx context.Context, req *models.CreateLoteRequest) (*models.Lote, error)
	Update(ctx context.Context, id int64, patch *models.LotePatch) (*models.Lote, error)
	Delete(ctx context.Context, id int64) (*models.Lote, error)
}

// ClienteRepositoryInterface defines the contract for customer operations
type ClienteRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Cliente, error)
	GetByCURP(ctx context.Context, curp string) (*models.Cliente, error)
	GetByCorreo(ctx context.Context, correo string) (*models.Cliente, error)
	Create(ctx context.Context, req *models.CreateClienteRequest) (*models.Cliente, error)
	Update(ctx context.Context, curp string, patch *models.ClientePatch) (*models.Cliente, error)
	Delete(ctx context.Context, curp string) (*models.Cliente, error)
}

// PagoRepositoryInterface defines the contract for installment operations
type PagoRepositoryInterface interface {
	GetByID(ctx context.Context, idPago int64) (*models.Pago, error)
	GetByContrato(ctx context.Context, idContrato int64) ([]models.Pago, error)
	MarcarPagado(ctx context.Context, idPago int64, metodoPago string) (*models.Pago, error)
}

// UbicacionRepositoryInterface defines the contract for geographic lookups
type UbicacionRepositoryInterface interface {
	GetEstados(ctx context.Context) ([]models.Estado, error)
	GetCiudades(ctx context.Context, idEstado int64) ([]models.Ciudad, error)
	GetColonias(ctx context.Context, idCiudad int64) ([]models.Colonia, error)
	GetCiudadPorCP(ctx context.Context, codigoPostal string) (*models.CiudadPorCP, error)
}

// UserRepositoryInterface defines the contract for user-account operations
type UserRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByCorreo(ctx context.Context, correo string) (*models.User, error)
	Create(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error)
	Update(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error)
	UpdatePassword(ctx context.Context, correo string, passwordHash string) error
	Delete(ctx context.Context, id int64) (*models.User, error)
}
