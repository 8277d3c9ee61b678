package repository

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Customer, error)
	// ListCreatedInRange clientes creados en [from, to]; branchID vacío = todas las sucursales.
	ListCreatedInRange(ctx context.Context, branchID string, from, to time.Time) ([]*entity.Customer, error)
	// ListByIDs clientes por id (incluye los eliminados, para nombrar filas históricas de reportes).
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	SoftDelete(ctx context.Context, id string) error
}
