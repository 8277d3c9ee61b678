package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// StaffRepository define el puerto de persistencia para Staff (DIP).
// Create/Update devuelven domain.ErrAccountAlreadyExists si el email ya existe.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id string) (*entity.Staff, error)
	GetByEmail(ctx context.Context, email string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Staff, error)
	// CountActiveByBranch cuenta empleados activos y sin soft delete de la sucursal.
	CountActiveByBranch(ctx context.Context, branchID string) (int, error)
	SoftDelete(ctx context.Context, id string) error
}
