package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
// La implementación vive en infrastructure. Los finders excluyen filas con soft delete.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	List(ctx context.Context, limit, offset int) ([]*entity.Branch, error)
	SoftDelete(ctx context.Context, id string) error
}
