// Package usecase casos de uso de gestión: sucursales, empleados, clientes,
// categorías y productos. Cada operación sigue el mismo orden: autorizar,
// validar el cuerpo crudo y recién entonces tocar la persistencia.
package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// clock se reemplaza en tests.
var clock = func() time.Time { return time.Now().UTC() }

// requireBranch carga la sucursal del actor (o la indicada) y verifica que la vea.
func requireBranch(ctx context.Context, repo repository.BranchRepository, actor authz.Actor, branchID string) (*entity.Branch, error) {
	if !actor.SeesBranch(branchID) {
		return nil, domain.ErrBranchNotFound
	}
	b, err := repo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBranchNotFound
	}
	return b, nil
}

// authorize corta con el error de dominio si la política deniega.
func authorize(actor authz.Actor, action authz.Action) error {
	return actor.Can(action, nil).Err()
}
