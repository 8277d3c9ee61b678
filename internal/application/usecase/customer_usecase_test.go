package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite/sqlitetest"
)

func TestCustomer_CreateYUpdate(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	_, emp := env.Staff(t, b.ID, entity.RoleEmployee)
	uc := usecase.NewCustomerUseCase(env.Repos.Branches, env.Repos.Customers, zerolog.Nop())
	ctx := context.Background()

	got, err := uc.Create(ctx, emp, map[string]any{"code": "C-001", "first_name": "Rosa", "email": "rosa@correo.co"})
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.BranchID)

	upd, err := uc.Update(ctx, emp, map[string]any{"id": got.ID, "phone": "3001234567"})
	require.NoError(t, err)
	assert.Equal(t, "3001234567", upd.Phone)
	assert.Equal(t, "Rosa", upd.FirstName)

	_, err = uc.Create(ctx, emp, map[string]any{"code": "C-002", "first_name": "Rosa", "email": "no-es-email"})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "email")
}

func TestCustomer_DeleteSoloGestion(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	_, emp := env.Staff(t, b.ID, entity.RoleEmployee)
	_, manager := env.Staff(t, b.ID, entity.RoleManager)
	c := env.Customer(t, b.ID, time.Now().UTC())
	uc := usecase.NewCustomerUseCase(env.Repos.Branches, env.Repos.Customers, zerolog.Nop())
	ctx := context.Background()

	err := uc.Delete(ctx, emp, map[string]any{"id": c.ID})
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	require.NoError(t, uc.Delete(ctx, manager, map[string]any{"id": c.ID}))
	_, err = uc.Get(ctx, manager, map[string]any{"id": c.ID})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomer_OtraSucursalNoEsVisible(t *testing.T) {
	env := sqlitetest.New(t)
	centro := env.Branch(t, "Centro")
	norte := env.Branch(t, "Norte")
	_, manager := env.Staff(t, centro.ID, entity.RoleManager)
	_, owner := env.Staff(t, centro.ID, entity.RoleOwner)
	ajeno := env.Customer(t, norte.ID, time.Now().UTC())
	env.Customer(t, centro.ID, time.Now().UTC())
	uc := usecase.NewCustomerUseCase(env.Repos.Branches, env.Repos.Customers, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Get(ctx, manager, map[string]any{"id": ajeno.ID})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	_, err = uc.Update(ctx, manager, map[string]any{"id": ajeno.ID, "first_name": "X"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	err = uc.Delete(ctx, manager, map[string]any{"id": ajeno.ID})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	list, err := uc.List(ctx, manager, map[string]any{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, centro.ID, list[0].BranchID)

	got, err := uc.Get(ctx, owner, map[string]any{"id": ajeno.ID})
	require.NoError(t, err)
	assert.Equal(t, norte.ID, got.BranchID)
}
