package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite/sqlitetest"
)

func TestCategory_CRUD(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	_, manager := env.Staff(t, b.ID, entity.RoleManager)
	uc := usecase.NewCategoryUseCase(env.Repos.Branches, env.Repos.Categories, zerolog.Nop())
	ctx := context.Background()

	got, err := uc.Create(ctx, manager, map[string]any{"name": "Bebidas"})
	require.NoError(t, err)
	assert.True(t, got.Active, "active por defecto true")
	assert.Equal(t, b.ID, got.BranchID)

	upd, err := uc.Update(ctx, manager, map[string]any{"id": got.ID, "active": "false", "description": "frías"})
	require.NoError(t, err)
	assert.False(t, upd.Active)
	assert.Equal(t, "frías", upd.Description)

	list, err := uc.List(ctx, manager, map[string]any{"limit": "10"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, manager, map[string]any{"id": got.ID}))
	_, err = uc.Get(ctx, manager, map[string]any{"id": got.ID})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategory_EmpleadoSoloLee(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	_, emp := env.Staff(t, b.ID, entity.RoleEmployee)
	uc := usecase.NewCategoryUseCase(env.Repos.Branches, env.Repos.Categories, zerolog.Nop())

	_, err := uc.Create(context.Background(), emp, map[string]any{"name": "Aseo"})
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	list, err := uc.List(context.Background(), emp, map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategory_OtraSucursalNoEsVisible(t *testing.T) {
	env := sqlitetest.New(t)
	centro := env.Branch(t, "Centro")
	norte := env.Branch(t, "Norte")
	_, manager := env.Staff(t, centro.ID, entity.RoleManager)
	p := env.Product(t, norte.ID, "Té verde", "8000", 4)
	uc := usecase.NewCategoryUseCase(env.Repos.Branches, env.Repos.Categories, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Get(ctx, manager, map[string]any{"id": p.CategoryID})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	_, err = uc.Update(ctx, manager, map[string]any{"id": p.CategoryID, "name": "Otra"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	err = uc.Delete(ctx, manager, map[string]any{"id": p.CategoryID})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
