package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite/sqlitetest"
)

func TestProduct_CreateValoresPorDefecto(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	_, manager := env.Staff(t, b.ID, entity.RoleManager)
	existing := env.Product(t, b.ID, "Base", "1", 0)
	uc := usecase.NewProductUseCase(env.Repos, env.Tx, zerolog.Nop())

	got, err := uc.Create(context.Background(), manager, map[string]any{
		"category_id": existing.CategoryID,
		"name":        "Gorra",
		"price":       "19900.50",
		"colors":      []any{"negro"},
	})
	require.NoError(t, err)
	assert.Equal(t, "COP", got.Currency)
	assert.True(t, got.Available)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19900.5")))
}

func TestProduct_AdjustStock(t *testing.T) {
	env := sqlitetest.New(t)
	ctx := context.Background()
	b := env.Branch(t, "Centro")
	staff, manager := env.Staff(t, b.ID, entity.RoleManager)
	p := env.Product(t, b.ID, "Gorra", "10", 3)
	uc := usecase.NewProductUseCase(env.Repos, env.Tx, zerolog.Nop())

	mov, err := uc.AdjustStock(ctx, manager, map[string]any{"product_id": p.ID, "delta": float64(-2), "reason": "venta mostrador"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mov.StockAfter)
	assert.Equal(t, entity.MovementTypeOut, mov.Type)
	assert.Equal(t, staff.ID, mov.StaffID)

	_, err = uc.AdjustStock(ctx, manager, map[string]any{"product_id": p.ID, "delta": float64(-5)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := env.Repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Stock)

	history, err := uc.Movements(ctx, manager, map[string]any{"id": p.ID})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(-2), history[0].Delta)
}

func TestProduct_AdjustStockEmpleadoNoAutorizado(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	_, employee := env.Staff(t, b.ID, entity.RoleEmployee)
	uc := usecase.NewProductUseCase(env.Repos, env.Tx, zerolog.Nop())

	_, err := uc.AdjustStock(context.Background(), employee, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrNotAllowed)
}

func TestProduct_CategoriaDeOtraSucursal(t *testing.T) {
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	other := env.Branch(t, "Norte")
	_, manager := env.Staff(t, b.ID, entity.RoleManager)
	foreign := env.Product(t, other.ID, "Ajena", "1", 0)
	uc := usecase.NewProductUseCase(env.Repos, env.Tx, zerolog.Nop())

	_, err := uc.Create(context.Background(), manager, map[string]any{
		"category_id": foreign.CategoryID,
		"name":        "Gorra",
		"price":       10,
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

// staffSinConexion falla al buscar por email.
type staffSinConexion struct {
	repository.StaffRepository
	err error
}

func (s staffSinConexion) GetByEmail(context.Context, string) (*entity.Staff, error) {
	return nil, s.err
}

// txConStaffRoto inyecta staffSinConexion en los repos de la transacción.
type txConStaffRoto struct {
	inner repository.TxRunner
	err   error
}

func (t txConStaffRoto) Run(ctx context.Context, fn func(repository.Repos) error) error {
	return t.inner.Run(ctx, func(r repository.Repos) error {
		r.Staff = staffSinConexion{StaffRepository: r.Staff, err: t.err}
		return fn(r)
	})
}

func TestProduct_AdjustStockPropagaErrorDeStaff(t *testing.T) {
	env := sqlitetest.New(t)
	ctx := context.Background()
	b := env.Branch(t, "Centro")
	_, manager := env.Staff(t, b.ID, entity.RoleManager)
	p := env.Product(t, b.ID, "Gorra", "10", 3)
	caida := errors.New("conexión perdida")
	uc := usecase.NewProductUseCase(env.Repos, txConStaffRoto{inner: env.Tx, err: caida}, zerolog.Nop())

	_, err := uc.AdjustStock(ctx, manager, map[string]any{"product_id": p.ID, "delta": float64(2)})
	assert.ErrorIs(t, err, caida)

	got, err := env.Repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Stock, "el ajuste se revierte")
	history, err := uc.Movements(ctx, manager, map[string]any{"id": p.ID})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProduct_AdjustStockSinDesborde(t *testing.T) {
	env := sqlitetest.New(t)
	ctx := context.Background()
	b := env.Branch(t, "Centro")
	_, manager := env.Staff(t, b.ID, entity.RoleManager)
	p := env.Product(t, b.ID, "Gorra", "10", 9223372036000000000)
	uc := usecase.NewProductUseCase(env.Repos, env.Tx, zerolog.Nop())

	_, err := uc.AdjustStock(ctx, manager, map[string]any{"product_id": p.ID, "delta": float64(1000000000)})
	require.ErrorIs(t, err, domain.ErrValidation)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Contains(t, de.Fields, "delta")
}
