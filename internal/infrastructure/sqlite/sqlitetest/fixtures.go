// Package sqlitetest arma una base SQLite en memoria con datos mínimos para
// los tests de casos de uso y de handlers.
package sqlitetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite"
)

// Env base abierta con sus repositorios y el runner transaccional.
type Env struct {
	DB    *sqlx.DB
	Repos repository.Repos
	Tx    repository.TxRunner
}

// New abre una base en memoria que se cierra al terminar el test.
func New(t *testing.T) *Env {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Env{DB: db, Repos: sqlite.NewRepos(db), Tx: sqlite.NewTxRunner(db)}
}

func (e *Env) Branch(t *testing.T, name string) *entity.Branch {
	t.Helper()
	now := time.Now().UTC()
	b := &entity.Branch{ID: uuid.NewString(), Name: name, Attributes: []byte(`{}`), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.Repos.Branches.Create(context.Background(), b))
	return b
}

// Staff crea un empleado activo y devuelve el actor equivalente a su token.
func (e *Env) Staff(t *testing.T, branchID string, role entity.Role) (*entity.Staff, authz.Actor) {
	t.Helper()
	now := time.Now().UTC()
	s := &entity.Staff{
		ID:        uuid.NewString(),
		BranchID:  branchID,
		FirstName: "Empleado",
		LastName:  string(role),
		Email:     uuid.NewString()[:8] + "@tienda.co",
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.Repos.Staff.Create(context.Background(), s))
	return s, authz.Actor{AccountID: s.ID, Email: s.Email, Role: role, BranchID: branchID}
}

func (e *Env) Customer(t *testing.T, branchID string, createdAt time.Time) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		ID:        uuid.NewString(),
		BranchID:  branchID,
		Code:      "C-" + uuid.NewString()[:6],
		FirstName: "Ana",
		LastName:  "Gómez",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, e.Repos.Customers.Create(context.Background(), c))
	return c
}

// Product crea una categoría propia y un producto con el precio y stock dados.
func (e *Env) Product(t *testing.T, branchID, name, price string, stock int64) *entity.Product {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	cat := &entity.Category{ID: uuid.NewString(), BranchID: branchID, Name: "Cat " + uuid.NewString()[:8], Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.Repos.Categories.Create(ctx, cat))
	p := &entity.Product{
		ID:         uuid.NewString(),
		BranchID:   branchID,
		CategoryID: cat.ID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		Currency:   "COP",
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, e.Repos.Products.Create(ctx, p))
	return p
}

// Invoice inserta una factura directamente (sin pasar por el caso de uso).
func (e *Env) Invoice(t *testing.T, branchID, customerID, staffID string, typ entity.InvoiceType, status entity.InvoiceStatus, createdAt time.Time, items ...entity.InvoiceItem) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ID:         uuid.NewString(),
		BranchID:   branchID,
		CustomerID: customerID,
		StaffID:    staffID,
		Type:       typ,
		Status:     status,
		Items:      items,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	inv.ApplyTotals()
	require.NoError(t, e.Repos.Invoices.Create(context.Background(), inv))
	return inv
}
