package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// NewRepos arma el juego de repositorios sobre q (db o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Branches:   NewBranchRepository(q),
		Staff:      NewStaffRepository(q),
		Customers:  NewCustomerRepository(q),
		Categories: NewCategoryRepository(q),
		Products:   NewProductRepository(q),
		Invoices:   NewInvoiceRepository(q),
		Movements:  NewStockMovementRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
// Con una sola conexión, fn debe usar únicamente los repos que recibe.
type TxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
