// Package store elige el gateway de persistencia según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/backoffice-api/pkg/config"
)

// Store repositorios listos para usar más el cierre de la conexión.
type Store struct {
	Repos  repository.Repos
	Tx     repository.TxRunner
	Driver string
	close  func()
}

// Close libera la conexión subyacente.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre PostgreSQL (pgx) o SQLite (sqlx + modernc) y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Store{
			Repos:  postgres.NewRepos(pool),
			Tx:     postgres.NewTxRunner(pool),
			Driver: config.StorePostgres,
			close:  pool.Close,
		}, nil
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("sqlite abierto")
		return &Store{
			Repos:  sqlite.NewRepos(db),
			Tx:     sqlite.NewTxRunner(db),
			Driver: config.StoreSQLite,
			close:  func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("driver de persistencia desconocido %q", cfg.Store.Driver)
	}
}
