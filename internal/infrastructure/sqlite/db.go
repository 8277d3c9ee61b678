// Package sqlite es el gateway embebido (desarrollo local y tests) sobre
// modernc.org/sqlite, sin CGO. Mismos puertos que el gateway postgres; los
// ítems de factura se guardan como texto JSON y las fechas como unix nanos.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Querier lo implementan *sqlx.DB y *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
}

// Open abre la base (":memory:" o archivo) y aplica el esquema.
// Una sola conexión: SQLite serializa escrituras y ":memory:" es por conexión.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	if dsn != ":memory:" && !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func uniqueError(err error, onUnique *domain.Error) error {
	if err != nil && isUniqueViolation(err) {
		return onUnique
	}
	return err
}

func toNanos(t time.Time) int64 { return t.UnixNano() }

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }

func toNullNanos(t *time.Time) *int64 {
	if t == nil || t.IsZero() {
		return nil
	}
	n := t.UnixNano()
	return &n
}

func fromNullNanos(n *int64) *time.Time {
	if n == nil {
		return nil
	}
	t := fromNanos(*n)
	return &t
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// in expande "IN (?)" para una lista de ids.
func in(q Querier, query string, ids []string) (string, []any, error) {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return "", nil, err
	}
	return q.Rebind(query), args, nil
}

func isNoRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }

func now() int64 { return toNanos(time.Now()) }
