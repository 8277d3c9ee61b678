package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, branch_id, code, first_name, last_name, email, phone, created_at, updated_at, deleted_at`

// CustomerRepo implementación de CustomerRepository sobre SQLite.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	var rows []customerRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	list := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.entity())
	}
	return list, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (id, branch_id, code, first_name, last_name, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.BranchID, c.Code, c.FirstName, c.LastName, c.Email, c.Phone, toNanos(c.CreatedAt), toNanos(c.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate.WithMessage("ya existe un cliente con el código %q", c.Code)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var row customerRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+customerColumns+` FROM customers WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return row.entity(), nil
}

func (r *CustomerRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Customer, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers
		WHERE branch_id = ? AND deleted_at IS NULL ORDER BY created_at DESC LIMIT ? OFFSET ?`, branchID, limit, offset)
}

func (r *CustomerRepo) ListCreatedInRange(ctx context.Context, branchID string, from, to time.Time) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers
		WHERE (? = '' OR branch_id = ?) AND created_at BETWEEN ? AND ? AND deleted_at IS NULL
		ORDER BY created_at`, branchID, branchID, toNanos(from), toNanos(to))
}

func (r *CustomerRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := in(r.q, `SELECT `+customerColumns+` FROM customers WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list customers by ids: %w", err)
	}
	return r.list(ctx, query, args...)
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE customers SET code = ?, first_name = ?, last_name = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		c.Code, c.FirstName, c.LastName, c.Email, c.Phone, toNanos(c.UpdatedAt), c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate.WithMessage("ya existe un cliente con el código %q", c.Code)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, id string) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `UPDATE customers SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
