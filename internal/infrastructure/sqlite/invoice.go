package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/codec"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, branch_id, customer_id, staff_id, type, status, items, total_items, total_price,
	expires_at, created_at, updated_at, deleted_at`

// InvoiceRepo implementación de InvoiceRepository sobre SQLite.
// Los ítems viajan como texto JSON con el mismo codec del gateway postgres.
type InvoiceRepo struct {
	q Querier
}

func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	var rows []invoiceRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	list := make([]*entity.Invoice, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.entity())
	}
	return list, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := codec.EncodeItems(inv.Items)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO invoices (id, branch_id, customer_id, staff_id, type, status, items, total_items, total_price,
		                      expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.BranchID, nullIfEmpty(inv.CustomerID), nullIfEmpty(inv.StaffID),
		string(inv.Type), string(inv.Status), string(items), inv.TotalItems, inv.TotalPrice.String(),
		toNullNanos(inv.ExpiresAt), toNanos(inv.CreatedAt), toNanos(inv.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var row invoiceRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return row.entity(), nil
}

// GetForUpdate igual que GetByID; ver ProductRepo.GetForUpdate.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	items, err := codec.EncodeItems(inv.Items)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = ?, status = ?, items = ?, total_items = ?, total_price = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		nullIfEmpty(inv.CustomerID), string(inv.Status), string(items), inv.TotalItems, inv.TotalPrice.String(),
		toNullNanos(inv.ExpiresAt), toNanos(inv.UpdatedAt), inv.ID)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) SoftDelete(ctx context.Context, id string) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `UPDATE invoices SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) ListByBranch(ctx context.Context, branchID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	limit, offset := clampPage(f.Limit, f.Offset)
	status, typ := string(f.Status), string(f.Type)
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE branch_id = ? AND deleted_at IS NULL
		  AND (? = '' OR status = ?) AND (? = '' OR type = ?)
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		branchID, status, status, typ, typ, limit, offset)
}

func (r *InvoiceRepo) ListInRange(ctx context.Context, branchID string, from, to time.Time) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE (? = '' OR branch_id = ?) AND created_at BETWEEN ? AND ? AND deleted_at IS NULL
		ORDER BY created_at`,
		branchID, branchID, toNanos(from), toNanos(to))
}
