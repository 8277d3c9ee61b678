package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/codec"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, branch_id, customer_id, staff_id, type, status, items, total_items, total_price,
	expires_at, created_at, updated_at, deleted_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Los ítems viajan como JSONB.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID, staffID *string
	var typ, status string
	var items []byte
	err := row.Scan(&inv.ID, &inv.BranchID, &customerID, &staffID, &typ, &status, &items,
		&inv.TotalItems, &inv.TotalPrice, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt)
	if err != nil {
		return nil, err
	}
	derefStr := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}
	inv.CustomerID = derefStr(customerID)
	inv.StaffID = derefStr(staffID)
	inv.Type = entity.InvoiceType(typ)
	inv.Status = entity.InvoiceStatus(status)
	codec.ApplyItems(&inv, items)
	return &inv, nil
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Create persiste la factura con sus ítems.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := codec.EncodeItems(inv.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (id, branch_id, customer_id, staff_id, type, status, items, total_items, total_price,
		                      expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.BranchID, nullIfEmpty(inv.CustomerID), nullIfEmpty(inv.StaffID),
		string(inv.Type), string(inv.Status), items, inv.TotalItems, inv.TotalPrice,
		nullTime(inv.ExpiresAt), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetForUpdate obtiene la factura y bloquea la fila hasta el fin de la transacción.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

func (r *InvoiceRepo) get(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// Update reescribe cliente, estado, ítems y totales.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	items, err := codec.EncodeItems(inv.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE invoices
		SET customer_id = $2, status = $3, items = $4, total_items = $5, total_price = $6,
		    expires_at = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`
	_, err = r.q.Exec(ctx, query,
		inv.ID, nullIfEmpty(inv.CustomerID), string(inv.Status), items, inv.TotalItems, inv.TotalPrice,
		nullTime(inv.ExpiresAt), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// SoftDelete marca deleted_at.
func (r *InvoiceRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE invoices SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// ListByBranch lista facturas de la sucursal, más recientes primero.
func (r *InvoiceRepo) ListByBranch(ctx context.Context, branchID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	limit, offset := clampPage(f.Limit, f.Offset)
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE branch_id = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR status = $2) AND ($3 = '' OR type = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`,
		branchID, string(f.Status), string(f.Type), limit, offset)
}

// ListInRange facturas creadas en [from, to]; branchID vacío = todas las sucursales.
func (r *InvoiceRepo) ListInRange(ctx context.Context, branchID string, from, to time.Time) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE ($1 = '' OR branch_id::text = $1) AND created_at BETWEEN $2 AND $3 AND deleted_at IS NULL
		ORDER BY created_at`,
		branchID, from, to)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
