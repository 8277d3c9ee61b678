package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, branch_id, category_id, name, description, price, stock, currency, colors, available,
	created_at, updated_at, deleted_at`

// ProductRepo implementación de ProductRepository sobre SQLite.
// El precio se guarda como TEXT para no perder decimales.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.entity())
	}
	return list, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (id, branch_id, category_id, name, description, price, stock, currency, colors, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.BranchID, p.CategoryID, p.Name, p.Description, p.Price.String(), p.Stock, p.Currency,
		colorsJSON(p.Colors), p.Available, toNanos(p.CreatedAt), toNanos(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+productColumns+` FROM products WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.entity(), nil
}

// GetForUpdate en SQLite equivale a GetByID: la escritura ya está serializada
// por la única conexión abierta.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := in(r.q, `SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	return r.list(ctx, query, args...)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET category_id = ?, name = ?, description = ?, price = ?, currency = ?, colors = ?, available = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		p.CategoryID, p.Name, p.Description, p.Price.String(), p.Currency, colorsJSON(p.Colors), p.Available,
		toNanos(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	_, err := r.q.ExecContext(ctx, `UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`, stock, now(), id)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

func (r *ProductRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Product, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE branch_id = ? AND deleted_at IS NULL ORDER BY name LIMIT ? OFFSET ?`, branchID, limit, offset)
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `UPDATE products SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
