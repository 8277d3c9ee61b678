package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, branch_id, name, description, active, created_at, updated_at, deleted_at`

// CategoryRepo implementación de CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. Nombre repetido en la sucursal → ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO categories (id, branch_id, name, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.BranchID, c.Name, c.Description, c.Active, toNanos(c.CreatedAt), toNanos(c.UpdatedAt))
	if err = uniqueError(err, domain.ErrDuplicate); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+categoryColumns+` FROM categories WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return row.entity(), nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, active = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		c.Name, c.Description, c.Active, toNanos(c.UpdatedAt), c.ID)
	if err = uniqueError(err, domain.ErrDuplicate); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Category, error) {
	limit, offset = clampPage(limit, offset)
	var rows []categoryRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT `+categoryColumns+` FROM categories
		WHERE branch_id = ? AND deleted_at IS NULL ORDER BY name LIMIT ? OFFSET ?`, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.entity())
	}
	return list, nil
}

func (r *CategoryRepo) SoftDelete(ctx context.Context, id string) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `UPDATE categories SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
