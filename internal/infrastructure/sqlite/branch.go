package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, name, company_code, website, attributes, created_at, updated_at, deleted_at`

// BranchRepo implementación de BranchRepository sobre SQLite.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar db o tx.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

func attributesText(b *entity.Branch) string {
	if len(b.Attributes) == 0 {
		return "{}"
	}
	return string(b.Attributes)
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO branches (id, name, company_code, website, attributes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.CompanyCode, b.Website, attributesText(b), toNanos(b.CreatedAt), toNanos(b.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	var row branchRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+branchColumns+` FROM branches WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return row.entity(), nil
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE branches SET name = ?, company_code = ?, website = ?, attributes = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		b.Name, b.CompanyCode, b.Website, attributesText(b), toNanos(b.UpdatedAt), b.ID)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) List(ctx context.Context, limit, offset int) ([]*entity.Branch, error) {
	limit, offset = clampPage(limit, offset)
	var rows []branchRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT `+branchColumns+` FROM branches
		WHERE deleted_at IS NULL ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	list := make([]*entity.Branch, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.entity())
	}
	return list, nil
}

func (r *BranchRepo) SoftDelete(ctx context.Context, id string) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `UPDATE branches SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}
