package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, branch_id, first_name, last_name, email, role, active, created_at, updated_at, deleted_at`

// StaffRepo implementación de StaffRepository sobre SQLite.
// El índice staff_email_key usa COLLATE NOCASE, igual que lower(email) en postgres.
type StaffRepo struct {
	q Querier
}

func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

func (r *StaffRepo) get(ctx context.Context, query string, arg any) (*entity.Staff, error) {
	var row staffRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return row.entity(), nil
}

// Create persiste un empleado. Email duplicado → ErrAccountAlreadyExists.
func (r *StaffRepo) Create(ctx context.Context, s *entity.Staff) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO staff (id, branch_id, first_name, last_name, email, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.BranchID, s.FirstName, s.LastName, s.Email, string(s.Role), s.Active,
		toNanos(s.CreatedAt), toNanos(s.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	return r.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ? AND deleted_at IS NULL`, id)
}

func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	return r.get(ctx, `SELECT `+staffColumns+` FROM staff
		WHERE email = ? COLLATE NOCASE AND deleted_at IS NULL LIMIT 1`, email)
}

func (r *StaffRepo) Update(ctx context.Context, s *entity.Staff) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE staff SET first_name = ?, last_name = ?, email = ?, role = ?, active = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		s.FirstName, s.LastName, s.Email, string(s.Role), s.Active, toNanos(s.UpdatedAt), s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

func (r *StaffRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Staff, error) {
	limit, offset = clampPage(limit, offset)
	var rows []staffRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT `+staffColumns+` FROM staff
		WHERE branch_id = ? AND deleted_at IS NULL ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	list := make([]*entity.Staff, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.entity())
	}
	return list, nil
}

func (r *StaffRepo) CountActiveByBranch(ctx context.Context, branchID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n,
		`SELECT count(*) FROM staff WHERE branch_id = ? AND active = 1 AND deleted_at IS NULL`, branchID)
	if err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return n, nil
}

// SoftDelete marca deleted_at. El email queda reservado: el índice único no filtra eliminados.
func (r *StaffRepo) SoftDelete(ctx context.Context, id string) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `UPDATE staff SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}
