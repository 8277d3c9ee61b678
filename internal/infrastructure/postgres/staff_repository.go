package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, branch_id, first_name, last_name, email, role, active, created_at, updated_at, deleted_at`

// StaffRepo implementación del puerto StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador de persistencia para empleados.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

func scanStaff(row pgx.Row) (*entity.Staff, error) {
	var s entity.Staff
	var role string
	err := row.Scan(&s.ID, &s.BranchID, &s.FirstName, &s.LastName, &s.Email, &role, &s.Active,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if err != nil {
		return nil, err
	}
	s.Role = entity.Role(role)
	return &s, nil
}

// Create persiste un nuevo empleado. Email duplicado → ErrAccountAlreadyExists.
func (r *StaffRepo) Create(ctx context.Context, s *entity.Staff) error {
	query := `
		INSERT INTO staff (id, branch_id, first_name, last_name, email, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.BranchID, s.FirstName, s.LastName, s.Email, string(s.Role), s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 AND deleted_at IS NULL`
	s, err := scanStaff(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff by id: %w", err)
	}
	return s, nil
}

// GetByEmail obtiene un empleado por email (sin distinguir mayúsculas).
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE lower(email) = lower($1) AND deleted_at IS NULL LIMIT 1`
	s, err := scanStaff(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff by email: %w", err)
	}
	return s, nil
}

// Update actualiza un empleado.
func (r *StaffRepo) Update(ctx context.Context, s *entity.Staff) error {
	query := `
		UPDATE staff SET first_name = $2, last_name = $3, email = $4, role = $5, active = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, s.ID, s.FirstName, s.LastName, s.Email, string(s.Role), s.Active, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// ListByBranch lista empleados de la sucursal con paginación.
func (r *StaffRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Staff, error) {
	limit, offset = clampPage(limit, offset)
	query := `SELECT ` + staffColumns + ` FROM staff
		WHERE branch_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountActiveByBranch cuenta empleados activos sin soft delete.
func (r *StaffRepo) CountActiveByBranch(ctx context.Context, branchID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM staff WHERE branch_id = $1 AND active AND deleted_at IS NULL`, branchID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return n, nil
}

// SoftDelete marca deleted_at.
func (r *StaffRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE staff SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}
