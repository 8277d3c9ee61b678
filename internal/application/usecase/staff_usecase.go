package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// StaffUseCase reglas de negocio de empleados. Las reglas sobre el empleado
// objetivo (OWNER intocable, ADMIN solo por OWNER, sin escalar rol) viven en authz.
type StaffUseCase struct {
	branches repository.BranchRepository
	staff    repository.StaffRepository
	log      zerolog.Logger
}

func NewStaffUseCase(branches repository.BranchRepository, staff repository.StaffRepository, log zerolog.Logger) *StaffUseCase {
	return &StaffUseCase{branches: branches, staff: staff, log: log}
}

// Create da de alta un empleado. Email repetido → ACCOUNT_ALREADY_EXISTS.
func (uc *StaffUseCase) Create(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.StaffResponse, error) {
	if err := authorize(actor, authz.StaffCreate); err != nil {
		return nil, err
	}
	in, err := validation.StaffCreate(raw)
	if err != nil {
		return nil, err
	}
	role := entity.Role(in.Role)
	if err := actor.Can(authz.StaffCreate, &authz.Target{NewRole: role}).Err(); err != nil {
		return nil, err
	}
	branchID := in.BranchID
	if branchID == "" {
		branchID = actor.BranchID
	}
	if _, err := requireBranch(ctx, uc.branches, actor, branchID); err != nil {
		return nil, err
	}
	now := clock()
	s := &entity.Staff{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      role,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.staff.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("staff_id", s.ID).Str("role", string(s.Role)).Msg("empleado creado")
	return toStaffResponse(s), nil
}

// Update edita datos, rol o estado. Desactivar por esta vía aplica las mismas
// reglas que Deactivate.
func (uc *StaffUseCase) Update(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.StaffResponse, error) {
	if err := authorize(actor, authz.StaffUpdate); err != nil {
		return nil, err
	}
	in, err := validation.StaffUpdate(raw)
	if err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, in.ID)
	if err != nil {
		return nil, err
	}
	target := &authz.Target{StaffRole: s.Role}
	if in.Role != nil && entity.Role(*in.Role) != s.Role {
		target.NewRole = entity.Role(*in.Role)
	}
	if err := actor.Can(authz.StaffUpdate, target).Err(); err != nil {
		return nil, err
	}
	if in.Active != nil && !*in.Active && s.Active {
		if err := actor.Can(authz.StaffDeactivate, &authz.Target{StaffRole: s.Role}).Err(); err != nil {
			return nil, err
		}
	}
	if in.FirstName != nil {
		s.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		s.LastName = *in.LastName
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if target.NewRole != "" {
		s.Role = target.NewRole
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = clock()
	if err := uc.staff.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStaffResponse(s), nil
}

// Deactivate marca al empleado como inactivo.
func (uc *StaffUseCase) Deactivate(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.StaffResponse, error) {
	if err := authorize(actor, authz.StaffDeactivate); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := actor.Can(authz.StaffDeactivate, &authz.Target{StaffRole: s.Role}).Err(); err != nil {
		return nil, err
	}
	s.Active = false
	s.UpdatedAt = clock()
	if err := uc.staff.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("staff_id", s.ID).Str("by", actor.AccountID).Msg("empleado desactivado")
	return toStaffResponse(s), nil
}

// Delete elimina lógicamente al empleado.
func (uc *StaffUseCase) Delete(ctx context.Context, actor authz.Actor, raw map[string]any) error {
	if err := authorize(actor, authz.StaffDelete); err != nil {
		return err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := actor.Can(authz.StaffDelete, &authz.Target{StaffRole: s.Role}).Err(); err != nil {
		return err
	}
	if err := uc.staff.SoftDelete(ctx, s.ID); err != nil {
		return err
	}
	uc.log.Info().Str("staff_id", s.ID).Str("by", actor.AccountID).Msg("empleado eliminado")
	return nil
}

// Get obtiene un empleado de la sucursal del actor.
func (uc *StaffUseCase) Get(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.StaffResponse, error) {
	if err := authorize(actor, authz.StaffRead); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(s), nil
}

// List lista empleados de la sucursal del actor. EMPLOYEE no tiene acceso.
func (uc *StaffUseCase) List(ctx context.Context, actor authz.Actor, raw map[string]any) ([]dto.StaffResponse, error) {
	if err := authorize(actor, authz.StaffList); err != nil {
		return nil, err
	}
	page, err := validation.Page(raw)
	if err != nil {
		return nil, err
	}
	list, err := uc.staff.ListByBranch(ctx, actor.BranchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStaffResponse(s))
	}
	return out, nil
}

func (uc *StaffUseCase) load(ctx context.Context, actor authz.Actor, id string) (*entity.Staff, error) {
	s, err := uc.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || !actor.SeesBranch(s.BranchID) {
		return nil, domain.ErrStaffNotFound
	}
	return s, nil
}

func toStaffResponse(s *entity.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:        s.ID,
		BranchID:  s.BranchID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Role:      string(s.Role),
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
