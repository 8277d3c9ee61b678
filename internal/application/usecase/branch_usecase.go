package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// BranchUseCase reglas de negocio de sucursales.
type BranchUseCase struct {
	branches repository.BranchRepository
	staff    repository.StaffRepository
	log      zerolog.Logger
}

// NewBranchUseCase construye el caso de uso con los puertos de persistencia.
func NewBranchUseCase(branches repository.BranchRepository, staff repository.StaffRepository, log zerolog.Logger) *BranchUseCase {
	return &BranchUseCase{branches: branches, staff: staff, log: log}
}

// Create crea una sucursal.
func (uc *BranchUseCase) Create(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.BranchResponse, error) {
	if err := authorize(actor, authz.BranchCreate); err != nil {
		return nil, err
	}
	in, err := validation.BranchCreate(raw)
	if err != nil {
		return nil, err
	}
	attrs, err := encodeAttributes(in.Attributes)
	if err != nil {
		return nil, err
	}
	now := clock()
	b := &entity.Branch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CompanyCode: in.CompanyCode,
		Website:     in.Website,
		Attributes:  attrs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.log.Info().Str("branch_id", b.ID).Str("by", actor.AccountID).Msg("sucursal creada")
	return toBranchResponse(b), nil
}

// Update edita una sucursal visible para el actor. Los atributos se reemplazan completos.
func (uc *BranchUseCase) Update(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.BranchResponse, error) {
	if err := authorize(actor, authz.BranchUpdate); err != nil {
		return nil, err
	}
	in, err := validation.BranchUpdate(raw)
	if err != nil {
		return nil, err
	}
	b, err := requireBranch(ctx, uc.branches, actor, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.CompanyCode != nil {
		b.CompanyCode = *in.CompanyCode
	}
	if in.Website != nil {
		b.Website = *in.Website
	}
	if in.Attributes != nil {
		if b.Attributes, err = encodeAttributes(in.Attributes); err != nil {
			return nil, err
		}
	}
	b.UpdatedAt = clock()
	if err := uc.branches.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// Get obtiene una sucursal por id.
func (uc *BranchUseCase) Get(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.BranchResponse, error) {
	if err := authorize(actor, authz.BranchRead); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	b, err := requireBranch(ctx, uc.branches, actor, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// List OWNER ve todas las sucursales; el resto solo la propia.
func (uc *BranchUseCase) List(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.BranchListResponse, error) {
	if err := authorize(actor, authz.BranchList); err != nil {
		return nil, err
	}
	page, err := validation.Page(raw)
	if err != nil {
		return nil, err
	}
	var list []*entity.Branch
	if actor.Role == entity.RoleOwner {
		if list, err = uc.branches.List(ctx, page.Limit, page.Offset); err != nil {
			return nil, err
		}
	} else if page.Offset == 0 {
		b, err := uc.branches.GetByID(ctx, actor.BranchID)
		if err != nil {
			return nil, err
		}
		if b != nil {
			list = append(list, b)
		}
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina lógicamente la sucursal. Falla con BRANCH_NOT_EMPTY mientras tenga empleados activos.
func (uc *BranchUseCase) Delete(ctx context.Context, actor authz.Actor, raw map[string]any) error {
	if err := authorize(actor, authz.BranchDelete); err != nil {
		return err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return err
	}
	b, err := requireBranch(ctx, uc.branches, actor, id)
	if err != nil {
		return err
	}
	n, err := uc.staff.CountActiveByBranch(ctx, b.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrBranchNotEmpty.WithMessage("la sucursal tiene %d empleado(s) activo(s)", n)
	}
	if err := uc.branches.SoftDelete(ctx, b.ID); err != nil {
		return err
	}
	uc.log.Info().Str("branch_id", b.ID).Str("by", actor.AccountID).Msg("sucursal eliminada")
	return nil
}

func encodeAttributes(attrs map[string]any) (json.RawMessage, error) {
	if attrs == nil {
		return json.RawMessage(`{}`), nil
	}
	return json.Marshal(attrs)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	res := &dto.BranchResponse{
		ID:          b.ID,
		Name:        b.Name,
		CompanyCode: b.CompanyCode,
		Website:     b.Website,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if len(b.Attributes) > 0 {
		_ = json.Unmarshal(b.Attributes, &res.Attributes)
	}
	return res
}
