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

// CustomerUseCase CRUD de clientes de la sucursal del actor.
type CustomerUseCase struct {
	branches  repository.BranchRepository
	customers repository.CustomerRepository
	log       zerolog.Logger
}

func NewCustomerUseCase(branches repository.BranchRepository, customers repository.CustomerRepository, log zerolog.Logger) *CustomerUseCase {
	return &CustomerUseCase{branches: branches, customers: customers, log: log}
}

// Create da de alta un cliente. Código repetido en la sucursal → DUPLICATE.
func (uc *CustomerUseCase) Create(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CustomerResponse, error) {
	if err := authorize(actor, authz.CustomerCreate); err != nil {
		return nil, err
	}
	in, err := validation.CustomerCreate(raw)
	if err != nil {
		return nil, err
	}
	if _, err := requireBranch(ctx, uc.branches, actor, actor.BranchID); err != nil {
		return nil, err
	}
	now := clock()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		BranchID:  actor.BranchID,
		Code:      in.Code,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CustomerResponse, error) {
	if err := authorize(actor, authz.CustomerUpdate); err != nil {
		return nil, err
	}
	in, err := validation.CustomerUpdate(raw)
	if err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		c.Code = *in.Code
	}
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	c.UpdatedAt = clock()
	if err := uc.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) Delete(ctx context.Context, actor authz.Actor, raw map[string]any) error {
	if err := authorize(actor, authz.CustomerDelete); err != nil {
		return err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.customers.SoftDelete(ctx, c.ID)
}

func (uc *CustomerUseCase) Get(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CustomerResponse, error) {
	if err := authorize(actor, authz.CustomerRead); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, actor authz.Actor, raw map[string]any) ([]dto.CustomerResponse, error) {
	if err := authorize(actor, authz.CustomerList); err != nil {
		return nil, err
	}
	page, err := validation.Page(raw)
	if err != nil {
		return nil, err
	}
	list, err := uc.customers.ListByBranch(ctx, actor.BranchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) load(ctx context.Context, actor authz.Actor, id string) (*entity.Customer, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !actor.SeesBranch(c.BranchID) {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Code:      c.Code,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
