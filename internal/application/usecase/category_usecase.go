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

// CategoryUseCase CRUD de categorías de producto.
type CategoryUseCase struct {
	branches   repository.BranchRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func NewCategoryUseCase(branches repository.BranchRepository, categories repository.CategoryRepository, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{branches: branches, categories: categories, log: log}
}

func (uc *CategoryUseCase) Create(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CategoryResponse, error) {
	if err := authorize(actor, authz.CategoryCreate); err != nil {
		return nil, err
	}
	in, err := validation.CategoryCreate(raw)
	if err != nil {
		return nil, err
	}
	if _, err := requireBranch(ctx, uc.branches, actor, actor.BranchID); err != nil {
		return nil, err
	}
	now := clock()
	c := &entity.Category{
		ID:          uuid.New().String(),
		BranchID:    actor.BranchID,
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CategoryResponse, error) {
	if err := authorize(actor, authz.CategoryUpdate); err != nil {
		return nil, err
	}
	in, err := validation.CategoryUpdate(raw)
	if err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = clock()
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, actor authz.Actor, raw map[string]any) error {
	if err := authorize(actor, authz.CategoryDelete); err != nil {
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
	return uc.categories.SoftDelete(ctx, c.ID)
}

func (uc *CategoryUseCase) Get(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CategoryResponse, error) {
	if err := authorize(actor, authz.CategoryRead); err != nil {
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
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, actor authz.Actor, raw map[string]any) ([]dto.CategoryResponse, error) {
	if err := authorize(actor, authz.CategoryList); err != nil {
		return nil, err
	}
	page, err := validation.Page(raw)
	if err != nil {
		return nil, err
	}
	list, err := uc.categories.ListByBranch(ctx, actor.BranchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) load(ctx context.Context, actor authz.Actor, id string) (*entity.Category, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !actor.SeesBranch(c.BranchID) {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		BranchID:    c.BranchID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
