package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El stock no se edita con Update: se ajusta
// con AdjustStock, que deja un movimiento auditable.
type ProductUseCase struct {
	repos repository.Repos
	tx    repository.TxRunner
	log   zerolog.Logger
}

// NewProductUseCase construye el caso de uso. repos para lecturas, tx para ajustes de stock.
func NewProductUseCase(repos repository.Repos, tx repository.TxRunner, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repos: repos, tx: tx, log: log}
}

// Create crea un producto. La categoría debe ser de la sucursal del actor.
func (uc *ProductUseCase) Create(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.ProductResponse, error) {
	if err := authorize(actor, authz.ProductCreate); err != nil {
		return nil, err
	}
	in, err := validation.ProductCreate(raw)
	if err != nil {
		return nil, err
	}
	if _, err := requireBranch(ctx, uc.repos.Branches, actor, actor.BranchID); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, actor.BranchID, in.CategoryID); err != nil {
		return nil, err
	}
	now := clock()
	p := &entity.Product{
		ID:          uuid.New().String(),
		BranchID:    actor.BranchID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Currency:    in.Currency,
		Colors:      in.Colors,
		Available:   in.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	if err := uc.repos.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update edita un producto. Las facturas ya emitidas conservan su precio.
func (uc *ProductUseCase) Update(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.ProductResponse, error) {
	if err := authorize(actor, authz.ProductUpdate); err != nil {
		return nil, err
	}
	in, err := validation.ProductUpdate(raw)
	if err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, actor, in.ID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		if err := uc.checkCategory(ctx, p.BranchID, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	p.UpdatedAt = clock()
	if err := uc.repos.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, actor authz.Actor, raw map[string]any) error {
	if err := authorize(actor, authz.ProductDelete); err != nil {
		return err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return err
	}
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.repos.Products.SoftDelete(ctx, p.ID)
}

func (uc *ProductUseCase) Get(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.ProductResponse, error) {
	if err := authorize(actor, authz.ProductRead); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista productos de la sucursal con paginación.
func (uc *ProductUseCase) List(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.ProductListResponse, error) {
	if err := authorize(actor, authz.ProductList); err != nil {
		return nil, err
	}
	page, err := validation.Page(raw)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Products.ListByBranch(ctx, actor.BranchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AdjustStock suma delta al stock dentro de una transacción con la fila bloqueada.
// El stock nunca queda negativo (INSUFFICIENT_STOCK).
func (uc *ProductUseCase) AdjustStock(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.StockMovementResponse, error) {
	if err := authorize(actor, authz.ProductAdjustStock); err != nil {
		return nil, err
	}
	in, err := validation.StockAdjust(raw)
	if err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		p, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil || !actor.SeesBranch(p.BranchID) {
			return domain.ErrProductNotFound
		}
		if in.Delta > 0 && p.Stock > math.MaxInt64-in.Delta {
			return domain.ValidationError(map[string]string{"delta": "el stock resultante excede el máximo"})
		}
		next := p.Stock + in.Delta
		if next < 0 {
			return domain.ErrInsufficientStock.WithMessage("stock actual %d, ajuste %d", p.Stock, in.Delta)
		}
		if err := repos.Products.UpdateStock(ctx, p.ID, next); err != nil {
			return err
		}
		var staffID string
		s, err := repos.Staff.GetByEmail(ctx, actor.Email)
		if err != nil {
			return err
		}
		if s != nil {
			staffID = s.ID
		}
		mov = &entity.StockMovement{
			ID:         uuid.New().String(),
			BranchID:   p.BranchID,
			ProductID:  p.ID,
			StaffID:    staffID,
			Type:       entity.MovementTypeFor(in.Delta),
			Delta:      in.Delta,
			StockAfter: next,
			Reason:     in.Reason,
			CreatedAt:  clock(),
		}
		return repos.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", mov.ProductID).Int64("delta", mov.Delta).Int64("stock", mov.StockAfter).Msg("stock ajustado")
	return toMovementResponse(mov), nil
}

// Movements historial de ajustes del producto, más recientes primero.
func (uc *ProductUseCase) Movements(ctx context.Context, actor authz.Actor, raw map[string]any) ([]dto.StockMovementResponse, error) {
	if err := authorize(actor, authz.ProductRead); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	page, err := validation.Page(raw)
	if err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Movements.ListByProduct(ctx, p.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func (uc *ProductUseCase) load(ctx context.Context, actor authz.Actor, id string) (*entity.Product, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !actor.SeesBranch(p.BranchID) {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, branchID, categoryID string) error {
	c, err := uc.repos.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil || c.BranchID != branchID {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		BranchID:    p.BranchID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Currency:    p.Currency,
		Colors:      p.Colors,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		StaffID:    m.StaffID,
		Type:       m.Type,
		Delta:      m.Delta,
		StockAfter: m.StockAfter,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
	}
}
