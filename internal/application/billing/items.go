package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// snapshotItems arma las líneas con el precio congelado. known trae los precios
// ya congelados en la factura (nil en el alta). Todo producto debe existir en
// la sucursal; si uno falla no se devuelve ninguna línea.
func snapshotItems(
	ctx context.Context,
	products repository.ProductRepository,
	branchID string,
	reqs []dto.InvoiceItemRequest,
	known map[string]decimal.Decimal,
) (entity.InvoiceItems, error) {
	items := make(entity.InvoiceItems, 0, len(reqs))
	for _, r := range reqs {
		p, err := products.GetByID(ctx, r.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.BranchID != branchID {
			return nil, domain.ErrProductQuantityMismatch.WithMessage("el producto %s no existe en la sucursal", r.ProductID)
		}
		price, ok := known[p.ID]
		if !ok {
			price = p.Price
		}
		items = append(items, entity.InvoiceItem{ProductID: p.ID, Quantity: r.Quantity, Price: price})
	}
	return items, nil
}

// knownPrices precios congelados de la factura por producto.
func knownPrices(inv *entity.Invoice) map[string]decimal.Decimal {
	if inv.ItemsUnreadable {
		return nil
	}
	m := make(map[string]decimal.Decimal, len(inv.Items))
	for _, it := range inv.Items {
		if _, ok := m[it.ProductID]; !ok {
			m[it.ProductID] = it.Price
		}
	}
	return m
}

// resolveStaff empleado indicado o, si no se indicó, el del usuario autenticado.
func resolveStaff(ctx context.Context, repo repository.StaffRepository, actor authz.Actor, staffID string) (*entity.Staff, error) {
	if staffID != "" {
		return repo.GetByID(ctx, staffID)
	}
	return repo.GetByEmail(ctx, actor.Email)
}

func checkCustomer(ctx context.Context, repo repository.CustomerRepository, branchID, customerID string) error {
	c, err := repo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c == nil || c.BranchID != branchID {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// loadInvoice get es GetByID para lecturas o GetForUpdate dentro de una transacción.
func loadInvoice(ctx context.Context, get func(context.Context, string) (*entity.Invoice, error), actor authz.Actor, id string) (*entity.Invoice, error) {
	inv, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || !actor.SeesBranch(inv.BranchID) {
		return nil, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.InvoiceResponse{
		ID:              inv.ID,
		BranchID:        inv.BranchID,
		CustomerID:      inv.CustomerID,
		StaffID:         inv.StaffID,
		Type:            string(inv.Type),
		Status:          string(inv.Status),
		Items:           items,
		TotalItems:      inv.TotalItems,
		TotalPrice:      inv.TotalPrice,
		ItemsUnreadable: inv.ItemsUnreadable,
		ExpiresAt:       inv.ExpiresAt,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}
