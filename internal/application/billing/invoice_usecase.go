// Package billing casos de uso de facturación: alta, edición, borrado lógico,
// listado y exportación a PDF de facturas de venta y compra.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// InvoiceUseCase reglas de negocio de facturas. Las escrituras corren en una
// sola transacción que cubre las verificaciones de existencia y el guardado.
type InvoiceUseCase struct {
	repos repository.Repos
	tx    repository.TxRunner
	log   zerolog.Logger
	now   func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. repos para lecturas, tx para escrituras.
func NewInvoiceUseCase(repos repository.Repos, tx repository.TxRunner, log zerolog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{repos: repos, tx: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Create crea una factura en la sucursal del actor.
//
//  1. autoriza (OWNER/ADMIN) antes de mirar el cuerpo;
//  2. valida la entrada (ítems con cantidad entera positiva);
//  3. en una transacción verifica sucursal, empleado, cliente y productos;
//     un solo producto inexistente o de otra sucursal aborta todo (PRODUCT_QUANTITY_MISMATCH);
//  4. congela el precio actual de cada producto y calcula los totales.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.InvoiceResponse, error) {
	if err := actor.Can(authz.InvoiceCreate, nil).Err(); err != nil {
		return nil, err
	}
	in, err := validation.InvoiceCreate(raw)
	if err != nil {
		return nil, err
	}
	status := entity.InvoiceStatusDraft
	if in.Status != "" {
		status = entity.InvoiceStatus(in.Status)
	}

	var inv *entity.Invoice
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		branch, err := repos.Branches.GetByID(ctx, actor.BranchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return domain.ErrBranchNotFound
		}
		staff, err := resolveStaff(ctx, repos.Staff, actor, in.StaffID)
		if err != nil {
			return err
		}
		if staff == nil || staff.BranchID != branch.ID {
			return domain.ErrStaffNotFound
		}
		if err := checkCustomer(ctx, repos.Customers, branch.ID, in.CustomerID); err != nil {
			return err
		}
		items, err := snapshotItems(ctx, repos.Products, branch.ID, in.Items, nil)
		if err != nil {
			return err
		}
		now := uc.now()
		inv = &entity.Invoice{
			ID:         uuid.New().String(),
			BranchID:   branch.ID,
			CustomerID: in.CustomerID,
			StaffID:    staff.ID,
			Type:       entity.InvoiceType(in.Type),
			Status:     status,
			Items:      items,
			ExpiresAt:  in.ExpiresAt,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		inv.ApplyTotals()
		return repos.Invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("branch_id", inv.BranchID).
		Str("type", string(inv.Type)).
		Int64("total_items", inv.TotalItems).
		Str("total_price", inv.TotalPrice.String()).
		Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// Update edita una factura abierta (draft o pending). Los productos que ya
// estaban en la factura conservan su precio; los nuevos toman el precio actual.
// El estado solo avanza por las aristas legales (INVALID_STATUS_TRANSITION).
func (uc *InvoiceUseCase) Update(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.InvoiceResponse, error) {
	if err := actor.Can(authz.InvoiceUpdate, nil).Err(); err != nil {
		return nil, err
	}
	in, err := validation.InvoiceUpdate(raw)
	if err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	var from entity.InvoiceStatus
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		inv, err = loadInvoice(ctx, repos.Invoices.GetForUpdate, actor, in.ID)
		if err != nil {
			return err
		}
		from = inv.Status
		if inv.Status.IsFinal() {
			return domain.ErrInvoiceLocked.WithMessage("la factura está en estado %s", inv.Status)
		}
		if in.Status != nil {
			next := entity.InvoiceStatus(*in.Status)
			if !inv.Status.CanTransition(next) {
				return domain.ErrInvalidTransition.WithMessage("no se puede pasar de %s a %s", inv.Status, next)
			}
			inv.Status = next
		}
		if in.CustomerID != nil {
			if err := checkCustomer(ctx, repos.Customers, inv.BranchID, *in.CustomerID); err != nil {
				return err
			}
			inv.CustomerID = *in.CustomerID
		}
		if in.Items != nil {
			items, err := snapshotItems(ctx, repos.Products, inv.BranchID, in.Items, knownPrices(inv))
			if err != nil {
				return err
			}
			inv.Items = items
			inv.ItemsUnreadable = false
			inv.ApplyTotals()
		}
		if in.ExpiresAt != nil {
			inv.ExpiresAt = in.ExpiresAt
		}
		inv.UpdatedAt = uc.now()
		return repos.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	if from != inv.Status {
		uc.log.Info().Str("invoice_id", inv.ID).Str("from", string(from)).Str("to", string(inv.Status)).Msg("estado de factura actualizado")
	}
	return toInvoiceResponse(inv), nil
}

// Delete borrado lógico: la factura desaparece de listados y reportes.
func (uc *InvoiceUseCase) Delete(ctx context.Context, actor authz.Actor, raw map[string]any) error {
	if err := actor.Can(authz.InvoiceDelete, nil).Err(); err != nil {
		return err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return err
	}
	inv, err := loadInvoice(ctx, uc.repos.Invoices.GetByID, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repos.Invoices.SoftDelete(ctx, inv.ID); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("by", actor.AccountID).Msg("factura eliminada")
	return nil
}

// GetAll lista las facturas de la sucursal del empleado autenticado.
// Si el empleado o su sucursal no se resuelven devuelve una lista vacía:
// la lectura es tolerante mientras las escrituras fallan con error.
func (uc *InvoiceUseCase) GetAll(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.InvoiceListResponse, error) {
	if err := actor.Can(authz.InvoiceList, nil).Err(); err != nil {
		return nil, err
	}
	f, err := validation.InvoiceList(raw)
	if err != nil {
		return nil, err
	}
	empty := &dto.InvoiceListResponse{
		Items: []dto.InvoiceResponse{},
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	staff, err := uc.repos.Staff.GetByEmail(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		uc.log.Warn().Str("account_id", actor.AccountID).Msg("empleado no resuelto, listado de facturas vacío")
		return empty, nil
	}
	branch, err := uc.repos.Branches.GetByID(ctx, staff.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		uc.log.Warn().Str("staff_id", staff.ID).Msg("sucursal no resuelta, listado de facturas vacío")
		return empty, nil
	}
	list, err := uc.repos.Invoices.ListByBranch(ctx, branch.ID, repository.InvoiceFilter{
		Status: entity.InvoiceStatus(f.Status),
		Type:   entity.InvoiceType(f.Type),
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		if inv.ItemsUnreadable {
			uc.log.Warn().Str("invoice_id", inv.ID).Msg("ítems de factura ilegibles")
		}
		empty.Items = append(empty.Items, *toInvoiceResponse(inv))
	}
	return empty, nil
}

// Get obtiene una factura de la sucursal del actor.
func (uc *InvoiceUseCase) Get(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.InvoiceResponse, error) {
	if err := actor.Can(authz.InvoiceRead, nil).Err(); err != nil {
		return nil, err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, err
	}
	inv, err := loadInvoice(ctx, uc.repos.Invoices.GetByID, actor, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}
