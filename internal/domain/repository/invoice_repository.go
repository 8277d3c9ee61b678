package repository

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// InvoiceFilter filtros opcionales del listado de facturas.
type InvoiceFilter struct {
	Status entity.InvoiceStatus
	Type   entity.InvoiceType
	Limit  int
	Offset int
}

// InvoiceRepository define el puerto de persistencia para Invoice.
// Los ítems se (de)serializan dentro del adaptador; el dominio solo ve entity.InvoiceItems.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	SoftDelete(ctx context.Context, id string) error
	ListByBranch(ctx context.Context, branchID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// ListInRange facturas creadas en [from, to] sin soft delete; branchID vacío = todas.
	ListInRange(ctx context.Context, branchID string, from, to time.Time) ([]*entity.Invoice, error)
}
