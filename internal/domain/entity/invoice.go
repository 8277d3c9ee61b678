package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distingue ventas de compras.
type InvoiceType string

const (
	InvoiceTypeSale     InvoiceType = "sale"
	InvoiceTypePurchase InvoiceType = "purchase"
)

// Valid indica si el tipo pertenece al enum.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeSale || t == InvoiceTypePurchase
}

// InvoiceStatus estado del ciclo de vida de la factura.
//
//	draft → pending → paid
//	draft|pending → canceled
//
// paid y canceled son estados finales.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

// transitions aristas legales del ciclo de vida.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:   {InvoiceStatusPending, InvoiceStatusCanceled},
	InvoiceStatusPending: {InvoiceStatusPaid, InvoiceStatusCanceled},
}

// Valid indica si el estado pertenece al enum.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCanceled:
		return true
	}
	return false
}

// IsFinal indica si el estado ya no admite transiciones.
func (s InvoiceStatus) IsFinal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCanceled
}

// CanTransition indica si se puede pasar de s a next. Mantener el mismo estado
// no es una transición y siempre es válido.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Invoice representa una factura de venta o compra con sus líneas.
type Invoice struct {
	ID         string
	BranchID   string
	CustomerID string
	StaffID    string
	Type       InvoiceType
	Status     InvoiceStatus
	Items      InvoiceItems
	TotalItems int64
	TotalPrice decimal.Decimal
	ExpiresAt  *time.Time // opcional: vencimiento de la cotización o del pago
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	// ItemsUnreadable lo marca la capa de persistencia cuando la lista de ítems
	// almacenada no se pudo decodificar (filas legadas o corruptas).
	ItemsUnreadable bool
}

// IsDeleted indica si la factura fue eliminada lógicamente.
func (i *Invoice) IsDeleted() bool { return i.DeletedAt != nil }

// ApplyTotals recalcula TotalItems y TotalPrice a partir de Items.
func (i *Invoice) ApplyTotals() {
	i.TotalItems = i.Items.TotalItems()
	i.TotalPrice = i.Items.TotalPrice()
}

// ItemsTotal monto de la factura derivado de sus ítems (Σ precio × cantidad).
// Si los ítems almacenados son ilegibles se usa TotalItems como monto degradado,
// por compatibilidad con filas antiguas.
func (i *Invoice) ItemsTotal() decimal.Decimal {
	if i.ItemsUnreadable {
		return decimal.NewFromInt(i.TotalItems)
	}
	return i.Items.TotalPrice()
}
