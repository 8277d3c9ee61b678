package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una sucursal.
// Stock se administra de forma independiente a la facturación (ver AdjustStock).
type Product struct {
	ID          string
	BranchID    string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64 // siempre >= 0
	Currency    string
	Colors      []string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsDeleted indica si el producto fue eliminado lógicamente.
func (p *Product) IsDeleted() bool { return p.DeletedAt != nil }
