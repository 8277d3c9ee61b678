package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura. El precio lo fija el producto, no el cliente.
// Cantidad por línea y número de líneas acotados: Σ quantity nunca desborda int64.
type InvoiceItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// StaffID vacío = el empleado del usuario autenticado.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id" validate:"required,uuid"`
	StaffID    string               `json:"staff_id" validate:"omitempty,uuid"`
	Type       string               `json:"type" validate:"required,oneof=sale purchase"`
	Status     string               `json:"status" validate:"omitempty,oneof=draft pending paid"`
	Items      []InvoiceItemRequest `json:"items" validate:"required,min=1,max=1000,dive"`
	ExpiresAt  *time.Time           `json:"expires_at"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
type UpdateInvoiceRequest struct {
	ID         string               `json:"id" validate:"required,uuid"`
	CustomerID *string              `json:"customer_id" validate:"omitempty,uuid"`
	Status     *string              `json:"status" validate:"omitempty,oneof=draft pending paid canceled"`
	Items      []InvoiceItemRequest `json:"items" validate:"omitempty,min=1,max=1000,dive"`
	ExpiresAt  *time.Time           `json:"expires_at"`
}

// InvoiceFilter filtros opcionales de GET /api/invoices.
type InvoiceFilter struct {
	Status string `query:"status"`
	Type   string `query:"type"`
	PageRequest
}

// InvoiceItemResponse línea con el precio congelado al momento de facturar.
type InvoiceItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con sus líneas.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	BranchID        string                `json:"branch_id"`
	CustomerID      string                `json:"customer_id"`
	StaffID         string                `json:"staff_id"`
	Type            string                `json:"type"`
	Status          string                `json:"status"`
	Items           []InvoiceItemResponse `json:"items"`
	TotalItems      int64                 `json:"total_items"`
	TotalPrice      decimal.Decimal       `json:"total_price"`
	ItemsUnreadable bool                  `json:"items_unreadable,omitempty"`
	ExpiresAt       *time.Time            `json:"expires_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// InvoiceListResponse lista de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
