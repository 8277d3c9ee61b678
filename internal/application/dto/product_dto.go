package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock" validate:"gte=0"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	Colors      []string        `json:"colors" validate:"omitempty,dive,min=1,max=40"`
	Available   bool            `json:"available"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se ajusta aparte).
type UpdateProductRequest struct {
	ID          string           `json:"id" validate:"required,uuid"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" validate:"omitempty,len=3"`
	Colors      []string         `json:"colors" validate:"omitempty,dive,min=1,max=40"`
	Available   *bool            `json:"available"`
}

// AdjustStockRequest body para POST /api/products/:id/stock.
// Delta positivo = entrada, negativo = salida.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     int64  `json:"delta" validate:"ne=0,min=-1000000000,max=1000000000"`
	Reason    string `json:"reason" validate:"omitempty,max=200"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Currency    string          `json:"currency"`
	Colors      []string        `json:"colors"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockMovementResponse ajuste de stock registrado.
type StockMovementResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	StaffID    string    `json:"staff_id,omitempty"`
	Type       string    `json:"type"`
	Delta      int64     `json:"delta"`
	StockAfter int64     `json:"stock_after"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
