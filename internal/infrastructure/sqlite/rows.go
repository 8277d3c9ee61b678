package sqlite

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/codec"
)

// Filas tal como las guarda SQLite; los repositorios convierten a entidades.

type branchRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	CompanyCode string `db:"company_code"`
	Website     string `db:"website"`
	Attributes  string `db:"attributes"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
	DeletedAt   *int64 `db:"deleted_at"`
}

func (r branchRow) entity() *entity.Branch {
	b := &entity.Branch{
		ID:          r.ID,
		Name:        r.Name,
		CompanyCode: r.CompanyCode,
		Website:     r.Website,
		CreatedAt:   fromNanos(r.CreatedAt),
		UpdatedAt:   fromNanos(r.UpdatedAt),
		DeletedAt:   fromNullNanos(r.DeletedAt),
	}
	if r.Attributes != "" {
		b.Attributes = json.RawMessage(r.Attributes)
	}
	return b
}

type staffRow struct {
	ID        string `db:"id"`
	BranchID  string `db:"branch_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Role      string `db:"role"`
	Active    bool   `db:"active"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

func (r staffRow) entity() *entity.Staff {
	return &entity.Staff{
		ID:        r.ID,
		BranchID:  r.BranchID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      entity.Role(r.Role),
		Active:    r.Active,
		CreatedAt: fromNanos(r.CreatedAt),
		UpdatedAt: fromNanos(r.UpdatedAt),
		DeletedAt: fromNullNanos(r.DeletedAt),
	}
}

type customerRow struct {
	ID        string `db:"id"`
	BranchID  string `db:"branch_id"`
	Code      string `db:"code"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

func (r customerRow) entity() *entity.Customer {
	return &entity.Customer{
		ID:        r.ID,
		BranchID:  r.BranchID,
		Code:      r.Code,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: fromNanos(r.CreatedAt),
		UpdatedAt: fromNanos(r.UpdatedAt),
		DeletedAt: fromNullNanos(r.DeletedAt),
	}
}

type categoryRow struct {
	ID          string `db:"id"`
	BranchID    string `db:"branch_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Active      bool   `db:"active"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
	DeletedAt   *int64 `db:"deleted_at"`
}

func (r categoryRow) entity() *entity.Category {
	return &entity.Category{
		ID:          r.ID,
		BranchID:    r.BranchID,
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
		CreatedAt:   fromNanos(r.CreatedAt),
		UpdatedAt:   fromNanos(r.UpdatedAt),
		DeletedAt:   fromNullNanos(r.DeletedAt),
	}
}

type productRow struct {
	ID          string          `db:"id"`
	BranchID    string          `db:"branch_id"`
	CategoryID  string          `db:"category_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int64           `db:"stock"`
	Currency    string          `db:"currency"`
	Colors      string          `db:"colors"`
	Available   bool            `db:"available"`
	CreatedAt   int64           `db:"created_at"`
	UpdatedAt   int64           `db:"updated_at"`
	DeletedAt   *int64          `db:"deleted_at"`
}

func (r productRow) entity() *entity.Product {
	p := &entity.Product{
		ID:          r.ID,
		BranchID:    r.BranchID,
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Currency:    r.Currency,
		Colors:      []string{},
		Available:   r.Available,
		CreatedAt:   fromNanos(r.CreatedAt),
		UpdatedAt:   fromNanos(r.UpdatedAt),
		DeletedAt:   fromNullNanos(r.DeletedAt),
	}
	if r.Colors != "" {
		_ = json.Unmarshal([]byte(r.Colors), &p.Colors)
	}
	return p
}

func colorsJSON(c []string) string {
	if c == nil {
		c = []string{}
	}
	b, _ := json.Marshal(c)
	return string(b)
}

type invoiceRow struct {
	ID         string          `db:"id"`
	BranchID   string          `db:"branch_id"`
	CustomerID *string         `db:"customer_id"`
	StaffID    *string         `db:"staff_id"`
	Type       string          `db:"type"`
	Status     string          `db:"status"`
	Items      string          `db:"items"`
	TotalItems int64           `db:"total_items"`
	TotalPrice decimal.Decimal `db:"total_price"`
	ExpiresAt  *int64          `db:"expires_at"`
	CreatedAt  int64           `db:"created_at"`
	UpdatedAt  int64           `db:"updated_at"`
	DeletedAt  *int64          `db:"deleted_at"`
}

func (r invoiceRow) entity() *entity.Invoice {
	inv := &entity.Invoice{
		ID:         r.ID,
		BranchID:   r.BranchID,
		Type:       entity.InvoiceType(r.Type),
		Status:     entity.InvoiceStatus(r.Status),
		TotalItems: r.TotalItems,
		TotalPrice: r.TotalPrice,
		ExpiresAt:  fromNullNanos(r.ExpiresAt),
		CreatedAt:  fromNanos(r.CreatedAt),
		UpdatedAt:  fromNanos(r.UpdatedAt),
		DeletedAt:  fromNullNanos(r.DeletedAt),
	}
	if r.CustomerID != nil {
		inv.CustomerID = *r.CustomerID
	}
	if r.StaffID != nil {
		inv.StaffID = *r.StaffID
	}
	codec.ApplyItems(inv, []byte(r.Items))
	return inv
}

type movementRow struct {
	ID         string `db:"id"`
	BranchID   string `db:"branch_id"`
	ProductID  string `db:"product_id"`
	StaffID    string `db:"staff_id"`
	Type       string `db:"type"`
	Delta      int64  `db:"delta"`
	StockAfter int64  `db:"stock_after"`
	Reason     string `db:"reason"`
	CreatedAt  int64  `db:"created_at"`
}

func (r movementRow) entity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:         r.ID,
		BranchID:   r.BranchID,
		ProductID:  r.ProductID,
		StaffID:    r.StaffID,
		Type:       r.Type,
		Delta:      r.Delta,
		StockAfter: r.StockAfter,
		Reason:     r.Reason,
		CreatedAt:  fromNanos(r.CreatedAt),
	}
}
