package dto

import "time"

// CreateBranchRequest body para POST /api/branches.
type CreateBranchRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=120"`
	CompanyCode string         `json:"company_code" validate:"omitempty,max=40"`
	Website     string         `json:"website" validate:"omitempty,url"`
	Attributes  map[string]any `json:"attributes"`
}

// UpdateBranchRequest body para PUT /api/branches/:id. Campos nil no se modifican.
type UpdateBranchRequest struct {
	ID          string         `json:"id" validate:"required,uuid"`
	Name        *string        `json:"name" validate:"omitempty,min=2,max=120"`
	CompanyCode *string        `json:"company_code" validate:"omitempty,max=40"`
	Website     *string        `json:"website" validate:"omitempty,url"`
	Attributes  map[string]any `json:"attributes"`
}

// BranchResponse sucursal en respuestas.
type BranchResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	CompanyCode string         `json:"company_code,omitempty"`
	Website     string         `json:"website,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BranchListResponse lista paginada de sucursales.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
