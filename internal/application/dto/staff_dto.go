package dto

import "time"

// CreateStaffRequest body para POST /api/staff.
// BranchID vacío = sucursal del usuario autenticado.
type CreateStaffRequest struct {
	BranchID  string `json:"branch_id" validate:"omitempty,uuid"`
	FirstName string `json:"first_name" validate:"required,min=1,max=80"`
	LastName  string `json:"last_name" validate:"required,min=1,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=OWNER ADMIN MANAGER EMPLOYEE"`
	Active    bool   `json:"active"`
}

// UpdateStaffRequest body para PUT /api/staff/:id.
type UpdateStaffRequest struct {
	ID        string  `json:"id" validate:"required,uuid"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=80"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=80"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *string `json:"role" validate:"omitempty,oneof=OWNER ADMIN MANAGER EMPLOYEE"`
	Active    *bool   `json:"active"`
}

// StaffResponse empleado en respuestas.
type StaffResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
