package entity

import (
	"strings"
	"time"
)

// Customer representa un cliente de la sucursal.
type Customer struct {
	ID        string
	BranchID  string
	Code      string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// FullName nombre para mostrar en reportes y PDF.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsDeleted indica si el cliente fue eliminado lógicamente.
func (c *Customer) IsDeleted() bool { return c.DeletedAt != nil }
