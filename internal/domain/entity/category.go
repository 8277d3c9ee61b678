package entity

import "time"

// Category representa una categoría de productos de la sucursal.
type Category struct {
	ID          string
	BranchID    string
	Name        string
	Active      bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsDeleted indica si la categoría fue eliminada lógicamente.
func (c *Category) IsDeleted() bool { return c.DeletedAt != nil }
