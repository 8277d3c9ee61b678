package entity

import (
	"encoding/json"
	"time"
)

// Branch representa una sucursal: es el límite de tenant del sistema.
// Empleados, clientes, productos, categorías y facturas pertenecen a exactamente una sucursal.
type Branch struct {
	ID          string
	Name        string
	CompanyCode string          // registro mercantil (opcional)
	Website     string          // opcional
	Attributes  json.RawMessage // mapa libre de atributos
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // soft delete
}

// IsDeleted indica si la sucursal fue eliminada lógicamente.
func (b *Branch) IsDeleted() bool { return b.DeletedAt != nil }
