package entity

import (
	"strings"
	"time"
)

// Role es el rol de un empleado. Orden de jerarquía: OWNER > ADMIN > MANAGER > EMPLOYEE.
type Role string

// Roles válidos para Staff.
const (
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Roles devuelve todos los roles de mayor a menor jerarquía.
func Roles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleManager, RoleEmployee}
}

// Rank devuelve la jerarquía numérica del rol (0 si es desconocido).
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleEmployee:
		return 1
	default:
		return 0
	}
}

// Valid indica si el rol pertenece al enum.
func (r Role) Valid() bool { return r.Rank() > 0 }

// ParseRole normaliza un string ("admin", " Owner ") al enum. ok=false si no existe.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Staff representa un empleado (cuenta) de una sucursal.
type Staff struct {
	ID        string
	BranchID  string
	FirstName string
	LastName  string
	Email     string // único en todo el sistema
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// FullName nombre para mostrar.
func (s *Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsDeleted indica si el empleado fue eliminado lógicamente.
func (s *Staff) IsDeleted() bool { return s.DeletedAt != nil }
