// Package authz concentra la política de autorización por rol: una sola tabla
// (acción → roles permitidos) más las reglas que dependen del empleado objetivo.
// Todos los casos de uso la consultan antes de validar o tocar la persistencia.
package authz

import (
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Action acción autorizable sobre una entidad.
type Action string

const (
	BranchCreate Action = "branch:create"
	BranchUpdate Action = "branch:update"
	BranchDelete Action = "branch:delete"
	BranchList   Action = "branch:list"
	BranchRead   Action = "branch:read"

	StaffCreate     Action = "staff:create"
	StaffUpdate     Action = "staff:update"
	StaffDelete     Action = "staff:delete"
	StaffDeactivate Action = "staff:deactivate"
	StaffList       Action = "staff:list"
	StaffRead       Action = "staff:read"

	CustomerCreate Action = "customer:create"
	CustomerUpdate Action = "customer:update"
	CustomerDelete Action = "customer:delete"
	CustomerList   Action = "customer:list"
	CustomerRead   Action = "customer:read"

	CategoryCreate Action = "category:create"
	CategoryUpdate Action = "category:update"
	CategoryDelete Action = "category:delete"
	CategoryList   Action = "category:list"
	CategoryRead   Action = "category:read"

	ProductCreate      Action = "product:create"
	ProductUpdate      Action = "product:update"
	ProductDelete      Action = "product:delete"
	ProductAdjustStock Action = "product:adjust_stock"
	ProductList        Action = "product:list"
	ProductRead        Action = "product:read"

	InvoiceCreate Action = "invoice:create"
	InvoiceUpdate Action = "invoice:update"
	InvoiceDelete Action = "invoice:delete"
	InvoiceList   Action = "invoice:list"
	InvoiceRead   Action = "invoice:read"

	ReportRead        Action = "report:read"
	ReportCrossBranch Action = "report:cross_branch"
)

var (
	everyone   = []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee}
	management = []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleManager}
	// invoicing es una lista separada y más estricta que management.
	invoicing = []entity.Role{entity.RoleOwner, entity.RoleAdmin}
	ownerOnly = []entity.Role{entity.RoleOwner}
)

// policy tabla central acción → roles permitidos. Una acción ausente se deniega.
var policy = map[Action][]entity.Role{
	BranchCreate: management,
	BranchUpdate: management,
	BranchDelete: management,
	BranchList:   everyone,
	BranchRead:   everyone,

	StaffCreate:     management,
	StaffUpdate:     management,
	StaffDelete:     management,
	StaffDeactivate: management,
	StaffList:       management,
	StaffRead:       management,

	CustomerCreate: everyone,
	CustomerUpdate: everyone,
	CustomerDelete: management,
	CustomerList:   everyone,
	CustomerRead:   everyone,

	CategoryCreate: management,
	CategoryUpdate: management,
	CategoryDelete: management,
	CategoryList:   everyone,
	CategoryRead:   everyone,

	ProductCreate:      management,
	ProductUpdate:      management,
	ProductDelete:      management,
	ProductAdjustStock: management,
	ProductList:        everyone,
	ProductRead:        everyone,

	InvoiceCreate: invoicing,
	InvoiceUpdate: invoicing,
	InvoiceDelete: invoicing,
	InvoiceList:   everyone,
	InvoiceRead:   everyone,

	ReportRead:        management,
	ReportCrossBranch: ownerOnly,
}

// Target datos del recurso objetivo que afectan la decisión (hoy: el empleado afectado).
type Target struct {
	StaffRole entity.Role // rol actual del empleado objetivo
	NewRole   entity.Role // rol solicitado en una actualización (vacío si no cambia)
}

// Decision resultado explícito: Allowed o Denied(reason).
type Decision struct {
	Allowed bool
	Cause   string
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string, args ...any) Decision {
	return Decision{Cause: domain.CauseNotAllowed, Reason: fmt.Sprintf(reason, args...)}
}

// Err convierte una denegación en error de dominio (UNAUTHORIZED / NOT_ALLOWED); nil si está permitido.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.ErrNotAllowed.WithMessage("%s", d.Reason)
}

// Authorize decide si el rol actor puede ejecutar action sobre target (opcional).
func Authorize(actor entity.Role, action Action, target *Target) Decision {
	if !actor.Valid() {
		return deny("rol desconocido %q", actor)
	}
	allowed, ok := policy[action]
	if !ok {
		return deny("acción %q no registrada", action)
	}
	if !hasRole(allowed, actor) {
		return deny("el rol %s no puede ejecutar %s", actor, action)
	}
	if target == nil {
		return allow()
	}
	return checkTarget(actor, action, *target)
}

// Can atajo booleano de Authorize.
func Can(actor entity.Role, action Action, target *Target) bool {
	return Authorize(actor, action, target).Allowed
}

func checkTarget(actor entity.Role, action Action, t Target) Decision {
	switch action {
	case StaffDelete, StaffDeactivate:
		if t.StaffRole == entity.RoleOwner {
			return deny("un OWNER no puede ser eliminado ni desactivado")
		}
		if t.StaffRole == entity.RoleAdmin && actor != entity.RoleOwner {
			return deny("solo un OWNER puede eliminar o desactivar a un ADMIN")
		}
	case StaffUpdate, StaffCreate:
		if t.StaffRole == entity.RoleOwner && actor != entity.RoleOwner {
			return deny("solo un OWNER puede modificar a otro OWNER")
		}
		// cambiar el rol abriría la puerta a eliminarlo después
		if t.StaffRole == entity.RoleOwner && t.NewRole != "" {
			return deny("el rol de un OWNER no se puede cambiar")
		}
		if t.StaffRole == entity.RoleAdmin && actor != entity.RoleOwner {
			return deny("solo un OWNER puede modificar a un ADMIN")
		}
		if t.NewRole != "" && t.NewRole.Rank() > actor.Rank() {
			return deny("no se puede asignar un rol superior al propio (%s)", t.NewRole)
		}
	}
	return allow()
}

func hasRole(roles []entity.Role, r entity.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
