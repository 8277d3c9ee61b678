package authz

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// Actor usuario autenticado, tal como lo entrega el proveedor de identidad.
type Actor struct {
	AccountID string
	Email     string
	Role      entity.Role
	BranchID  string
}

// Can atajo de Authorize con el rol del actor.
func (a Actor) Can(action Action, target *Target) Decision {
	return Authorize(a.Role, action, target)
}

// SeesBranch indica si el actor puede operar sobre recursos de branchID.
// OWNER administra todas las sucursales; el resto solo la propia.
func (a Actor) SeesBranch(branchID string) bool {
	if a.Role == entity.RoleOwner {
		return true
	}
	return branchID != "" && a.BranchID == branchID
}
