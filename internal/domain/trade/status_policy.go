package trade

import (
	"github.com/garment/backend/internal/domain/identity"
)

// statusRoles maps each workflow stage to the role names authorized to
// move an order into it. ADMINISTRADOR is appended to every stage and
// LIDER_DE_PROCESOS to every stage except CANCELADO, so the table lists
// only the stage-specific roles.
var statusRoles = map[OrderStatus][]string{
	StatusCreado:     {identity.RoleAsesorComercial},
	StatusCorte:      {identity.RoleOperarioCorte},
	StatusConfeccion: {identity.RoleOperarioConfeccion},
	StatusEmpaque:    {identity.RoleOperarioEmpaque},
	StatusDespacho:   {identity.RoleOperarioDespacho},
	StatusCompletado: {identity.RoleAsesorComercial},
	StatusCancelado:  {},
}

// rolesFor resolves the full authorized role set for a status
func rolesFor(status OrderStatus) []string {
	base, ok := statusRoles[status]
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(base)+2)
	roles = append(roles, base...)
	roles = append(roles, identity.RoleAdministrador)
	if status != StatusCancelado {
		roles = append(roles, identity.RoleLiderDeProcesos)
	}
	return roles
}

// AllowedStatuses returns every status the role may set. Unknown or
// empty roles get an empty set.
func AllowedStatuses(role string) []OrderStatus {
	if role == "" {
		return nil
	}
	var allowed []OrderStatus
	for _, status := range AllStatuses() {
		for _, r := range rolesFor(status) {
			if r == role {
				allowed = append(allowed, status)
				break
			}
		}
	}
	return allowed
}

// CanTransition reports whether the role may move an order into the
// target status. False for unknown roles and for statuses outside the
// closed enumeration.
func CanTransition(role string, target OrderStatus) bool {
	if role == "" {
		return false
	}
	for _, r := range rolesFor(target) {
		if r == role {
			return true
		}
	}
	return false
}
