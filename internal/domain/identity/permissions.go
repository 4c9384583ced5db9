package identity

import "strings"

// Named capabilities checked per route. Each listing/mutating endpoint
// resolves exactly one of these before reaching business logic.
const (
	PermVerCliente           = "VER_CLIENTE"
	PermEditarCliente        = "EDITAR_CLIENTE"
	PermVerEmpleado          = "VER_EMPLEADO"
	PermEditarEmpleado       = "EDITAR_EMPLEADO"
	PermVerProveedor         = "VER_PROVEEDOR"
	PermEditarProveedor      = "EDITAR_PROVEEDOR"
	PermVerConfeccionista    = "VER_CONFECCIONISTA"
	PermEditarConfeccionista = "EDITAR_CONFECCIONISTA"
	PermVerEmpacador         = "VER_EMPACADOR"
	PermEditarEmpacador      = "EDITAR_EMPACADOR"

	PermVerPedido    = "VER_PEDIDO"
	PermEditarPedido = "EDITAR_PEDIDO"

	PermVerInventario    = "VER_INVENTARIO"
	PermEditarInventario = "EDITAR_INVENTARIO"

	PermAdministrarRoles = "ADMINISTRAR_ROLES"
)

// ViewPermissionFor returns the view permission for a third-party type
// tag, empty for unknown tags.
func ViewPermissionFor(typeTag string) string {
	return typePermission("VER_", typeTag)
}

// EditPermissionFor returns the edit permission for a third-party type
// tag, empty for unknown tags.
func EditPermissionFor(typeTag string) string {
	return typePermission("EDITAR_", typeTag)
}

func typePermission(prefix, typeTag string) string {
	candidate := prefix + strings.ToUpper(strings.TrimSpace(typeTag))
	for _, known := range AllPermissions() {
		if candidate == known {
			return candidate
		}
	}
	return ""
}

// AllPermissions returns every known capability name, used by seeding
func AllPermissions() []string {
	return []string{
		PermVerCliente, PermEditarCliente,
		PermVerEmpleado, PermEditarEmpleado,
		PermVerProveedor, PermEditarProveedor,
		PermVerConfeccionista, PermEditarConfeccionista,
		PermVerEmpacador, PermEditarEmpacador,
		PermVerPedido, PermEditarPedido,
		PermVerInventario, PermEditarInventario,
		PermAdministrarRoles,
	}
}
