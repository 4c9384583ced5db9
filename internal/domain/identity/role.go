package identity

import (
	"strings"

	"github.com/garment/backend/internal/domain/shared"
)

// Well-known role names. ADMINISTRADOR and LIDER_DE_PROCESOS are special:
// the status-role policy grants them (almost) every workflow stage.
const (
	RoleAdministrador      = "ADMINISTRADOR"
	RoleLiderDeProcesos    = "LIDER_DE_PROCESOS"
	RoleAsesorComercial    = "ASESOR_COMERCIAL"
	RoleOperarioCorte      = "OPERARIO_CORTE"
	RoleOperarioConfeccion = "OPERARIO_CONFECCION"
	RoleOperarioEmpaque    = "OPERARIO_EMPAQUE"
	RoleOperarioDespacho   = "OPERARIO_DESPACHO"
)

// Permission is a named capability. The name is the sole check unit:
// there is no hierarchy and no resource/action decomposition.
type Permission struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission creates a named permission
func NewPermission(name, description string) (*Permission, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewValidationError("Permission name cannot be empty")
	}
	return &Permission{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Role groups permissions under a name. Users carry exactly one role.
type Role struct {
	shared.BaseEntity
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string       `gorm:"type:varchar(200)"`
	Permissions []Permission `gorm:"many2many:role_permissions"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a role with the given permissions
func NewRole(name, description string, permissions []Permission) (*Role, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewValidationError("Role name cannot be empty")
	}
	return &Role{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Permissions: permissions,
	}, nil
}

// HasPermission reports whether the role grants the named permission
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PermissionNames returns the names of all permissions the role grants
func (r *Role) PermissionNames() []string {
	names := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		names[i] = p.Name
	}
	return names
}
