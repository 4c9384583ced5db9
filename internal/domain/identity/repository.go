package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByUsername finds a user by username, with the role preloaded
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID finds a user by ID, with the role preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// RoleRepository defines the interface for role/permission persistence
type RoleRepository interface {
	// FindByName finds a role by name, with permissions preloaded
	FindByName(ctx context.Context, name string) (*Role, error)

	// PermissionNames returns the permission names granted to a role.
	// Unknown roles yield an empty slice, not an error.
	PermissionNames(ctx context.Context, roleName string) ([]string, error)

	// Save creates or updates a role and its permission associations
	Save(ctx context.Context, role *Role) error

	// SavePermission creates or updates a permission
	SavePermission(ctx context.Context, permission *Permission) error
}
