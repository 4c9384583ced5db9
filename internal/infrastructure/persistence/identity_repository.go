package persistence

import (
	"context"
	"errors"

	"github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByUsername finds a user by username, with the role and its
// permissions preloaded
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Role.Permissions").
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, classifyError(err)
	}
	return &user, nil
}

// FindByID finds a user by ID, with the role and its permissions preloaded
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Role.Permissions").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, classifyError(err)
	}
	return &user, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return classifyError(r.db.WithContext(ctx).Save(user).Error)
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByName finds a role by name, with permissions preloaded
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("name = ?", name).
		First(&role).Error; err != nil {
		return nil, classifyError(err)
	}
	return &role, nil
}

// PermissionNames returns the permission names granted to a role.
// Unknown roles yield an empty slice, not an error.
func (r *GormRoleRepository) PermissionNames(ctx context.Context, roleName string) ([]string, error) {
	role, err := r.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return role.PermissionNames(), nil
}

// Save creates or updates a role and replaces its permission associations
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Permissions").Save(role).Error; err != nil {
			return err
		}
		return tx.Model(role).Association("Permissions").Replace(role.Permissions)
	})
	return classifyError(err)
}

// SavePermission creates or updates a permission
func (r *GormRoleRepository) SavePermission(ctx context.Context, permission *identity.Permission) error {
	return classifyError(r.db.WithContext(ctx).Save(permission).Error)
}

// Ensure GormRoleRepository implements identity.RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)
