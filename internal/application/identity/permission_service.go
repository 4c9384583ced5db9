package identity

import (
	"context"
	"sync"
	"time"

	domain "github.com/garment/backend/internal/domain/identity"
)

// permissionCacheTTL bounds how long a role's permission set may lag
// behind a role edit.
const permissionCacheTTL = 30 * time.Second

type cachedPermissions struct {
	names     map[string]struct{}
	fetchedAt time.Time
}

// PermissionService resolves role names to permission sets. Resolutions
// happen on every request, so the per-role set is cached briefly.
type PermissionService struct {
	roleRepo domain.RoleRepository

	mu    sync.RWMutex
	cache map[string]cachedPermissions
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(roleRepo domain.RoleRepository) *PermissionService {
	return &PermissionService{
		roleRepo: roleRepo,
		cache:    make(map[string]cachedPermissions),
	}
}

// Can reports whether the role grants the named permission. Unknown
// roles grant nothing. Store errors surface so callers can fail closed.
func (s *PermissionService) Can(ctx context.Context, roleName, permission string) (bool, error) {
	names, err := s.permissionSet(ctx, roleName)
	if err != nil {
		return false, err
	}
	_, ok := names[permission]
	return ok, nil
}

// PermissionNames returns the permission names granted to a role
func (s *PermissionService) PermissionNames(ctx context.Context, roleName string) ([]string, error) {
	names, err := s.permissionSet(ctx, roleName)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out, nil
}

func (s *PermissionService) permissionSet(ctx context.Context, roleName string) (map[string]struct{}, error) {
	s.mu.RLock()
	cached, ok := s.cache[roleName]
	s.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < permissionCacheTTL {
		return cached.names, nil
	}

	fetched, err := s.roleRepo.PermissionNames(ctx, roleName)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(fetched))
	for _, name := range fetched {
		names[name] = struct{}{}
	}

	s.mu.Lock()
	s.cache[roleName] = cachedPermissions{names: names, fetchedAt: time.Now()}
	s.mu.Unlock()

	return names, nil
}

// Invalidate drops a role's cached permission set after a role edit
func (s *PermissionService) Invalidate(roleName string) {
	s.mu.Lock()
	delete(s.cache, roleName)
	s.mu.Unlock()
}
