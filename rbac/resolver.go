package rbac

import (
	"context"
	"fmt"
	"sort"

	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/permission"
)

// maxHierarchyDepth bounds the upward parent walk. The acyclic invariant is
// enforced on every write, so this only matters if the stored graph has been
// corrupted outside the engine.
const maxHierarchyDepth = 32

// Resolver answers permission questions. All methods are pure reads; they
// may be served from a replica or the optional cache, and stale-by-seconds
// results are acceptable.
type Resolver struct {
	stores Stores
	cache  PermissionCache
}

// NewResolver creates a Resolver. cache may be nil, in which case every call
// walks the stored hierarchy directly.
func NewResolver(stores Stores, cache PermissionCache) *Resolver {
	return &Resolver{stores: stores, cache: cache}
}

// EffectivePermissions returns the union of the role's own permission keys
// and all ancestors' keys, sorted. An unknown role id yields an empty set,
// not an error.
func (r *Resolver) EffectivePermissions(ctx context.Context, roleID string) ([]string, error) {
	if r.cache != nil {
		if perms, ok := r.cache.Get(ctx, roleID); ok {
			return perms, nil
		}
	}
	set := make(map[string]struct{})
	seen := make(map[string]struct{})
	current := roleID
	for depth := 0; current != "" && depth < maxHierarchyDepth; depth++ {
		if _, revisited := seen[current]; revisited {
			break
		}
		seen[current] = struct{}{}
		role, err := r.stores.Roles().GetRole(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("resolve role %s: %w", current, err)
		}
		if role == nil {
			break
		}
		for _, key := range role.Permissions {
			set[key] = struct{}{}
		}
		if role.ParentRoleID == nil {
			break
		}
		current = *role.ParentRoleID
	}
	perms := make([]string, 0, len(set))
	for key := range set {
		perms = append(perms, key)
	}
	sort.Strings(perms)
	if r.cache != nil {
		r.cache.Set(ctx, roleID, perms)
	}
	return perms, nil
}

// RoleHasPermission reports whether the role's effective set contains key,
// or the scope's universal wildcard. An unknown role id is simply false.
func (r *Resolver) RoleHasPermission(ctx context.Context, roleID, key string) (bool, error) {
	role, err := r.stores.Roles().GetRole(ctx, roleID)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	effective, err := r.EffectivePermissions(ctx, roleID)
	if err != nil {
		return false, err
	}
	wildcard := permission.Wildcard(role.Scope)
	for _, p := range effective {
		if p == wildcard || p == key {
			return true, nil
		}
	}
	return false, nil
}

// governance is the resolution path for a principal. Exactly one variant
// applies: either the admin carries a dynamic role id, or the legacy flat
// enum governs.
type governance struct {
	dynamicRoleID string
	legacy        models.LegacyRole
}

func governanceFor(admin *models.AdminUser) governance {
	if admin.AdminRoleID != nil && *admin.AdminRoleID != "" {
		return governance{dynamicRoleID: *admin.AdminRoleID}
	}
	return governance{legacy: admin.LegacyRole}
}

// AdminHasPermission resolves a principal's permission check: dynamic role
// when one is bound, otherwise the legacy compatibility table.
func (r *Resolver) AdminHasPermission(ctx context.Context, adminID, key string) (bool, error) {
	admin, err := r.stores.Admins().GetAdmin(ctx, adminID)
	if err != nil {
		return false, err
	}
	if admin == nil {
		return false, ErrAdminNotFound
	}
	g := governanceFor(admin)
	if g.dynamicRoleID != "" {
		return r.RoleHasPermission(ctx, g.dynamicRoleID, key)
	}
	return LegacyRoleHasPermission(g.legacy, key), nil
}
