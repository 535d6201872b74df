// Package permission holds the static permission catalogs. The two
// registries (platform, tenant) are compiled-in data: read-only at runtime,
// versioned, and projected into the store by an explicit sync step.
package permission

import (
	"sort"

	"github.com/legit-games/admin-rbac/models"
)

// CatalogVersion is bumped whenever a registry gains or changes entries.
const CatalogVersion = 1

// Scope-universal wildcards. Membership short-circuits every permission
// check within the matching scope.
const (
	WildcardPlatform = "super:*"
	WildcardTenant   = "admin:*"
)

// Definition is a single registry entry.
type Definition struct {
	Key         string
	DisplayName string
	Description string
	Category    string
	SortOrder   int
}

// Registry is the catalog for one scope. Keys are unique within a registry;
// the same key may exist in the other registry with a different meaning.
type Registry struct {
	scope models.RoleScope
	defs  []Definition
	byKey map[string]Definition
}

func newRegistry(scope models.RoleScope, defs []Definition) *Registry {
	byKey := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byKey[d.Key] = d
	}
	return &Registry{scope: scope, defs: defs, byKey: byKey}
}

var (
	platformRegistry = newRegistry(models.ScopePlatform, platformDefinitions)
	tenantRegistry   = newRegistry(models.ScopeTenant, tenantDefinitions)
)

// ForScope returns the registry for the given scope, or nil for an unknown
// scope value.
func ForScope(scope models.RoleScope) *Registry {
	switch scope {
	case models.ScopePlatform:
		return platformRegistry
	case models.ScopeTenant:
		return tenantRegistry
	default:
		return nil
	}
}

// Wildcard returns the scope's universal wildcard key.
func Wildcard(scope models.RoleScope) string {
	if scope == models.ScopeTenant {
		return WildcardTenant
	}
	return WildcardPlatform
}

// Scope returns the registry's scope.
func (r *Registry) Scope() models.RoleScope { return r.scope }

// List returns a copy of the catalog ordered by category, then sort order,
// then key.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// IsValidKey reports whether key exists in this registry.
func (r *Registry) IsValidKey(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Get returns the definition for key.
func (r *Registry) Get(key string) (Definition, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// FilterValid splits keys into those present in the registry and those that
// are unknown. Order is preserved and duplicates are collapsed. Unknown keys
// are dropped by callers with a warning, never rejected wholesale.
func (r *Registry) FilterValid(keys []string) (valid, dropped []string) {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		if r.IsValidKey(k) {
			valid = append(valid, k)
		} else {
			dropped = append(dropped, k)
		}
	}
	return valid, dropped
}
