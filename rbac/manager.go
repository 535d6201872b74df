package rbac

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/permission"
)

// Manager owns every mutating role operation: lifecycle, assignment,
// seeding and migration. Each public operation runs as a single transaction
// spanning its validation reads, its write and its audit write.
type Manager struct {
	stores Stores
	cache  PermissionCache
	logger *log.Logger
	audit  auditRecorder
	now    func() time.Time
}

// NewManager creates a Manager. cache may be nil; logger defaults to the
// standard logger.
func NewManager(stores Stores, cache PermissionCache, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	now := func() time.Time { return time.Now().UTC() }
	return &Manager{
		stores: stores,
		cache:  cache,
		logger: logger,
		audit:  auditRecorder{logger: logger, now: now},
		now:    now,
	}
}

// CreateRoleInput carries the fields for a new role.
type CreateRoleInput struct {
	Name         string
	DisplayName  string
	Description  string
	Scope        models.RoleScope
	Permissions  []string
	ParentRoleID *string
	Priority     int
	Color        string
	Icon         string
}

// UpdateRoleInput carries a partial role update. Nil pointer fields are left
// untouched. SetParent distinguishes "leave the parent alone" from
// "replace the parent with ParentRoleID (possibly nil)".
type UpdateRoleInput struct {
	DisplayName  *string
	Description  *string
	Permissions  []string // nil = untouched; empty non-nil slice clears
	SetParent    bool
	ParentRoleID *string
	IsActive     *bool
	Priority     *int
	Color        *string
	Icon         *string
}

// filterPermissions validates keys against the scope registry. Unknown keys
// are dropped with a warning, never rejected wholesale.
func (m *Manager) filterPermissions(scope models.RoleScope, roleName string, keys []string) ([]string, error) {
	reg := permission.ForScope(scope)
	if reg == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	valid, dropped := reg.FilterValid(keys)
	if len(dropped) > 0 {
		m.logger.Printf("[registry] dropping unknown %s permission keys %v for role %s", scope, dropped, roleName)
	}
	return valid, nil
}

// CreateRole validates and persists a new role and writes a CREATED audit
// entry. Duplicate names and bad parents are conflicts; unknown permission
// keys are filtered, not fatal.
func (m *Manager) CreateRole(ctx context.Context, in CreateRoleInput, performedBy string, prov Provenance) (*models.Role, error) {
	return m.createRole(ctx, in, false, performedBy, prov)
}

func (m *Manager) createRole(ctx context.Context, in CreateRoleInput, isSystem bool, performedBy string, prov Provenance) (*models.Role, error) {
	if !in.Scope.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, in.Scope)
	}
	perms, err := m.filterPermissions(in.Scope, in.Name, in.Permissions)
	if err != nil {
		return nil, err
	}

	var created *models.Role
	err = m.stores.Transaction(ctx, func(tx Stores) error {
		existing, err := tx.Roles().GetRoleByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %q", ErrDuplicateRoleName, in.Name)
		}
		if in.ParentRoleID != nil {
			parent, err := tx.Roles().GetRole(ctx, *in.ParentRoleID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: parent role %s", ErrRoleNotFound, *in.ParentRoleID)
			}
			if parent.Scope != in.Scope {
				return fmt.Errorf("%w: parent %q is %s", ErrParentScopeMismatch, parent.Name, parent.Scope)
			}
		}
		role := &models.Role{
			ID:           models.NewID(),
			Name:         in.Name,
			DisplayName:  in.DisplayName,
			Description:  in.Description,
			Scope:        in.Scope,
			Permissions:  models.StringList(perms),
			ParentRoleID: in.ParentRoleID,
			Priority:     in.Priority,
			Color:        in.Color,
			Icon:         in.Icon,
			IsSystem:     isSystem,
			IsActive:     true,
			CreatedAt:    m.now(),
			UpdatedAt:    m.now(),
		}
		if performedBy != "" && performedBy != SystemPerformerID {
			by := performedBy
			role.CreatedByID = &by
		}
		if err := tx.Roles().CreateRole(ctx, role); err != nil {
			return err
		}
		entry := &models.RoleAuditLog{
			RoleID:        role.ID,
			Action:        models.AuditRoleCreated,
			PerformedByID: performedBy,
			NewState:      snapshotJSON(role),
		}
		prov.apply(entry)
		m.audit.record(ctx, tx, entry)
		created = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRole applies a partial update, guarding the hierarchy invariants.
// The parent chain is re-read live at check time so concurrent re-parenting
// can at worst reject an update, never admit a cycle.
func (m *Manager) UpdateRole(ctx context.Context, id string, in UpdateRoleInput, performedBy string, prov Provenance) (*models.Role, error) {
	var updated *models.Role
	err := m.stores.Transaction(ctx, func(tx Stores) error {
		role, err := tx.Roles().GetRole(ctx, id)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, id)
		}
		prev := *role
		changes := make(map[string]FieldChange)
		permsChanged := false

		if in.Permissions != nil {
			perms, err := m.filterPermissions(role.Scope, role.Name, in.Permissions)
			if err != nil {
				return err
			}
			if !equalStringSets(role.Permissions, perms) {
				changes["permissions"] = FieldChange{Old: []string(prev.Permissions), New: perms}
				role.Permissions = models.StringList(perms)
				permsChanged = true
			}
		}
		if in.SetParent {
			if role.IsSystem {
				return fmt.Errorf("%w: %s", ErrSystemRoleProtected, role.Name)
			}
			if in.ParentRoleID != nil {
				if *in.ParentRoleID == id {
					return ErrSelfParent
				}
				parent, err := tx.Roles().GetRole(ctx, *in.ParentRoleID)
				if err != nil {
					return err
				}
				if parent == nil {
					return fmt.Errorf("%w: parent role %s", ErrRoleNotFound, *in.ParentRoleID)
				}
				if parent.Scope != role.Scope {
					return fmt.Errorf("%w: parent %q is %s", ErrParentScopeMismatch, parent.Name, parent.Scope)
				}
				if err := checkAncestorChain(ctx, tx, id, *in.ParentRoleID); err != nil {
					return err
				}
			}
			if !equalStringPtr(role.ParentRoleID, in.ParentRoleID) {
				changes["parentRoleId"] = FieldChange{Old: strPtrValue(prev.ParentRoleID), New: strPtrValue(in.ParentRoleID)}
				role.ParentRoleID = in.ParentRoleID
			}
		}
		if in.DisplayName != nil && *in.DisplayName != role.DisplayName {
			changes["displayName"] = FieldChange{Old: prev.DisplayName, New: *in.DisplayName}
			role.DisplayName = *in.DisplayName
		}
		if in.Description != nil && *in.Description != role.Description {
			changes["description"] = FieldChange{Old: prev.Description, New: *in.Description}
			role.Description = *in.Description
		}
		if in.Priority != nil && *in.Priority != role.Priority {
			changes["priority"] = FieldChange{Old: prev.Priority, New: *in.Priority}
			role.Priority = *in.Priority
		}
		if in.Color != nil && *in.Color != role.Color {
			changes["color"] = FieldChange{Old: prev.Color, New: *in.Color}
			role.Color = *in.Color
		}
		if in.Icon != nil && *in.Icon != role.Icon {
			changes["icon"] = FieldChange{Old: prev.Icon, New: *in.Icon}
			role.Icon = *in.Icon
		}
		activeChanged := false
		if in.IsActive != nil && *in.IsActive != role.IsActive {
			changes["isActive"] = FieldChange{Old: prev.IsActive, New: *in.IsActive}
			role.IsActive = *in.IsActive
			activeChanged = true
		}

		role.UpdatedAt = m.now()
		if err := tx.Roles().SaveRole(ctx, role); err != nil {
			return err
		}

		// Most specific action wins: permission changes over activation
		// toggles over a generic update.
		action := models.AuditRoleUpdated
		switch {
		case permsChanged:
			action = models.AuditPermissionsChanged
		case activeChanged && role.IsActive:
			action = models.AuditRoleActivated
		case activeChanged && !role.IsActive:
			action = models.AuditRoleDeactivated
		}
		entry := &models.RoleAuditLog{
			RoleID:        role.ID,
			Action:        action,
			PerformedByID: performedBy,
			PreviousState: snapshotJSON(&prev),
			NewState:      snapshotJSON(role),
			Changes:       diffJSON(changes),
		}
		prov.apply(entry)
		m.audit.record(ctx, tx, entry)
		updated = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.invalidate(ctx, id)
	return updated, nil
}

// checkAncestorChain walks upward from candidateParent and rejects if
// roleID is reachable, or if the chain revisits any id (corrupted data), or
// if the walk exceeds the depth bound.
func checkAncestorChain(ctx context.Context, tx Stores, roleID, candidateParent string) error {
	seen := make(map[string]struct{})
	current := candidateParent
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if current == roleID {
			return ErrCycleDetected
		}
		if _, revisited := seen[current]; revisited {
			return ErrCycleDetected
		}
		seen[current] = struct{}{}
		ancestor, err := tx.Roles().GetRole(ctx, current)
		if err != nil {
			return err
		}
		if ancestor == nil || ancestor.ParentRoleID == nil {
			return nil
		}
		current = *ancestor.ParentRoleID
	}
	return ErrCycleDetected
}

// DeleteRole removes a custom, unassigned role. Children are detached (their
// parent pointer nulled), never cascade-deleted. Returns the pre-delete
// record.
func (m *Manager) DeleteRole(ctx context.Context, id string, performedBy string, prov Provenance) (*models.Role, error) {
	var deleted *models.Role
	err := m.stores.Transaction(ctx, func(tx Stores) error {
		role, err := tx.Roles().GetRole(ctx, id)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, id)
		}
		if role.IsSystem {
			return fmt.Errorf("%w: %q", ErrSystemRoleProtected, role.Name)
		}
		count, err := tx.Admins().CountAdminsWithRole(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d admin(s) hold %q", ErrRoleAssigned, count, role.Name)
		}
		if _, err := tx.Roles().DetachChildren(ctx, id); err != nil {
			return err
		}
		if err := tx.Roles().DeleteRole(ctx, id); err != nil {
			return err
		}
		entry := &models.RoleAuditLog{
			RoleID:        role.ID,
			Action:        models.AuditRoleDeleted,
			PerformedByID: performedBy,
			PreviousState: snapshotJSON(role),
		}
		prov.apply(entry)
		m.audit.record(ctx, tx, entry)
		deleted = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.invalidate(ctx, id)
	return deleted, nil
}

// CloneRole creates a custom copy of an existing role. The clone inherits
// scope, permissions, parent, color, icon and priority; it is never a system
// role regardless of the source.
func (m *Manager) CloneRole(ctx context.Context, sourceID, newName, newDisplayName, performedBy string, prov Provenance) (*models.Role, error) {
	source, err := m.stores.Roles().GetRole(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, sourceID)
	}
	return m.CreateRole(ctx, CreateRoleInput{
		Name:         newName,
		DisplayName:  newDisplayName,
		Description:  source.Description,
		Scope:        source.Scope,
		Permissions:  append([]string(nil), source.Permissions...),
		ParentRoleID: source.ParentRoleID,
		Priority:     source.Priority,
		Color:        source.Color,
		Icon:         source.Icon,
	}, performedBy, prov)
}

// GetRole loads a role by id.
func (m *Manager) GetRole(ctx context.Context, id string) (*models.Role, error) {
	role, err := m.stores.Roles().GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
	}
	return role, nil
}

// ListRoles lists roles for a scope.
func (m *Manager) ListRoles(ctx context.Context, scope models.RoleScope) ([]models.Role, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	return m.stores.Roles().ListRoles(ctx, scope)
}

// SearchRoles does a case-insensitive substring search over name, display
// name and description.
func (m *Manager) SearchRoles(ctx context.Context, query string) ([]models.Role, error) {
	return m.stores.Roles().SearchRoles(ctx, query)
}

// RoleNode is one node of the hierarchy tree.
type RoleNode struct {
	models.Role
	Children []*RoleNode `json:"children"`
}

// GetRoleHierarchy returns the scope's roles nested under their parents.
// Roots come first; siblings are ordered by priority descending, then
// display name ascending. Priority is display ordering only.
func (m *Manager) GetRoleHierarchy(ctx context.Context, scope models.RoleScope) ([]*RoleNode, error) {
	roles, err := m.ListRoles(ctx, scope)
	if err != nil {
		return nil, err
	}
	nodes := make(map[string]*RoleNode, len(roles))
	for i := range roles {
		nodes[roles[i].ID] = &RoleNode{Role: roles[i]}
	}
	var roots []*RoleNode
	for _, node := range nodes {
		if node.ParentRoleID != nil {
			if parent, ok := nodes[*node.ParentRoleID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	var sortNodes func(list []*RoleNode)
	sortNodes = func(list []*RoleNode) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Priority != list[j].Priority {
				return list[i].Priority > list[j].Priority
			}
			return list[i].DisplayName < list[j].DisplayName
		})
		for _, n := range list {
			sortNodes(n.Children)
		}
	}
	sortNodes(roots)
	return roots, nil
}

// SyncPermissionRegistry projects the compiled-in catalogs into the
// permissions table, upserting by (scope, key). Stale rows are never deleted
// automatically. Returns how many entries were synced.
func (m *Manager) SyncPermissionRegistry(ctx context.Context) (int, error) {
	synced := 0
	for _, scope := range []models.RoleScope{models.ScopePlatform, models.ScopeTenant} {
		reg := permission.ForScope(scope)
		for _, def := range reg.List() {
			rec := &models.PermissionRecord{
				ID:          models.NewID(),
				Key:         def.Key,
				Scope:       scope,
				DisplayName: def.DisplayName,
				Description: def.Description,
				Category:    def.Category,
				SortOrder:   def.SortOrder,
				CreatedAt:   m.now(),
				UpdatedAt:   m.now(),
			}
			if err := m.stores.Permissions().UpsertPermission(ctx, rec); err != nil {
				return synced, fmt.Errorf("sync permission %s/%s: %w", scope, def.Key, err)
			}
			synced++
		}
	}
	return synced, nil
}

func (m *Manager) invalidate(ctx context.Context, roleID string) {
	// Descendant roles inherit from this one; their cached sets age out via
	// TTL rather than being tracked here.
	if m.cache != nil {
		m.cache.Invalidate(ctx, roleID)
	}
}

func equalStringSets(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
