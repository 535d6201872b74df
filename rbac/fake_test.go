package rbac

import (
	"context"
	"sort"
	"strings"

	"github.com/legit-games/admin-rbac/models"
)

// memStores is an in-memory Stores implementation for engine tests. It is
// not transactional: Transaction just runs fn against the same maps, which
// is enough for single-goroutine tests that only assert on final state.
type memStores struct {
	roles       map[string]*models.Role
	admins      map[string]*models.AdminUser
	audits      []models.RoleAuditLog
	permissions map[string]*models.PermissionRecord

	auditErr error // injected failure for AppendAuditLog
}

func newMemStores() *memStores {
	return &memStores{
		roles:       make(map[string]*models.Role),
		admins:      make(map[string]*models.AdminUser),
		permissions: make(map[string]*models.PermissionRecord),
	}
}

func (s *memStores) Roles() RoleStore             { return (*memRoles)(s) }
func (s *memStores) Admins() AdminStore           { return (*memAdmins)(s) }
func (s *memStores) Audit() AuditStore            { return (*memAudit)(s) }
func (s *memStores) Permissions() PermissionStore { return (*memPermissions)(s) }

func (s *memStores) Transaction(ctx context.Context, fn func(tx Stores) error) error {
	return fn(s)
}

func (s *memStores) addRole(role *models.Role) *models.Role {
	if role.ID == "" {
		role.ID = models.NewID()
	}
	cp := *role
	s.roles[cp.ID] = &cp
	return &cp
}

func (s *memStores) addAdmin(admin *models.AdminUser) *models.AdminUser {
	if admin.ID == "" {
		admin.ID = models.NewID()
	}
	cp := *admin
	s.admins[cp.ID] = &cp
	return &cp
}

type memRoles memStores

func (s *memRoles) GetRole(ctx context.Context, id string) (*models.Role, error) {
	role, ok := s.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (s *memRoles) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	for _, role := range s.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memRoles) CreateRole(ctx context.Context, role *models.Role) error {
	cp := *role
	s.roles[cp.ID] = &cp
	return nil
}

func (s *memRoles) SaveRole(ctx context.Context, role *models.Role) error {
	cp := *role
	s.roles[cp.ID] = &cp
	return nil
}

func (s *memRoles) DeleteRole(ctx context.Context, id string) error {
	delete(s.roles, id)
	return nil
}

func (s *memRoles) ListRoles(ctx context.Context, scope models.RoleScope) ([]models.Role, error) {
	var out []models.Role
	for _, role := range s.roles {
		if scope == "" || role.Scope == scope {
			out = append(out, *role)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out, nil
}

func (s *memRoles) SearchRoles(ctx context.Context, query string) ([]models.Role, error) {
	q := strings.ToLower(query)
	var out []models.Role
	for _, role := range s.roles {
		if strings.Contains(strings.ToLower(role.Name), q) ||
			strings.Contains(strings.ToLower(role.DisplayName), q) ||
			strings.Contains(strings.ToLower(role.Description), q) {
			out = append(out, *role)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memRoles) DetachChildren(ctx context.Context, parentID string) (int64, error) {
	var n int64
	for _, role := range s.roles {
		if role.ParentRoleID != nil && *role.ParentRoleID == parentID {
			role.ParentRoleID = nil
			n++
		}
	}
	return n, nil
}

type memAdmins memStores

func (s *memAdmins) GetAdmin(ctx context.Context, id string) (*models.AdminUser, error) {
	admin, ok := s.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *admin
	return &cp, nil
}

func (s *memAdmins) SetAdminRole(ctx context.Context, adminID string, roleID *string) error {
	if admin, ok := s.admins[adminID]; ok {
		admin.AdminRoleID = roleID
	}
	return nil
}

func (s *memAdmins) CountAdminsWithRole(ctx context.Context, roleID string) (int64, error) {
	var n int64
	for _, admin := range s.admins {
		if admin.AdminRoleID != nil && *admin.AdminRoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (s *memAdmins) ListAdminsWithoutRole(ctx context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	for _, admin := range s.admins {
		if admin.AdminRoleID == nil {
			out = append(out, *admin)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type memAudit memStores

func (s *memAudit) AppendAuditLog(ctx context.Context, entry *models.RoleAuditLog) error {
	if s.auditErr != nil {
		return s.auditErr
	}
	s.audits = append(s.audits, *entry)
	return nil
}

func (s *memAudit) ListAuditLogs(ctx context.Context, filter AuditFilter) ([]models.RoleAuditLog, int64, error) {
	var matched []models.RoleAuditLog
	// Newest first.
	for i := len(s.audits) - 1; i >= 0; i-- {
		e := s.audits[i]
		if filter.RoleID != "" && e.RoleID != filter.RoleID {
			continue
		}
		if filter.PerformedByID != "" && e.PerformedByID != filter.PerformedByID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		matched = append(matched, e)
	}
	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

type memPermissions memStores

func (s *memPermissions) UpsertPermission(ctx context.Context, rec *models.PermissionRecord) error {
	key := string(rec.Scope) + "/" + rec.Key
	cp := *rec
	s.permissions[key] = &cp
	return nil
}

func (s *memPermissions) ListPermissions(ctx context.Context, scope models.RoleScope) ([]models.PermissionRecord, error) {
	var out []models.PermissionRecord
	for _, rec := range s.permissions {
		if rec.Scope == scope {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// auditEntriesFor filters the recorded trail by role id, oldest first.
func (s *memStores) auditEntriesFor(roleID string) []models.RoleAuditLog {
	var out []models.RoleAuditLog
	for _, e := range s.audits {
		if e.RoleID == roleID {
			out = append(out, e)
		}
	}
	return out
}
