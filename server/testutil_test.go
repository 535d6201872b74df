package server

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/rbac"
)

// fakeStores is an in-memory rbac.Stores for handler tests. It doubles as
// the AdminDirectory for the login handler.
type fakeStores struct {
	roles  map[string]*models.Role
	admins map[string]*models.AdminUser
	audits []models.RoleAuditLog
	perms  map[string]*models.PermissionRecord
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		roles:  make(map[string]*models.Role),
		admins: make(map[string]*models.AdminUser),
		perms:  make(map[string]*models.PermissionRecord),
	}
}

func (s *fakeStores) Roles() rbac.RoleStore             { return (*fakeRoles)(s) }
func (s *fakeStores) Admins() rbac.AdminStore           { return (*fakeAdmins)(s) }
func (s *fakeStores) Audit() rbac.AuditStore            { return (*fakeAudit)(s) }
func (s *fakeStores) Permissions() rbac.PermissionStore { return (*fakePerms)(s) }

func (s *fakeStores) Transaction(ctx context.Context, fn func(tx rbac.Stores) error) error {
	return fn(s)
}

func (s *fakeStores) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	for _, admin := range s.admins {
		if strings.EqualFold(admin.Email, email) {
			cp := *admin
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeRoles fakeStores

func (s *fakeRoles) GetRole(ctx context.Context, id string) (*models.Role, error) {
	role, ok := s.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (s *fakeRoles) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	for _, role := range s.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeRoles) CreateRole(ctx context.Context, role *models.Role) error {
	cp := *role
	s.roles[cp.ID] = &cp
	return nil
}

func (s *fakeRoles) SaveRole(ctx context.Context, role *models.Role) error {
	cp := *role
	s.roles[cp.ID] = &cp
	return nil
}

func (s *fakeRoles) DeleteRole(ctx context.Context, id string) error {
	delete(s.roles, id)
	return nil
}

func (s *fakeRoles) ListRoles(ctx context.Context, scope models.RoleScope) ([]models.Role, error) {
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

func (s *fakeRoles) SearchRoles(ctx context.Context, query string) ([]models.Role, error) {
	q := strings.ToLower(query)
	var out []models.Role
	for _, role := range s.roles {
		if strings.Contains(strings.ToLower(role.Name), q) ||
			strings.Contains(strings.ToLower(role.DisplayName), q) ||
			strings.Contains(strings.ToLower(role.Description), q) {
			out = append(out, *role)
		}
	}
	return out, nil
}

func (s *fakeRoles) DetachChildren(ctx context.Context, parentID string) (int64, error) {
	var n int64
	for _, role := range s.roles {
		if role.ParentRoleID != nil && *role.ParentRoleID == parentID {
			role.ParentRoleID = nil
			n++
		}
	}
	return n, nil
}

type fakeAdmins fakeStores

func (s *fakeAdmins) GetAdmin(ctx context.Context, id string) (*models.AdminUser, error) {
	admin, ok := s.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *admin
	return &cp, nil
}

func (s *fakeAdmins) SetAdminRole(ctx context.Context, adminID string, roleID *string) error {
	if admin, ok := s.admins[adminID]; ok {
		admin.AdminRoleID = roleID
	}
	return nil
}

func (s *fakeAdmins) CountAdminsWithRole(ctx context.Context, roleID string) (int64, error) {
	var n int64
	for _, admin := range s.admins {
		if admin.AdminRoleID != nil && *admin.AdminRoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (s *fakeAdmins) ListAdminsWithoutRole(ctx context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	for _, admin := range s.admins {
		if admin.AdminRoleID == nil {
			out = append(out, *admin)
		}
	}
	return out, nil
}

type fakeAudit fakeStores

func (s *fakeAudit) AppendAuditLog(ctx context.Context, entry *models.RoleAuditLog) error {
	s.audits = append(s.audits, *entry)
	return nil
}

func (s *fakeAudit) ListAuditLogs(ctx context.Context, filter rbac.AuditFilter) ([]models.RoleAuditLog, int64, error) {
	var matched []models.RoleAuditLog
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
	if filter.Offset > 0 && filter.Offset < len(matched) {
		matched = matched[filter.Offset:]
	} else if filter.Offset >= len(matched) {
		matched = nil
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

type fakePerms fakeStores

func (s *fakePerms) UpsertPermission(ctx context.Context, rec *models.PermissionRecord) error {
	cp := *rec
	s.perms[string(rec.Scope)+"/"+rec.Key] = &cp
	return nil
}

func (s *fakePerms) ListPermissions(ctx context.Context, scope models.RoleScope) ([]models.PermissionRecord, error) {
	var out []models.PermissionRecord
	for _, rec := range s.perms {
		if rec.Scope == scope {
			out = append(out, *rec)
		}
	}
	return out, nil
}

const testPassword = "correct horse battery staple"

// testHarness bundles what handler tests need: the running test server, the
// backing fake stores and a token mint.
type testHarness struct {
	ts     *httptest.Server
	stores *fakeStores
	srv    *Server
	token  string // bearer token for the seeded super admin
}

func (h *testHarness) tokenFor(t *testing.T, adminID string) string {
	t.Helper()
	token, _, err := h.srv.IssueToken(adminID)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// addLimitedAdmin registers an admin governed by the legacy ANALYST table
// and returns a token for it.
func (h *testHarness) addLimitedAdmin(t *testing.T) string {
	t.Helper()
	admin := &models.AdminUser{
		ID:         models.NewID(),
		Email:      "analyst@legit.games",
		LegacyRole: models.LegacyAnalyst,
		IsActive:   true,
	}
	h.stores.admins[admin.ID] = admin
	return h.tokenFor(t, admin.ID)
}

// newTestServer builds a server over fake stores seeded with one super
// admin.
func newTestServer(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := newFakeStores()
	superRole := &models.Role{
		ID:          models.NewID(),
		Name:        "super-admin",
		DisplayName: "Super Admin",
		Scope:       models.ScopePlatform,
		Permissions: models.StringList{"super:*"},
		IsSystem:    true,
		IsActive:    true,
	}
	stores.roles[superRole.ID] = superRole

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	root := &models.AdminUser{
		ID:           models.NewID(),
		Email:        "root@legit.games",
		DisplayName:  "Root",
		PasswordHash: string(hash),
		LegacyRole:   models.LegacySuperAdmin,
		AdminRoleID:  &superRole.ID,
		IsActive:     true,
	}
	stores.admins[root.ID] = root

	logger := log.New(io.Discard, "", 0)
	cfg := &AppConfig{
		Env:    "test",
		Listen: ":0",
		Auth:   AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 5},
	}
	manager := rbac.NewManager(stores, nil, logger)
	resolver := rbac.NewResolver(stores, nil)
	srv := New(cfg, manager, resolver, stores, logger)
	srv.geo = nil // no outbound lookups from tests

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	token, _, err := srv.IssueToken(root.ID)
	if err != nil {
		t.Fatal(err)
	}
	return &testHarness{ts: ts, stores: stores, srv: srv, token: token}
}
