package rbac

import (
	"context"

	"github.com/legit-games/admin-rbac/models"
)

// RoleStore is the persistence surface the engine needs for roles. Lookup
// methods return (nil, nil) when the record is absent.
type RoleStore interface {
	GetRole(ctx context.Context, id string) (*models.Role, error)
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	CreateRole(ctx context.Context, role *models.Role) error
	SaveRole(ctx context.Context, role *models.Role) error
	DeleteRole(ctx context.Context, id string) error
	ListRoles(ctx context.Context, scope models.RoleScope) ([]models.Role, error)
	SearchRoles(ctx context.Context, query string) ([]models.Role, error)
	// DetachChildren nulls parent_role_id on every child of the given role
	// and returns how many rows were touched.
	DetachChildren(ctx context.Context, parentID string) (int64, error)
}

// AdminStore is the principal directory surface.
type AdminStore interface {
	GetAdmin(ctx context.Context, id string) (*models.AdminUser, error)
	SetAdminRole(ctx context.Context, adminID string, roleID *string) error
	CountAdminsWithRole(ctx context.Context, roleID string) (int64, error)
	ListAdminsWithoutRole(ctx context.Context) ([]models.AdminUser, error)
}

// AuditFilter narrows and pages an audit trail query.
type AuditFilter struct {
	RoleID        string
	PerformedByID string
	Action        models.RoleAuditAction
	Limit         int
	Offset        int
}

// AuditStore is the append-only audit trail surface.
type AuditStore interface {
	AppendAuditLog(ctx context.Context, entry *models.RoleAuditLog) error
	// ListAuditLogs returns entries newest-first plus the unpaged total.
	ListAuditLogs(ctx context.Context, filter AuditFilter) ([]models.RoleAuditLog, int64, error)
}

// PermissionStore persists the registry projection.
type PermissionStore interface {
	UpsertPermission(ctx context.Context, rec *models.PermissionRecord) error
	ListPermissions(ctx context.Context, scope models.RoleScope) ([]models.PermissionRecord, error)
}

// Stores bundles the persistence surfaces. Transaction runs fn against
// transaction-scoped stores; every mutating engine operation spans its
// validation reads, its write and its audit write with one call.
type Stores interface {
	Roles() RoleStore
	Admins() AdminStore
	Audit() AuditStore
	Permissions() PermissionStore
	Transaction(ctx context.Context, fn func(tx Stores) error) error
}
