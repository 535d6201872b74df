package rbac

import (
	"context"
	"fmt"

	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/permission"
)

// Explicit grant lists shared between the default system roles and the
// legacy compatibility table, so both systems answer identically for the
// same rank of administrator.
var (
	platformAdminGrants = []string{
		"platform:settings:read",
		"platform:settings:manage",
		"organizations:read",
		"organizations:create",
		"organizations:update",
		"organizations:suspend",
		"admins:read",
		"admins:manage",
		"roles:read",
		"roles:manage",
		"billing:read",
		"support:tickets:read",
		"support:tickets:manage",
		"analytics:read",
		"audit:read",
	}
	supportAgentGrants = []string{
		"support:tickets:read",
		"support:tickets:manage",
		"organizations:read",
		"billing:read",
	}
	analystGrants = []string{
		"analytics:read",
		"analytics:export",
		"organizations:read",
	}

	orgAdminGrants = []string{
		"org:settings:read",
		"org:settings:manage",
		"org:billing:read",
		"members:read",
		"members:invite",
		"members:remove",
		"projects:read",
		"projects:create",
		"projects:update",
		"projects:delete",
		"agents:read",
		"agents:run",
		"agents:configure",
	}
	orgMemberGrants = []string{
		"org:settings:read",
		"members:read",
		"projects:read",
		"agents:read",
		"agents:run",
	}
)

// DefaultRoleNames maps each legacy flat role to the seeded dynamic role
// that replaces it in the migration.
var DefaultRoleNames = map[models.LegacyRole]string{
	models.LegacySuperAdmin: "super-admin",
	models.LegacyAdmin:      "platform-admin",
	models.LegacySupport:    "support-agent",
	models.LegacyAnalyst:    "analyst",
}

type defaultRole struct {
	Name        string
	DisplayName string
	Description string
	Scope       models.RoleScope
	Permissions []string
	Priority    int
	Color       string
	Icon        string
}

func defaultRoles() []defaultRole {
	return []defaultRole{
		{Name: "super-admin", DisplayName: "Super Admin", Description: "Full, unconditional platform access", Scope: models.ScopePlatform, Permissions: []string{permission.WildcardPlatform}, Priority: 100, Color: "#d33", Icon: "shield"},
		{Name: "platform-admin", DisplayName: "Platform Admin", Description: "Day-to-day platform administration", Scope: models.ScopePlatform, Permissions: platformAdminGrants, Priority: 90, Color: "#36c", Icon: "wrench"},
		{Name: "support-agent", DisplayName: "Support Agent", Description: "Tenant support and ticket handling", Scope: models.ScopePlatform, Permissions: supportAgentGrants, Priority: 50, Color: "#2a9", Icon: "lifebuoy"},
		{Name: "analyst", DisplayName: "Analyst", Description: "Read-only analytics access", Scope: models.ScopePlatform, Permissions: analystGrants, Priority: 40, Color: "#999", Icon: "chart"},

		{Name: "org-owner", DisplayName: "Organization Owner", Description: "Full, unconditional organization access", Scope: models.ScopeTenant, Permissions: []string{permission.WildcardTenant}, Priority: 100, Color: "#d33", Icon: "crown"},
		{Name: "org-admin", DisplayName: "Organization Admin", Description: "Organization administration", Scope: models.ScopeTenant, Permissions: orgAdminGrants, Priority: 90, Color: "#36c", Icon: "wrench"},
		{Name: "org-member", DisplayName: "Organization Member", Description: "Standard organization member", Scope: models.ScopeTenant, Permissions: orgMemberGrants, Priority: 10, Color: "#999", Icon: "user"},
	}
}

// SystemPerformerID marks audit entries written by bootstrap seeding rather
// than a human administrator.
const SystemPerformerID = "system"

// EnsureDefaultRoles seeds the system default roles, upserting by name.
// Idempotent: existing roles are left untouched, whatever their current
// permission set. Returns how many roles were created.
func (m *Manager) EnsureDefaultRoles(ctx context.Context) (int, error) {
	created := 0
	err := m.stores.Transaction(ctx, func(tx Stores) error {
		for _, d := range defaultRoles() {
			existing, err := tx.Roles().GetRoleByName(ctx, d.Name)
			if err != nil {
				return fmt.Errorf("lookup default role %s: %w", d.Name, err)
			}
			if existing != nil {
				continue
			}
			role := &models.Role{
				ID:          models.NewID(),
				Name:        d.Name,
				DisplayName: d.DisplayName,
				Description: d.Description,
				Scope:       d.Scope,
				Permissions: models.StringList(d.Permissions),
				Priority:    d.Priority,
				Color:       d.Color,
				Icon:        d.Icon,
				IsSystem:    true,
				IsActive:    true,
				CreatedAt:   m.now(),
				UpdatedAt:   m.now(),
			}
			if err := tx.Roles().CreateRole(ctx, role); err != nil {
				return fmt.Errorf("seed default role %s: %w", d.Name, err)
			}
			m.audit.record(ctx, tx, &models.RoleAuditLog{
				RoleID:        role.ID,
				Action:        models.AuditRoleCreated,
				PerformedByID: SystemPerformerID,
				NewState:      snapshotJSON(role),
			})
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
