package rbac

import (
	"context"
	"fmt"

	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/permission"
)

// legacyGrants is the fixed compatibility table for admins that predate
// dynamic roles: flat, pre-expanded permission lists, no inheritance.
var legacyGrants = map[models.LegacyRole][]string{
	models.LegacySuperAdmin: {permission.WildcardPlatform},
	models.LegacyAdmin:      platformAdminGrants,
	models.LegacySupport:    supportAgentGrants,
	models.LegacyAnalyst:    analystGrants,
}

// LegacyRoleHasPermission evaluates the compatibility table for a flat role
// value. The platform wildcard is honored first, then direct membership.
// Unknown legacy values grant nothing.
func LegacyRoleHasPermission(role models.LegacyRole, key string) bool {
	grants, ok := legacyGrants[role]
	if !ok {
		return false
	}
	for _, g := range grants {
		if g == permission.WildcardPlatform {
			return true
		}
	}
	for _, g := range grants {
		if g == key {
			return true
		}
	}
	return false
}

// MigrationReport summarizes a MigrateAdminsToNewRoleSystem run.
type MigrationReport struct {
	RolesCreated int      `json:"roles_created"`
	Assigned     int      `json:"assigned"`
	// Unmapped lists admins whose legacy role has no dynamic counterpart.
	// They are left untouched, never defaulted to a guess.
	Unmapped []string `json:"unmapped,omitempty"`
}

// MigrateAdminsToNewRoleSystem is the one-time backfill from the legacy flat
// enum to dynamic role references. It seeds the default roles if missing,
// then points every admin without a dynamic role at the role mapped from its
// legacy value. Safe to re-run: admins already carrying a role are skipped.
func (m *Manager) MigrateAdminsToNewRoleSystem(ctx context.Context, performedBy string) (*MigrationReport, error) {
	report := &MigrationReport{}

	created, err := m.EnsureDefaultRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensure default roles: %w", err)
	}
	report.RolesCreated = created

	roleIDByLegacy := make(map[models.LegacyRole]string, len(DefaultRoleNames))
	for legacy, name := range DefaultRoleNames {
		role, err := m.stores.Roles().GetRoleByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("lookup role %s: %w", name, err)
		}
		if role == nil {
			return nil, fmt.Errorf("%w: default role %s missing after seeding", ErrRoleNotFound, name)
		}
		roleIDByLegacy[legacy] = role.ID
	}

	admins, err := m.stores.Admins().ListAdminsWithoutRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unmigrated admins: %w", err)
	}
	for _, admin := range admins {
		roleID, ok := roleIDByLegacy[admin.LegacyRole]
		if !ok {
			report.Unmapped = append(report.Unmapped, admin.ID)
			continue
		}
		adminID := admin.ID
		err := m.stores.Transaction(ctx, func(tx Stores) error {
			if err := tx.Admins().SetAdminRole(ctx, adminID, &roleID); err != nil {
				return err
			}
			m.audit.record(ctx, tx, &models.RoleAuditLog{
				RoleID:        roleID,
				Action:        models.AuditAdminAssigned,
				PerformedByID: performedBy,
				Changes: diffJSON(map[string]FieldChange{
					"adminId":        {New: adminID},
					"previousRoleId": {},
					"newRoleId":      {New: roleID},
				}),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("migrate admin %s: %w", adminID, err)
		}
		report.Assigned++
	}
	return report, nil
}
