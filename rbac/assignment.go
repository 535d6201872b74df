package rbac

import (
	"context"
	"fmt"

	"github.com/legit-games/admin-rbac/models"
)

// AssignRoleToAdmin binds a platform role to an admin, overwriting the
// single dynamic-role pointer. The previous binding is not kept on the admin
// record; the audit entry carries it instead.
func (m *Manager) AssignRoleToAdmin(ctx context.Context, adminID, roleID, performedBy string, prov Provenance) error {
	return m.stores.Transaction(ctx, func(tx Stores) error {
		admin, err := tx.Admins().GetAdmin(ctx, adminID)
		if err != nil {
			return err
		}
		if admin == nil {
			return fmt.Errorf("%w: %s", ErrAdminNotFound, adminID)
		}
		role, err := tx.Roles().GetRole(ctx, roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, roleID)
		}
		if role.Scope != models.ScopePlatform {
			return fmt.Errorf("%w: %q is %s", ErrScopeNotAssignable, role.Name, role.Scope)
		}
		previous := admin.AdminRoleID
		if err := tx.Admins().SetAdminRole(ctx, adminID, &roleID); err != nil {
			return err
		}
		entry := &models.RoleAuditLog{
			RoleID:        roleID,
			Action:        models.AuditAdminAssigned,
			PerformedByID: performedBy,
			Changes: diffJSON(map[string]FieldChange{
				"adminId":        {New: adminID},
				"previousRoleId": {Old: strPtrValue(previous)},
				"newRoleId":      {New: roleID},
			}),
		}
		prov.apply(entry)
		m.audit.record(ctx, tx, entry)
		return nil
	})
}

// RemoveRoleFromAdmin nulls the admin's dynamic-role pointer, dropping the
// principal back to legacy governance. No audit entry is written when there
// was no role to remove.
func (m *Manager) RemoveRoleFromAdmin(ctx context.Context, adminID, performedBy string, prov Provenance) error {
	return m.stores.Transaction(ctx, func(tx Stores) error {
		admin, err := tx.Admins().GetAdmin(ctx, adminID)
		if err != nil {
			return err
		}
		if admin == nil {
			return fmt.Errorf("%w: %s", ErrAdminNotFound, adminID)
		}
		previous := admin.AdminRoleID
		if err := tx.Admins().SetAdminRole(ctx, adminID, nil); err != nil {
			return err
		}
		if previous == nil {
			return nil
		}
		entry := &models.RoleAuditLog{
			RoleID:        *previous,
			Action:        models.AuditAdminUnassigned,
			PerformedByID: performedBy,
			Changes: diffJSON(map[string]FieldChange{
				"adminId":        {New: adminID},
				"previousRoleId": {Old: *previous},
				"newRoleId":      {},
			}),
		}
		prov.apply(entry)
		m.audit.record(ctx, tx, entry)
		return nil
	})
}
