package rbac

import "errors"

var (
	// ErrRoleNotFound is returned when a role id or name does not resolve.
	ErrRoleNotFound = errors.New("role not found")
	// ErrAdminNotFound is returned when an admin id does not resolve.
	ErrAdminNotFound = errors.New("admin not found")

	// ErrDuplicateRoleName is returned when creating a role whose name is taken.
	ErrDuplicateRoleName = errors.New("a role with this name already exists")
	// ErrSystemRoleProtected is returned when deleting or reparenting a
	// system role.
	ErrSystemRoleProtected = errors.New("system roles cannot be deleted or reparented")
	// ErrRoleAssigned is returned when deleting a role that admins still hold.
	ErrRoleAssigned = errors.New("role is still assigned to admins, reassign them first")
	// ErrSelfParent is returned when a role is set as its own parent.
	ErrSelfParent = errors.New("role cannot be its own parent")
	// ErrCycleDetected is returned when a parent change would close a cycle.
	ErrCycleDetected = errors.New("role hierarchy cycle detected")
	// ErrParentScopeMismatch is returned when a parent has a different scope.
	ErrParentScopeMismatch = errors.New("parent role must have the same scope")
	// ErrScopeNotAssignable is returned when binding a non-platform role to an
	// admin. Tenant roles are bound through tenant membership, not here.
	ErrScopeNotAssignable = errors.New("only platform-scoped roles can be assigned to admins")
	// ErrInvalidScope is returned for a scope value outside PLATFORM/TENANT.
	ErrInvalidScope = errors.New("unknown role scope")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound) || errors.Is(err, ErrAdminNotFound)
}

// IsConflict reports whether err is a rejected-operation conflict. Conflicts
// leave no partial write behind and are safe for the caller to surface as-is.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrDuplicateRoleName,
		ErrSystemRoleProtected,
		ErrRoleAssigned,
		ErrSelfParent,
		ErrCycleDetected,
		ErrParentScopeMismatch,
		ErrScopeNotAssignable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
