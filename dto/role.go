package dto

import (
	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/permission"
)

// RoleDetailResponse is a role plus its resolved effective permission set.
type RoleDetailResponse struct {
	models.Role
	EffectivePermissions []string `json:"effective_permissions"`
}

// PermissionResponse represents one registry entry in API responses.
type PermissionResponse struct {
	Key         string           `json:"key"`
	Scope       models.RoleScope `json:"scope"`
	DisplayName string           `json:"display_name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	SortOrder   int              `json:"sort_order"`
}

// FromDefinition converts a registry definition to a PermissionResponse.
func FromDefinition(scope models.RoleScope, d permission.Definition) PermissionResponse {
	return PermissionResponse{
		Key:         d.Key,
		Scope:       scope,
		DisplayName: d.DisplayName,
		Description: d.Description,
		Category:    d.Category,
		SortOrder:   d.SortOrder,
	}
}

// FromDefinitions converts a slice of registry definitions.
func FromDefinitions(scope models.RoleScope, defs []permission.Definition) []PermissionResponse {
	out := make([]PermissionResponse, len(defs))
	for i, d := range defs {
		out[i] = FromDefinition(scope, d)
	}
	return out
}
