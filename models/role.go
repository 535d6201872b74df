package models

import "time"

// RoleScope identifies the permission universe a role belongs to.
// Platform and tenant registries are disjoint namespaces: a key may repeat
// across scopes with a different meaning.
type RoleScope string

const (
	ScopePlatform RoleScope = "PLATFORM"
	ScopeTenant   RoleScope = "TENANT"
)

// Valid reports whether s is one of the two known scopes.
func (s RoleScope) Valid() bool { return s == ScopePlatform || s == ScopeTenant }

// Role represents a dynamic role with optional single-parent inheritance.
// Permissions holds only registry keys valid for the role's scope; unknown
// keys are filtered on write, never persisted.
type Role struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id"`
	Name         string     `gorm:"column:name;uniqueIndex" json:"name"`
	DisplayName  string     `gorm:"column:display_name" json:"display_name"`
	Description  string     `gorm:"column:description" json:"description"`
	Scope        RoleScope  `gorm:"column:scope;index" json:"scope"`
	Permissions  StringList `gorm:"column:permissions" json:"permissions"`
	ParentRoleID *string    `gorm:"column:parent_role_id;index" json:"parent_role_id,omitempty"`
	Priority     int        `gorm:"column:priority" json:"priority"`
	Color        string     `gorm:"column:color" json:"color"`
	Icon         string     `gorm:"column:icon" json:"icon"`
	IsSystem     bool       `gorm:"column:is_system" json:"is_system"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreatedByID  *string    `gorm:"column:created_by_id" json:"created_by_id,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }
