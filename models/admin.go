package models

import "time"

// LegacyRole is the flat role enum admins carried before dynamic roles.
// Retained for backward compatibility: an admin without an AdminRoleID is
// governed by the legacy compatibility table for this value.
type LegacyRole string

const (
	LegacySuperAdmin LegacyRole = "SUPER_ADMIN"
	LegacyAdmin      LegacyRole = "ADMIN"
	LegacySupport    LegacyRole = "SUPPORT"
	LegacyAnalyst    LegacyRole = "ANALYST"
)

// AdminUser is an administrator principal. AdminRoleID is the single mutable
// dynamic-role pointer; at most one role is bound at a time.
type AdminUser struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id"`
	Email        string     `gorm:"column:email;uniqueIndex" json:"email"`
	DisplayName  string     `gorm:"column:display_name" json:"display_name"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	LegacyRole   LegacyRole `gorm:"column:legacy_role" json:"legacy_role"`
	AdminRoleID  *string    `gorm:"column:admin_role_id;index" json:"admin_role_id,omitempty"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (AdminUser) TableName() string { return "admin_users" }
