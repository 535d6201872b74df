package models

import "time"

// PermissionRecord is the persisted projection of a compiled-in registry
// entry, synced for introspection and UI listing. The registry itself is the
// source of truth; rows are upserted by (scope, key) and never auto-deleted.
type PermissionRecord struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Key         string    `gorm:"column:key;uniqueIndex:idx_permissions_scope_key" json:"key"`
	Scope       RoleScope `gorm:"column:scope;uniqueIndex:idx_permissions_scope_key" json:"scope"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	Description string    `gorm:"column:description" json:"description"`
	Category    string    `gorm:"column:category" json:"category"`
	SortOrder   int       `gorm:"column:sort_order" json:"sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PermissionRecord) TableName() string { return "permissions" }
