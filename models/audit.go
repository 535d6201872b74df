package models

import (
	"encoding/json"
	"time"
)

// RoleAuditAction enumerates the mutations recorded in the audit trail.
type RoleAuditAction string

const (
	AuditRoleCreated        RoleAuditAction = "CREATED"
	AuditRoleUpdated        RoleAuditAction = "UPDATED"
	AuditPermissionsChanged RoleAuditAction = "PERMISSIONS_CHANGED"
	AuditRoleActivated      RoleAuditAction = "ACTIVATED"
	AuditRoleDeactivated    RoleAuditAction = "DEACTIVATED"
	AuditRoleDeleted        RoleAuditAction = "DELETED"
	AuditAdminAssigned      RoleAuditAction = "ADMIN_ASSIGNED"
	AuditAdminUnassigned    RoleAuditAction = "ADMIN_UNASSIGNED"
)

// RoleAuditLog is one append-only audit trail entry. Snapshots and the field
// diff are stored as raw JSON bytes to avoid ORM map parsing issues.
// Entries are never updated or deleted by this service.
type RoleAuditLog struct {
	ID            string          `gorm:"column:id;primaryKey" json:"id"`
	RoleID        string          `gorm:"column:role_id;index" json:"role_id"`
	Action        RoleAuditAction `gorm:"column:action;index" json:"action"`
	PerformedByID string          `gorm:"column:performed_by_id;index" json:"performed_by_id"`
	PreviousState json.RawMessage `gorm:"column:previous_state" json:"previous_state,omitempty"`
	NewState      json.RawMessage `gorm:"column:new_state" json:"new_state,omitempty"`
	Changes       json.RawMessage `gorm:"column:changes" json:"changes,omitempty"`
	IPAddress     *string         `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent     *string         `gorm:"column:user_agent" json:"user_agent,omitempty"`
	Country       *string         `gorm:"column:country" json:"country,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;index" json:"created_at"`
}

func (RoleAuditLog) TableName() string { return "role_audit_logs" }
