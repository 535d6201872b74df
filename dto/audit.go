package dto

import "github.com/legit-games/admin-rbac/models"

// AuditPage is one page of audit trail entries, newest first.
type AuditPage struct {
	Entries []models.RoleAuditLog `json:"entries"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}
