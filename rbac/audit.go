package rbac

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/legit-games/admin-rbac/models"
)

// Provenance carries the caller-supplied request context recorded verbatim
// into audit entries.
type Provenance struct {
	IPAddress *string
	UserAgent *string
	Country   *string
}

func (p Provenance) apply(e *models.RoleAuditLog) {
	e.IPAddress = p.IPAddress
	e.UserAgent = p.UserAgent
	e.Country = p.Country
}

// FieldChange is one entry of a structured audit diff. The diff is
// descriptive only, built from the freshly-read previous record, and is
// never the source of truth for what was persisted.
type FieldChange struct {
	Old interface{} `json:"old,omitempty"`
	New interface{} `json:"new,omitempty"`
}

func snapshotJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func diffJSON(changes map[string]FieldChange) json.RawMessage {
	if len(changes) == 0 {
		return nil
	}
	b, err := json.Marshal(changes)
	if err != nil {
		return nil
	}
	return b
}

// auditRecorder appends audit trail entries. Writes are best-effort: a
// failed audit write is logged and swallowed, never propagated, because
// losing an audit record is preferable to blocking administrative action.
type auditRecorder struct {
	logger *log.Logger
	now    func() time.Time
}

func (r *auditRecorder) record(ctx context.Context, tx Stores, entry *models.RoleAuditLog) {
	entry.ID = models.NewID()
	entry.CreatedAt = r.now()
	if err := tx.Audit().AppendAuditLog(ctx, entry); err != nil {
		r.logger.Printf("[audit] write failed for role=%s action=%s: %v", entry.RoleID, entry.Action, err)
	}
}

// GetRoleAuditLogs returns audit entries newest-first, filtered by role,
// performer or action, with the unpaged total for pagination.
func (m *Manager) GetRoleAuditLogs(ctx context.Context, filter AuditFilter) ([]models.RoleAuditLog, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return m.stores.Audit().ListAuditLogs(ctx, filter)
}
