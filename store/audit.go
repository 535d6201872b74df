package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/rbac"
)

// AuditStore persists the append-only audit trail. Entries are never
// updated or deleted here.
type AuditStore struct{ DB *gorm.DB }

func NewAuditStore(db *gorm.DB) *AuditStore { return &AuditStore{DB: db} }

// AppendAuditLog writes inside a nested transaction so a failed insert only
// rolls back to its savepoint. Audit writes ride inside the mutating
// operation's transaction; on Postgres a statement error would otherwise
// abort the whole transaction and take the primary write down with it.
func (s *AuditStore) AppendAuditLog(ctx context.Context, entry *models.RoleAuditLog) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(entry).Error
	})
}

func (s *AuditStore) ListAuditLogs(ctx context.Context, filter rbac.AuditFilter) ([]models.RoleAuditLog, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.RoleAuditLog{})
	q = applyAuditFilter(q, filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.RoleAuditLog
	err := q.Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entries).Error
	return entries, total, err
}

func applyAuditFilter(q *gorm.DB, filter rbac.AuditFilter) *gorm.DB {
	if filter.RoleID != "" {
		q = q.Where("role_id = ?", filter.RoleID)
	}
	if filter.PerformedByID != "" {
		q = q.Where("performed_by_id = ?", filter.PerformedByID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	return q
}
