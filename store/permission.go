package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/legit-games/admin-rbac/models"
)

// PermissionStore persists the registry projection.
type PermissionStore struct{ DB *gorm.DB }

func NewPermissionStore(db *gorm.DB) *PermissionStore { return &PermissionStore{DB: db} }

// UpsertPermission inserts or updates by (scope, key). Rows for keys that
// left the registry are kept; removal is an operator decision.
func (s *PermissionStore) UpsertPermission(ctx context.Context, rec *models.PermissionRecord) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PermissionRecord
		err := tx.Where("scope = ? AND key = ?", rec.Scope, rec.Key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(rec).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.PermissionRecord{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"display_name": rec.DisplayName,
				"description":  rec.Description,
				"category":     rec.Category,
				"sort_order":   rec.SortOrder,
				"updated_at":   time.Now().UTC(),
			}).Error
	})
}

func (s *PermissionStore) ListPermissions(ctx context.Context, scope models.RoleScope) ([]models.PermissionRecord, error) {
	var recs []models.PermissionRecord
	err := s.DB.WithContext(ctx).
		Where("scope = ?", scope).
		Order("category ASC, sort_order ASC, key ASC").
		Find(&recs).Error
	return recs, err
}
