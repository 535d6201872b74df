package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/legit-games/admin-rbac/models"
)

// AdminStore provides the administrator principal directory.
type AdminStore struct{ DB *gorm.DB }

func NewAdminStore(db *gorm.DB) *AdminStore { return &AdminStore{DB: db} }

func (s *AdminStore) GetAdmin(ctx context.Context, id string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminStore) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := s.DB.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminStore) CreateAdmin(ctx context.Context, admin *models.AdminUser) error {
	return s.DB.WithContext(ctx).Create(admin).Error
}

// SetAdminRole overwrites the single dynamic-role pointer; roleID nil clears
// it.
func (s *AdminStore) SetAdminRole(ctx context.Context, adminID string, roleID *string) error {
	return s.DB.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", adminID).
		Updates(map[string]interface{}{
			"admin_role_id": roleID,
			"updated_at":    time.Now().UTC(),
		}).Error
}

// SetAdminPassword replaces the stored bcrypt hash.
func (s *AdminStore) SetAdminPassword(ctx context.Context, adminID, passwordHash string) error {
	return s.DB.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", adminID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (s *AdminStore) CountAdminsWithRole(ctx context.Context, roleID string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("admin_role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

func (s *AdminStore) ListAdminsWithoutRole(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	err := s.DB.WithContext(ctx).
		Where("admin_role_id IS NULL").
		Order("created_at ASC").
		Find(&admins).Error
	return admins, err
}
