package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/legit-games/admin-rbac/models"
)

// RoleStore provides role persistence.
type RoleStore struct{ DB *gorm.DB }

func NewRoleStore(db *gorm.DB) *RoleStore { return &RoleStore{DB: db} }

func (s *RoleStore) GetRole(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleStore) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleStore) CreateRole(ctx context.Context, role *models.Role) error {
	return s.DB.WithContext(ctx).Create(role).Error
}

func (s *RoleStore) SaveRole(ctx context.Context, role *models.Role) error {
	return s.DB.WithContext(ctx).Save(role).Error
}

func (s *RoleStore) DeleteRole(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Role{}).Error
}

func (s *RoleStore) ListRoles(ctx context.Context, scope models.RoleScope) ([]models.Role, error) {
	var roles []models.Role
	err := s.DB.WithContext(ctx).
		Where("scope = ?", scope).
		Order("priority DESC, display_name ASC").
		Find(&roles).Error
	return roles, err
}

// SearchRoles does a case-insensitive substring match over name, display
// name and description.
func (s *RoleStore) SearchRoles(ctx context.Context, query string) ([]models.Role, error) {
	q := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var roles []models.Role
	err := s.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(description) LIKE ?", q, q, q).
		Order("priority DESC, display_name ASC").
		Find(&roles).Error
	return roles, err
}

func (s *RoleStore) DetachChildren(ctx context.Context, parentID string) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Role{}).
		Where("parent_role_id = ?", parentID).
		Update("parent_role_id", nil)
	return res.RowsAffected, res.Error
}
