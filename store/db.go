package store

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/legit-games/admin-rbac/rbac"
)

// Open connects to Postgres with the quiet logger settings used everywhere
// in this service.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// Stores is the gorm-backed bundle of persistence surfaces.
type Stores struct {
	db *gorm.DB
}

func NewStores(db *gorm.DB) *Stores { return &Stores{db: db} }

func (s *Stores) Roles() rbac.RoleStore             { return NewRoleStore(s.db) }
func (s *Stores) Admins() rbac.AdminStore           { return NewAdminStore(s.db) }
func (s *Stores) Audit() rbac.AuditStore            { return NewAuditStore(s.db) }
func (s *Stores) Permissions() rbac.PermissionStore { return NewPermissionStore(s.db) }

// Transaction runs fn against transaction-scoped stores. Nested calls reuse
// gorm's savepoint handling.
func (s *Stores) Transaction(ctx context.Context, fn func(tx rbac.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}
