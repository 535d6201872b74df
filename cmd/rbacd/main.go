package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/legit-games/admin-rbac/migrate"
	"github.com/legit-games/admin-rbac/rbac"
	"github.com/legit-games/admin-rbac/seed"
	"github.com/legit-games/admin-rbac/server"
	"github.com/legit-games/admin-rbac/store"
)

func main() {
	logger := log.New(os.Stderr, "[rbacd] ", log.LstdFlags)

	if err := migrate.RunFromEnv(); err != nil {
		logger.Fatalf("migrations: %v", err)
	}
	if err := seed.RunFromEnv(); err != nil {
		logger.Fatalf("seeds: %v", err)
	}

	cfg := server.GetConfig()
	dsn := cfg.DatabaseDSN()
	if dsn == "" {
		logger.Fatal("no database DSN configured (set RBAC_DATABASE__DSN or DATABASE_DSN)")
	}

	db, err := store.Open(dsn)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	stores := store.NewStores(db)

	var cache rbac.PermissionCache
	if cfg.Valkey.Addr != "" {
		ttl := time.Duration(cfg.Valkey.TTLSeconds) * time.Second
		vc, err := rbac.NewValkeyPermissionCache(cfg.Valkey.Addr, "rbac:", ttl)
		if err != nil {
			logger.Printf("valkey unavailable, running without permission cache: %v", err)
		} else {
			defer vc.Close()
			cache = vc
		}
	}

	manager := rbac.NewManager(stores, cache, logger)
	resolver := rbac.NewResolver(stores, cache)

	ctx := context.Background()
	if n, err := manager.SyncPermissionRegistry(ctx); err != nil {
		logger.Fatalf("permission registry sync: %v", err)
	} else {
		logger.Printf("permission registry synced, %d definitions", n)
	}
	if n, err := manager.EnsureDefaultRoles(ctx); err != nil {
		logger.Fatalf("default roles: %v", err)
	} else if n > 0 {
		logger.Printf("created %d default roles", n)
	}

	adminStore := store.NewAdminStore(db)
	if err := bootstrapAdminPassword(ctx, adminStore, logger); err != nil {
		logger.Fatalf("bootstrap admin: %v", err)
	}

	srv := server.New(cfg, manager, resolver, adminStore, logger)
	logger.Printf("listening on %s (env=%s)", cfg.Listen, cfg.Env)
	if err := srv.Router().Run(cfg.Listen); err != nil {
		logger.Fatal(err)
	}
}

// bootstrapAdminPassword sets the seeded root admin's password from
// BOOTSTRAP_ADMIN_PASSWORD if the account still has an empty hash. Skipped
// when the variable is unset so restarts never rotate credentials.
func bootstrapAdminPassword(ctx context.Context, admins *store.AdminStore, logger *log.Logger) error {
	password := strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"))
	if password == "" {
		return nil
	}
	email := strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))
	if email == "" {
		email = "root@legit.games"
	}
	admin, err := admins.GetAdminByEmail(ctx, email)
	if err != nil {
		return err
	}
	if admin == nil || admin.PasswordHash != "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := admins.SetAdminPassword(ctx, admin.ID, string(hash)); err != nil {
		return err
	}
	logger.Printf("bootstrap password set for %s", email)
	return nil
}
