package server

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/legit-games/admin-rbac/geoip"
	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/rbac"
)

// AdminDirectory is the lookup surface the login handler needs beyond what
// the engine stores expose.
type AdminDirectory interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// Server wires the role engine behind an HTTP API.
type Server struct {
	cfg      *AppConfig
	manager  *rbac.Manager
	resolver *rbac.Resolver
	admins   AdminDirectory
	geo      *geoip.Client
	logger   *log.Logger
}

func New(cfg *AppConfig, manager *rbac.Manager, resolver *rbac.Resolver, admins AdminDirectory, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:      cfg,
		manager:  manager,
		resolver: resolver,
		admins:   admins,
		geo:      geoip.NewClient(),
		logger:   logger,
	}
}

// Router builds the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(s.RequireAuth())

	authed.GET("/permissions", s.RequirePermission("roles:read"), s.handleListPermissions)

	authed.GET("/roles", s.RequirePermission("roles:read"), s.handleListRoles)
	authed.POST("/roles", s.RequirePermission("roles:manage"), s.handleCreateRole)
	authed.GET("/hierarchy", s.RequirePermission("roles:read"), s.handleRoleHierarchy)
	authed.GET("/roles/:id", s.RequirePermission("roles:read"), s.handleGetRole)
	authed.PATCH("/roles/:id", s.RequirePermission("roles:manage"), s.handleUpdateRole)
	authed.DELETE("/roles/:id", s.RequirePermission("roles:manage"), s.handleDeleteRole)
	authed.POST("/roles/:id/clone", s.RequirePermission("roles:manage"), s.handleCloneRole)

	authed.PUT("/admins/:id/role", s.RequirePermission("admins:manage"), s.handleAssignRole)
	authed.DELETE("/admins/:id/role", s.RequirePermission("admins:manage"), s.handleUnassignRole)
	authed.GET("/admins/:id/permissions/:key", s.RequirePermission("admins:read"), s.handleCheckAdminPermission)

	authed.GET("/audit", s.RequirePermission("audit:read"), s.handleListAuditLogs)
	authed.POST("/migrate-admins", s.RequirePermission("roles:manage"), s.handleMigrateAdmins)

	return r
}
