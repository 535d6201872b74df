package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legit-games/admin-rbac/rbac"
)

// RequirePermission returns a middleware that checks the authenticated admin
// holds the given permission key before handler execution.
func (s *Server) RequirePermission(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := GetAdminIDFromContext(c)
		if adminID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "missing authenticated admin",
			})
			c.Abort()
			return
		}

		allowed, err := s.resolver.AdminHasPermission(c.Request.Context(), adminID, key)
		if err != nil {
			if rbac.IsNotFound(err) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":             "unauthorized",
					"error_description": "unknown admin",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			}
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":             "forbidden",
				"error_description": "missing permission: " + key,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
