package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAssignRole(c *gin.Context) {
	adminID := strings.TrimSpace(c.Param("id"))
	var body struct {
		RoleID string `json:"roleId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.RoleID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "roleId is required"})
		return
	}
	err := s.manager.AssignRoleToAdmin(c.Request.Context(), adminID, strings.TrimSpace(body.RoleID), GetAdminIDFromContext(c), s.provenanceFrom(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleUnassignRole(c *gin.Context) {
	adminID := strings.TrimSpace(c.Param("id"))
	err := s.manager.RemoveRoleFromAdmin(c.Request.Context(), adminID, GetAdminIDFromContext(c), s.provenanceFrom(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleCheckAdminPermission(c *gin.Context) {
	adminID := strings.TrimSpace(c.Param("id"))
	key := strings.TrimSpace(c.Param("key"))
	allowed, err := s.resolver.AdminHasPermission(c.Request.Context(), adminID, key)
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adminId": adminID, "permission": key, "allowed": allowed})
}

func (s *Server) handleMigrateAdmins(c *gin.Context) {
	report, err := s.manager.MigrateAdminsToNewRoleSystem(c.Request.Context(), GetAdminIDFromContext(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
