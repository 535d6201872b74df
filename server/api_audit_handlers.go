package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/legit-games/admin-rbac/dto"
	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/rbac"
)

func (s *Server) handleListAuditLogs(c *gin.Context) {
	filter := rbac.AuditFilter{
		RoleID:        strings.TrimSpace(c.Query("roleId")),
		PerformedByID: strings.TrimSpace(c.Query("performedBy")),
	}
	if action := strings.ToUpper(strings.TrimSpace(c.Query("action"))); action != "" {
		filter.Action = models.RoleAuditAction(action)
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	entries, total, err := s.manager.GetRoleAuditLogs(c.Request.Context(), filter)
	if err != nil {
		errorJSON(c, err)
		return
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	c.JSON(http.StatusOK, dto.AuditPage{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}
