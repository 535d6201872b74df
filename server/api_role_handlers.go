package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/legit-games/admin-rbac/dto"
	"github.com/legit-games/admin-rbac/models"
	"github.com/legit-games/admin-rbac/permission"
	"github.com/legit-games/admin-rbac/rbac"
)

func statusFromError(err error) int {
	switch {
	case rbac.IsNotFound(err):
		return http.StatusNotFound
	case rbac.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c *gin.Context, err error) {
	status := statusFromError(err)
	body := gin.H{"error": "server_error"}
	switch status {
	case http.StatusNotFound:
		body = gin.H{"error": "not_found", "error_description": err.Error()}
	case http.StatusConflict:
		body = gin.H{"error": "conflict", "error_description": err.Error()}
	}
	c.JSON(status, body)
}

func scopeFromQuery(c *gin.Context) (models.RoleScope, bool) {
	v := strings.ToUpper(strings.TrimSpace(c.Query("scope")))
	if v == "" {
		return "", true
	}
	scope := models.RoleScope(v)
	if !scope.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "unknown scope"})
		return "", false
	}
	return scope, true
}

func (s *Server) handleListPermissions(c *gin.Context) {
	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}
	if scope == "" {
		scope = models.ScopePlatform
	}
	reg := permission.ForScope(scope)
	c.JSON(http.StatusOK, gin.H{"permissions": dto.FromDefinitions(scope, reg.List())})
}

func (s *Server) handleListRoles(c *gin.Context) {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		roles, err := s.manager.SearchRoles(c.Request.Context(), q)
		if err != nil {
			errorJSON(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"roles": roles})
		return
	}
	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}
	roles, err := s.manager.ListRoles(c.Request.Context(), scope)
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

func (s *Server) handleRoleHierarchy(c *gin.Context) {
	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}
	tree, err := s.manager.GetRoleHierarchy(c.Request.Context(), scope)
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": tree})
}

func (s *Server) handleGetRole(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	role, err := s.manager.GetRole(c.Request.Context(), id)
	if err != nil {
		errorJSON(c, err)
		return
	}
	effective, err := s.resolver.EffectivePermissions(c.Request.Context(), id)
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RoleDetailResponse{Role: *role, EffectivePermissions: effective})
}

func (s *Server) handleCreateRole(c *gin.Context) {
	var body struct {
		Name         string   `json:"name"`
		DisplayName  string   `json:"displayName"`
		Description  string   `json:"description"`
		Scope        string   `json:"scope"`
		Permissions  []string `json:"permissions"`
		ParentRoleID *string  `json:"parentRoleId"`
		Priority     int      `json:"priority"`
		Color        string   `json:"color"`
		Icon         string   `json:"icon"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "name is required"})
		return
	}
	scope := models.RoleScope(strings.ToUpper(strings.TrimSpace(body.Scope)))
	if !scope.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "unknown scope"})
		return
	}
	role, err := s.manager.CreateRole(c.Request.Context(), rbac.CreateRoleInput{
		Name:         strings.TrimSpace(body.Name),
		DisplayName:  body.DisplayName,
		Description:  body.Description,
		Scope:        scope,
		Permissions:  body.Permissions,
		ParentRoleID: body.ParentRoleID,
		Priority:     body.Priority,
		Color:        body.Color,
		Icon:         body.Icon,
	}, GetAdminIDFromContext(c), s.provenanceFrom(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (s *Server) handleUpdateRole(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var body struct {
		DisplayName  *string         `json:"displayName"`
		Description  *string         `json:"description"`
		Permissions  []string        `json:"permissions"`
		ParentRoleID json.RawMessage `json:"parentRoleId"`
		IsActive     *bool           `json:"isActive"`
		Priority     *int            `json:"priority"`
		Color        *string         `json:"color"`
		Icon         *string         `json:"icon"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	in := rbac.UpdateRoleInput{
		DisplayName: body.DisplayName,
		Description: body.Description,
		Permissions: body.Permissions,
		IsActive:    body.IsActive,
		Priority:    body.Priority,
		Color:       body.Color,
		Icon:        body.Icon,
	}
	// parentRoleId absent = untouched, null = detach, string = reparent.
	if len(body.ParentRoleID) > 0 {
		in.SetParent = true
		if string(body.ParentRoleID) != "null" {
			var parent string
			if err := json.Unmarshal(body.ParentRoleID, &parent); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "parentRoleId must be a string or null"})
				return
			}
			in.ParentRoleID = &parent
		}
	}
	role, err := s.manager.UpdateRole(c.Request.Context(), id, in, GetAdminIDFromContext(c), s.provenanceFrom(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (s *Server) handleDeleteRole(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	role, err := s.manager.DeleteRole(c.Request.Context(), id, GetAdminIDFromContext(c), s.provenanceFrom(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "deleted": role})
}

func (s *Server) handleCloneRole(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var body struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "name is required"})
		return
	}
	role, err := s.manager.CloneRole(c.Request.Context(), id, strings.TrimSpace(body.Name), body.DisplayName, GetAdminIDFromContext(c), s.provenanceFrom(c))
	if err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}
