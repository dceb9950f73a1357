package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/models"
)

type roleRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Permissions *[]string `json:"permissions"`
}

type grantPermissionRequest struct {
	Permission string `json:"permission"`
}

type permissionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// HandleListRolesGin handles GET /api/roles
func (s *Server) HandleListRolesGin(c *gin.Context) {
	roles, err := s.Roles.ListRoles(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromRoles(roles)})
}

// HandleGetRoleGin handles GET /api/roles/:roleId
func (s *Server) HandleGetRoleGin(c *gin.Context) {
	role, err := s.Roles.GetRole(c.Request.Context(), c.Param("roleId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRole(*role))
}

// HandleCreateRoleGin handles POST /api/roles
func (s *Server) HandleCreateRoleGin(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		badRequest(c, "name is required")
		return
	}
	in := models.Role{Name: *req.Name, Description: req.Description}
	if req.Permissions != nil {
		in.Permissions = *req.Permissions
	}
	role, err := s.Roles.CreateRole(c.Request.Context(), in, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("role_id", role.ID).Info("role created")
	c.JSON(http.StatusCreated, dto.FromRole(*role))
}

// HandleUpdateRoleGin handles PUT /api/roles/:roleId. A permissions list
// replaces the role's grants; omitting it leaves them alone.
func (s *Server) HandleUpdateRoleGin(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	var perms []string
	if req.Permissions != nil {
		perms = append([]string{}, *req.Permissions...)
	}
	role, err := s.Roles.UpdateRole(c.Request.Context(), c.Param("roleId"), req.Name, req.Description, perms, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRole(*role))
}

// HandleDeleteRoleGin handles DELETE /api/roles/:roleId
func (s *Server) HandleDeleteRoleGin(c *gin.Context) {
	if err := s.Roles.DeleteRole(c.Request.Context(), c.Param("roleId")); err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("role_id", c.Param("roleId")).Info("role deleted")
	c.Status(http.StatusNoContent)
}

// HandleGrantPermissionGin handles POST /api/roles/:roleId/permissions
func (s *Server) HandleGrantPermissionGin(c *gin.Context) {
	var req grantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Permission == "" {
		badRequest(c, "permission is required")
		return
	}
	ctx := c.Request.Context()
	if err := s.Roles.GrantPermission(ctx, c.Param("roleId"), req.Permission, GetUserIDFromContext(c)); err != nil {
		s.respondError(c, err)
		return
	}
	role, err := s.Roles.GetRole(ctx, c.Param("roleId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRole(*role))
}

// HandleRevokePermissionGin handles DELETE /api/roles/:roleId/permissions/:permission
func (s *Server) HandleRevokePermissionGin(c *gin.Context) {
	if err := s.Roles.RevokePermission(c.Request.Context(), c.Param("roleId"), c.Param("permission")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListPermissionsGin handles GET /api/permissions
func (s *Server) HandleListPermissionsGin(c *gin.Context) {
	perms, err := s.Permissions.ListPermissions(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromPermissions(perms)})
}

// HandleCreatePermissionGin handles POST /api/permissions
func (s *Server) HandleCreatePermissionGin(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		badRequest(c, "name is required")
		return
	}
	perm, err := s.Permissions.CreatePermission(c.Request.Context(), req.Name, req.Description, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromPermissions([]models.Permission{*perm})[0])
}
