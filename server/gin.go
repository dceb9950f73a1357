package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/permission"
)

// NewGinEngine builds a Gin router and registers all API routes.
func NewGinEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(s.LoggingMiddleware())
	r.Use(s.Metrics.Middleware())

	r.GET("/", s.HandleIndexGin)
	r.GET("/health", s.HandleHealthGin)
	r.GET("/metrics", s.Metrics.Handler())

	// Public auth routes
	r.POST("/api/auth/login", s.HandleLoginGin)
	r.POST("/api/auth/forgot-password", s.HandleForgotPasswordGin)
	r.POST("/api/auth/reset-password", s.HandleResetPasswordGin)

	// Authenticated routes; TokenMiddleware loads the principal
	api := r.Group("/api")
	api.Use(s.TokenMiddleware())

	api.POST("/auth/logout", s.HandleLogoutGin)
	api.GET("/auth/me", s.HandleMeGin)

	view := s.RequirePermission(permission.DocumentView)
	edit := s.RequirePermission(permission.DocumentEdit)
	del := s.RequirePermission(permission.DocumentDelete)
	admin := s.RequirePermission(permission.WorkspaceAdmin)

	// Projects
	api.GET("/projects", view, s.HandleListProjectsGin)
	api.GET("/projects/:id", view, s.HandleGetProjectGin)
	api.POST("/projects", admin, s.HandleCreateProjectGin)
	api.POST("/projects/:id/clone", admin, s.HandleCloneProjectGin)
	api.PUT("/projects/:id", admin, s.HandleUpdateProjectGin)
	api.POST("/projects/:id/archive", admin, s.HandleArchiveProjectGin)
	api.DELETE("/projects/:id", admin, s.HandleDeleteProjectGin)

	// Custom fields
	api.GET("/projects/:id/fields", view, s.HandleListFieldsGin)
	api.POST("/projects/:id/fields", admin, s.HandleCreateFieldGin)
	api.PUT("/projects/:id/fields/order", admin, s.HandleReorderFieldsGin)
	api.PUT("/fields/:fieldId", admin, s.HandleUpdateFieldGin)
	api.DELETE("/fields/:fieldId", admin, s.HandleDeleteFieldGin)

	// Value restrictions
	api.GET("/fields/:fieldId/restrictions", admin, s.HandleListRestrictionsGin)
	api.POST("/fields/:fieldId/restrictions", admin, s.HandleCreateRestrictionGin)
	api.PUT("/fields/:fieldId/restrictions/:roleId", admin, s.HandleUpdateRestrictionGin)
	api.DELETE("/fields/:fieldId/restrictions/:roleId", admin, s.HandleDeleteRestrictionGin)

	// Documents
	api.GET("/projects/:id/documents", view, s.HandleListDocumentsGin)
	api.POST("/projects/:id/documents", edit, s.HandleCreateDocumentGin)
	api.GET("/documents/:docId", view, s.HandleGetDocumentGin)
	api.PUT("/documents/:docId/fields/:fieldId", edit, s.HandleSetDocumentFieldGin)
	api.PUT("/documents/:docId/pages/:page", edit, s.HandleUpsertDocumentPageGin)
	api.DELETE("/documents/:docId", del, s.HandleDeleteDocumentGin)

	// Roles and permissions
	api.GET("/roles", admin, s.HandleListRolesGin)
	api.POST("/roles", admin, s.HandleCreateRoleGin)
	api.GET("/roles/:roleId", admin, s.HandleGetRoleGin)
	api.PUT("/roles/:roleId", admin, s.HandleUpdateRoleGin)
	api.DELETE("/roles/:roleId", admin, s.HandleDeleteRoleGin)
	api.POST("/roles/:roleId/permissions", admin, s.HandleGrantPermissionGin)
	api.DELETE("/roles/:roleId/permissions/:permission", admin, s.HandleRevokePermissionGin)
	api.GET("/permissions", admin, s.HandleListPermissionsGin)
	api.POST("/permissions", admin, s.HandleCreatePermissionGin)

	// Users
	api.GET("/users", admin, s.HandleListUsersGin)
	api.POST("/users", admin, s.HandleCreateUserGin)
	api.GET("/users/:userId", admin, s.HandleGetUserGin)
	api.DELETE("/users/:userId", admin, s.HandleDeleteUserGin)
	api.POST("/users/:userId/roles", admin, s.HandleAssignRoleGin)
	api.DELETE("/users/:userId/roles/:roleId", admin, s.HandleRevokeRoleGin)

	return r
}

// HandleIndexGin describes the service.
func (s *Server) HandleIndexGin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": "agentdms-admin", "status": "ok"})
}

// HandleHealthGin reports liveness and database reachability.
func (s *Server) HandleHealthGin(c *gin.Context) {
	sqlDB, err := s.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		s.Log.WithError(err).Warn("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
}
