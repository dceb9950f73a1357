package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/store"
)

type createUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	RoleIDs  []string `json:"role_ids"`
}

type assignRoleRequest struct {
	RoleID string `json:"role_id"`
}

// HandleListUsersGin handles GET /api/users
func (s *Server) HandleListUsersGin(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		roles, err := s.Roles.RolesForUser(ctx, users[i].ID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		out = append(out, dto.FromUser(&users[i], roles))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// HandleGetUserGin handles GET /api/users/:userId
func (s *Server) HandleGetUserGin(c *gin.Context) {
	s.respondUser(c, http.StatusOK, c.Param("userId"))
}

// HandleCreateUserGin handles POST /api/users
func (s *Server) HandleCreateUserGin(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || len(req.Password) < 8 {
		badRequest(c, "email and a password of at least 8 characters are required")
		return
	}
	user, err := s.Users.CreateUser(c.Request.Context(), store.NewUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleIDs:  req.RoleIDs,
	}, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("user_id", user.ID).Info("user created")
	s.respondUser(c, http.StatusCreated, user.ID)
}

// HandleDeleteUserGin handles DELETE /api/users/:userId. Immutable users answer 409.
func (s *Server) HandleDeleteUserGin(c *gin.Context) {
	if err := s.Users.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("user_id", c.Param("userId")).Info("user deleted")
	c.Status(http.StatusNoContent)
}

// HandleAssignRoleGin handles POST /api/users/:userId/roles
func (s *Server) HandleAssignRoleGin(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoleID == "" {
		badRequest(c, "role_id is required")
		return
	}
	if err := s.Users.AssignRole(c.Request.Context(), c.Param("userId"), req.RoleID, GetUserIDFromContext(c)); err != nil {
		s.respondError(c, err)
		return
	}
	s.respondUser(c, http.StatusOK, c.Param("userId"))
}

// HandleRevokeRoleGin handles DELETE /api/users/:userId/roles/:roleId
func (s *Server) HandleRevokeRoleGin(c *gin.Context) {
	if err := s.Users.RevokeRole(c.Request.Context(), c.Param("userId"), c.Param("roleId")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) respondUser(c *gin.Context, status int, userID string) {
	ctx := c.Request.Context()
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	roles, err := s.Roles.RolesForUser(ctx, user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(status, dto.FromUser(user, roles))
}
