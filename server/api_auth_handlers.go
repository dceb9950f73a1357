package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/email"
	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/generates"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLoginGin exchanges email and password for an access token.
func (s *Server) HandleLoginGin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		badRequest(c, "email and password are required")
		return
	}
	ctx := c.Request.Context()
	user, err := s.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidCredentials) {
			s.Log.WithField("email", strings.ToLower(req.Email)).Info("login failed")
		}
		s.respondError(c, err)
		return
	}
	roles, err := s.Roles.RolesForUser(ctx, user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	profile := dto.FromUser(user, roles)
	roleIDs := make([]string, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	token, claims, err := s.Tokens.Token(generates.AccessSubject{
		UserID:      user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Roles:       roleIDs,
		Permissions: profile.Permissions,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("user_id", user.ID).Info("login succeeded")
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": claims.ExpiresAt.Time,
		"user":       profile,
	})
}

// HandleLogoutGin revokes the presented token until it would have expired.
func (s *Server) HandleLogoutGin(c *gin.Context) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		s.respondError(c, errors.ErrUnauthenticated)
		return
	}
	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.Revocations.RevokeToken(c.Request.Context(), claims.ID, expiresAt); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// HandleMeGin returns the caller with current roles and effective permissions.
func (s *Server) HandleMeGin(c *gin.Context) {
	p, err := GetPrincipalFromContext(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	user, err := s.Users.GetUser(c.Request.Context(), p.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user, p.Roles))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgotPasswordGin mails a reset token. The response is the same
// whether or not the email belongs to a user.
func (s *Server) HandleForgotPasswordGin(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		badRequest(c, "email is required")
		return
	}
	ctx := c.Request.Context()
	accepted := gin.H{"message": "if the account exists, a reset email has been sent"}
	user, err := s.Users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, errors.ErrNotFound) {
		c.JSON(http.StatusOK, accepted)
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	token, err := s.Resets.CreateResetToken(ctx, user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	cfg := s.Config.Email
	err = s.Mailer.SendPasswordReset(ctx, email.PasswordResetEmailData{
		To:           user.Email,
		Username:     user.Username,
		Token:        token,
		ResetLink:    email.ResetLink(cfg.ResetURL, token),
		ExpiresInMin: int(s.Resets.TTL.Minutes()),
		AppName:      cfg.AppName,
		SupportEmail: cfg.SupportEmail,
	})
	if err != nil {
		s.Log.WithError(err).WithField("user_id", user.ID).Error("failed to send password reset email")
	}
	c.JSON(http.StatusOK, accepted)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// HandleResetPasswordGin sets a new password using a reset token.
func (s *Server) HandleResetPasswordGin(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || len(req.Password) < 8 {
		badRequest(c, "token and a password of at least 8 characters are required")
		return
	}
	ctx := c.Request.Context()
	userID, err := s.Resets.ConsumeResetToken(ctx, req.Token)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.Users.SetPassword(ctx, userID, req.Password); err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("user_id", userID).Info("password reset")
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
