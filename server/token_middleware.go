package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/generates"
	"github.com/agentdms/admin/permission"
)

const (
	ctxPrincipal = "principal"
	ctxClaims    = "token_claims"
	ctxUserID    = "user_id"
)

// TokenMiddleware validates the bearer token and loads the caller.
// The user and their roles are read from the database on every request, so
// role changes and deletions take effect without reissuing tokens.
func (s *Server) TokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			s.respondError(c, errors.ErrUnauthenticated)
			return
		}
		claims, err := s.Tokens.Parse(tokenString)
		if err != nil {
			s.respondError(c, err)
			return
		}
		revoked, err := s.Revocations.IsTokenRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if revoked {
			s.respondError(c, errors.ErrUnauthenticated)
			return
		}
		user, err := s.Users.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				err = errors.ErrUnauthenticated
			}
			s.respondError(c, err)
			return
		}
		roles, err := s.Roles.RolesForUser(c.Request.Context(), user.ID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.Set(ctxUserID, user.ID)
		c.Set(ctxClaims, claims)
		c.Set(ctxPrincipal, permission.Principal{UserID: user.ID, Email: user.Email, Roles: roles})
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// GetPrincipalFromContext returns the caller loaded by TokenMiddleware.
func GetPrincipalFromContext(c *gin.Context) (permission.Principal, error) {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return permission.Principal{}, fmt.Errorf("principal not found in context: %w", errors.ErrUnauthenticated)
	}
	p, ok := v.(permission.Principal)
	if !ok {
		return permission.Principal{}, fmt.Errorf("invalid principal in context: %w", errors.ErrUnauthenticated)
	}
	return p, nil
}

// GetUserIDFromContext extracts user_id from gin context
func GetUserIDFromContext(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func getClaimsFromContext(c *gin.Context) *generates.JWTAccessClaims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*generates.JWTAccessClaims)
	return claims
}
