package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agentdms/admin/permission"
)

// RequirePermission returns a middleware that checks the caller holds key
// before the handler runs. It must be mounted after TokenMiddleware.
func (s *Server) RequirePermission(key permission.Key) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := GetPrincipalFromContext(c)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if err := s.Authz.Authorize(c.Request.Context(), p, key); err != nil {
			s.Log.WithFields(logrus.Fields{
				"user_id":    p.UserID,
				"permission": string(key),
				"path":       c.FullPath(),
			}).Info("permission denied")
			s.respondError(c, err)
			return
		}
		c.Next()
	}
}
