package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/store"
)

type restrictionRequest struct {
	RoleID      string   `json:"role_id"`
	Values      []string `json:"values"`
	IsAllowList bool     `json:"is_allow_list"`
	Version     *int     `json:"version"`
}

func (s *Server) HandleListRestrictionsGin(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := s.Fields.GetField(ctx, c.Param("fieldId")); err != nil {
		s.respondError(c, err)
		return
	}
	rows, err := s.Restrictions.ListForField(ctx, c.Param("fieldId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromRestrictions(rows)})
}

// HandleCreateRestrictionGin adds a role's value restriction to a field.
// A second restriction for the same role and field answers 409.
func (s *Server) HandleCreateRestrictionGin(c *gin.Context) {
	var req restrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoleID == "" {
		badRequest(c, "role_id is required")
		return
	}
	r, err := s.Restrictions.Create(c.Request.Context(), models.RoleFieldValueRestriction{
		RoleID:        req.RoleID,
		CustomFieldID: c.Param("fieldId"),
		Values:        models.NewStringSet(req.Values...),
		IsAllowList:   req.IsAllowList,
	}, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromRestriction(*r))
}

// HandleUpdateRestrictionGin replaces a restriction. When the body carries a
// version the update is rejected with 409 if another write happened first.
func (s *Server) HandleUpdateRestrictionGin(c *gin.Context) {
	var req restrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	r, err := s.Restrictions.Update(c.Request.Context(), c.Param("fieldId"), c.Param("roleId"), store.RestrictionUpdate{
		Values:      models.NewStringSet(req.Values...),
		IsAllowList: req.IsAllowList,
		Version:     req.Version,
	}, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRestriction(*r))
}

func (s *Server) HandleDeleteRestrictionGin(c *gin.Context) {
	if err := s.Restrictions.Delete(c.Request.Context(), c.Param("fieldId"), c.Param("roleId")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
