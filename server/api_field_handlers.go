package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/fields"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/store"
)

type createFieldRequest struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	FieldType       string    `json:"field_type"`
	IsRequired      bool      `json:"is_required"`
	DefaultValue    *string   `json:"default_value"`
	RoleVisibility  *[]string `json:"role_visibility"`
	UserListOptions []string  `json:"user_list_options"`
}

// updateFieldRequest keeps role_visibility raw so that an explicit null
// (clear) can be told apart from an absent key (unchanged).
type updateFieldRequest struct {
	Name            *string         `json:"name"`
	Description     *string         `json:"description"`
	IsRequired      *bool           `json:"is_required"`
	DefaultValue    *string         `json:"default_value"`
	RoleVisibility  json.RawMessage `json:"role_visibility"`
	UserListOptions *[]string       `json:"user_list_options"`
}

type reorderFieldsRequest struct {
	FieldIDs []string `json:"field_ids"`
}

// HandleListFieldsGin returns the project's fields the caller may see, in order.
func (s *Server) HandleListFieldsGin(c *gin.Context) {
	p, err := GetPrincipalFromContext(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := s.Projects.GetProject(ctx, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	list, err := s.Fields.ListByProject(ctx, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromFields(fields.FilterVisible(list, p.RoleSet()))})
}

func (s *Server) HandleCreateFieldGin(c *gin.Context) {
	var req createFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	f := models.CustomField{
		ProjectID:       c.Param("id"),
		Name:            req.Name,
		Description:     req.Description,
		FieldType:       models.FieldType(req.FieldType),
		IsRequired:      req.IsRequired,
		DefaultValue:    req.DefaultValue,
		UserListOptions: models.NewStringSet(req.UserListOptions...),
	}
	if req.RoleVisibility != nil {
		f.RoleVisibility = models.EncodeVisibility(models.NewStringSet(*req.RoleVisibility...))
	}
	created, err := s.Fields.CreateField(c.Request.Context(), f, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromField(*created))
}

func (s *Server) HandleUpdateFieldGin(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	in := store.FieldUpdate{
		Name:         req.Name,
		Description:  req.Description,
		IsRequired:   req.IsRequired,
		DefaultValue: req.DefaultValue,
	}
	switch raw := string(req.RoleVisibility); raw {
	case "":
	case "null":
		in.ClearVisibility = true
	default:
		var roles []string
		if err := json.Unmarshal(req.RoleVisibility, &roles); err != nil {
			badRequest(c, "role_visibility must be an array of role ids or null")
			return
		}
		set := models.NewStringSet(roles...)
		in.RoleVisibility = &set
	}
	if req.UserListOptions != nil {
		set := models.NewStringSet(*req.UserListOptions...)
		in.UserListOptions = &set
	}
	updated, err := s.Fields.UpdateField(c.Request.Context(), c.Param("fieldId"), in, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromField(*updated))
}

// HandleDeleteFieldGin removes a custom field. Non-removable fields answer 409.
func (s *Server) HandleDeleteFieldGin(c *gin.Context) {
	if err := s.Fields.DeleteField(c.Request.Context(), c.Param("fieldId")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) HandleReorderFieldsGin(c *gin.Context) {
	var req reorderFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.FieldIDs) == 0 {
		badRequest(c, "field_ids is required")
		return
	}
	list, err := s.Fields.Reorder(c.Request.Context(), c.Param("id"), req.FieldIDs, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromFields(list)})
}
