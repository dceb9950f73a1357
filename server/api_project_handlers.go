package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/fields"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/store"
)

type projectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FileName    *string `json:"file_name"`
	IsActive    *bool   `json:"is_active"`
}

// HandleListProjectsGin lists projects with pagination. Archived projects are
// included only with includeArchived=true.
func (s *Server) HandleListProjectsGin(c *gin.Context) {
	page := pageFromQuery(c)
	includeArchived := c.Query("includeArchived") == "true" || c.Query("include_archived") == "true"
	projects, total, page, err := s.Projects.ListProjects(c.Request.Context(), page, includeArchived)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromProjects(projects), total, page.Page, page.PageSize))
}

// HandleGetProjectGin returns a project with the fields the caller may see.
func (s *Server) HandleGetProjectGin(c *gin.Context) {
	p, err := GetPrincipalFromContext(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	project, err := s.Projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	project.Fields = fields.FilterVisible(project.Fields, p.RoleSet())
	c.JSON(http.StatusOK, dto.FromProject(*project))
}

func (s *Server) HandleCreateProjectGin(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		badRequest(c, "name is required")
		return
	}
	in := models.Project{Name: *req.Name, Description: req.Description, FileName: req.FileName}
	project, err := s.Projects.CreateProject(c.Request.Context(), in, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("project_id", project.ID).Info("project created")
	c.JSON(http.StatusCreated, dto.FromProject(*project))
}

// HandleCloneProjectGin copies a project with its fields and restrictions.
func (s *Server) HandleCloneProjectGin(c *gin.Context) {
	project, err := s.Projects.CloneProject(c.Request.Context(), c.Param("id"), GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("project_id", project.ID).WithField("source_id", c.Param("id")).Info("project cloned")
	c.JSON(http.StatusCreated, dto.FromProject(*project))
}

func (s *Server) HandleUpdateProjectGin(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	project, err := s.Projects.UpdateProject(c.Request.Context(), c.Param("id"), store.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		FileName:    req.FileName,
		IsActive:    req.IsActive,
	}, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProject(*project))
}

func (s *Server) HandleArchiveProjectGin(c *gin.Context) {
	if err := s.Projects.ArchiveProject(c.Request.Context(), c.Param("id"), GetUserIDFromContext(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project archived"})
}

func (s *Server) HandleDeleteProjectGin(c *gin.Context) {
	if err := s.Projects.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	s.Log.WithField("project_id", c.Param("id")).Info("project deleted")
	c.Status(http.StatusNoContent)
}
