package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/dto"
	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/fields"
	"github.com/agentdms/admin/models"
)

type createDocumentRequest struct {
	FileName    string  `json:"file_name"`
	StoragePath string  `json:"storage_path"`
	MimeType    *string `json:"mime_type"`
	FileSize    int64   `json:"file_size"`
}

type fieldValueRequest struct {
	Value *string `json:"value"`
}

type pageRequest struct {
	ImagePath     string  `json:"image_path"`
	ThumbnailPath *string `json:"thumbnail_path"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
}

func (s *Server) HandleListDocumentsGin(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := s.Projects.GetProject(ctx, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	page := pageFromQuery(c)
	docs, total, page, err := s.Documents.ListByProject(ctx, c.Param("id"), page)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromDocuments(docs), total, page.Page, page.PageSize))
}

func (s *Server) HandleCreateDocumentGin(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileName == "" {
		badRequest(c, "file_name is required")
		return
	}
	doc, err := s.Documents.CreateDocument(c.Request.Context(), models.Document{
		ProjectID:   c.Param("id"),
		FileName:    req.FileName,
		StoragePath: req.StoragePath,
		MimeType:    req.MimeType,
		FileSize:    req.FileSize,
	}, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromDocument(*doc, nil))
}

// HandleGetDocumentGin returns a document. Values of fields hidden from the
// caller are left out entirely.
func (s *Server) HandleGetDocumentGin(c *gin.Context) {
	p, err := GetPrincipalFromContext(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	doc, err := s.Documents.GetDocument(ctx, c.Param("docId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	list, err := s.Fields.ListByProject(ctx, doc.ProjectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDocument(*doc, fields.FilterVisible(list, p.RoleSet())))
}

// HandleSetDocumentFieldGin writes one field value. The field must be visible
// to the caller and the value must pass the caller's value restrictions.
func (s *Server) HandleSetDocumentFieldGin(c *gin.Context) {
	p, err := GetPrincipalFromContext(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req fieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	doc, err := s.Documents.GetDocument(ctx, c.Param("docId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	field, err := s.Fields.GetField(ctx, c.Param("fieldId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if field.ProjectID != doc.ProjectID {
		s.respondError(c, errors.ErrNotFound)
		return
	}
	value := ""
	if req.Value != nil {
		value = *req.Value
	}
	value, err = s.Evaluator.CheckValue(ctx, *field, p.RoleSet(), value)
	if err != nil {
		if errors.Is(err, errors.ErrValueNotAllowed) {
			s.Log.WithField("user_id", p.UserID).WithField("field_id", field.ID).Info("field value rejected")
		}
		s.respondError(c, err)
		return
	}
	stored := req.Value
	if stored != nil {
		stored = &value
	}
	fv, err := s.Documents.SetFieldValue(ctx, doc.ID, field.ID, stored, p.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FieldValueResponse{FieldID: field.ID, FieldName: field.Name, Value: fv.Value})
}

func (s *Server) HandleUpsertDocumentPageGin(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("page"))
	if err != nil || number < 1 {
		badRequest(c, "page must be a positive integer")
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImagePath == "" {
		badRequest(c, "image_path is required")
		return
	}
	page, err := s.Documents.UpsertPage(c.Request.Context(), models.DocumentPage{
		DocumentID:    c.Param("docId"),
		PageNumber:    number,
		ImagePath:     req.ImagePath,
		ThumbnailPath: req.ThumbnailPath,
		Width:         req.Width,
		Height:        req.Height,
	}, GetUserIDFromContext(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPage(*page))
}

func (s *Server) HandleDeleteDocumentGin(c *gin.Context) {
	if err := s.Documents.DeleteDocument(c.Request.Context(), c.Param("docId")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
