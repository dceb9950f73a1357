package store

import (
	"context"
	"strings"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"gorm.io/gorm"
)

// DocumentStore manages documents, their field values and pages.
type DocumentStore struct{ DB *gorm.DB }

func NewDocumentStore(db *gorm.DB) *DocumentStore { return &DocumentStore{DB: db} }

// ListByProject returns a page of a project's documents, newest first. Pages
// past the end are clamped like ListProjects.
func (s *DocumentStore) ListByProject(ctx context.Context, projectID string, page Page) ([]models.Document, int64, Page, error) {
	page = page.Normalize()
	q := s.DB.WithContext(ctx).Model(&models.Document{}).Where("project_id = ?", projectID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, translate("count documents", err)
	}
	page = page.Clamp(total)
	var docs []models.Document
	if err := q.Order("created_at DESC").Order("id ASC").Offset(page.Offset()).Limit(page.PageSize).Find(&docs).Error; err != nil {
		return nil, 0, page, translate("list documents", err)
	}
	return docs, total, page, nil
}

// GetDocument returns a document with all its field values and pages.
// Callers filter values by field visibility.
func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var d models.Document
	db := s.DB.WithContext(ctx)
	if err := db.Where("id = ?", id).First(&d).Error; err != nil {
		return nil, translate("get document", err)
	}
	if err := db.Where("document_id = ?", id).Order("custom_field_id ASC").Find(&d.Values).Error; err != nil {
		return nil, translate("get document values", err)
	}
	if err := db.Where("document_id = ?", id).Order("page_number ASC").Find(&d.Pages).Error; err != nil {
		return nil, translate("get document pages", err)
	}
	return &d, nil
}

// CreateDocument registers a stored file in a project.
func (s *DocumentStore) CreateDocument(ctx context.Context, d models.Document, actorID string) (*models.Document, error) {
	d.FileName = strings.TrimSpace(d.FileName)
	if d.FileName == "" || d.ProjectID == "" {
		return nil, errors.ErrInvalidRequest
	}
	if d.StoragePath == "" {
		d.StoragePath = d.ProjectID + "/" + d.FileName
	}
	d.ID = models.NewID()
	d.ModifiedBy = models.StringPtr(actorID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Where("id = ?", d.ProjectID).First(&p).Error; err != nil {
			return err
		}
		if p.IsArchived {
			return errors.ErrConflict
		}
		return tx.Create(&d).Error
	})
	if err != nil {
		return nil, translate("create document", err)
	}
	return &d, nil
}

// DeleteDocument removes a document with its values and pages.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Document
		if err := tx.Where("id = ?", id).First(&d).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentFieldValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentPage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Document{}).Error
	})
	return translate("delete document", err)
}

// SetFieldValue inserts or replaces the value of one field on a document.
// Authorization and validation happen before this call.
func (s *DocumentStore) SetFieldValue(ctx context.Context, documentID, fieldID string, value *string, actorID string) (*models.DocumentFieldValue, error) {
	var out models.DocumentFieldValue
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Document
		if err := tx.Where("id = ?", documentID).First(&d).Error; err != nil {
			return err
		}
		var f models.CustomField
		if err := tx.Where("id = ? AND project_id = ?", fieldID, d.ProjectID).First(&f).Error; err != nil {
			return err
		}
		err := tx.Where("document_id = ? AND custom_field_id = ?", documentID, fieldID).First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = models.DocumentFieldValue{ID: models.NewID(), DocumentID: documentID, CustomFieldID: fieldID, Value: value}
			out.ModifiedBy = models.StringPtr(actorID)
			return tx.Create(&out).Error
		case err != nil:
			return err
		}
		out.Value = value
		out.ModifiedBy = models.StringPtr(actorID)
		return tx.Model(&models.DocumentFieldValue{}).Where("id = ?", out.ID).
			Updates(map[string]interface{}{"value": value, "modified_by": out.ModifiedBy}).Error
	})
	if err != nil {
		return nil, translate("set field value", err)
	}
	return &out, nil
}

// UpsertPage stores the rendering of a page, replacing an earlier one.
func (s *DocumentStore) UpsertPage(ctx context.Context, p models.DocumentPage, actorID string) (*models.DocumentPage, error) {
	if p.PageNumber < 1 || strings.TrimSpace(p.ImagePath) == "" {
		return nil, errors.ErrInvalidRequest
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Document{}).Where("id = ?", p.DocumentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		var cur models.DocumentPage
		err := tx.Where("document_id = ? AND page_number = ?", p.DocumentID, p.PageNumber).First(&cur).Error
		p.ModifiedBy = models.StringPtr(actorID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p.ID = models.NewID()
			return tx.Create(&p).Error
		case err != nil:
			return err
		}
		p.ID = cur.ID
		p.CreatedAt = cur.CreatedAt
		return tx.Model(&models.DocumentPage{}).Where("id = ?", cur.ID).Updates(map[string]interface{}{
			"image_path":     p.ImagePath,
			"thumbnail_path": p.ThumbnailPath,
			"width":          p.Width,
			"height":         p.Height,
			"modified_by":    p.ModifiedBy,
		}).Error
	})
	if err != nil {
		return nil, translate("upsert page", err)
	}
	return &p, nil
}
