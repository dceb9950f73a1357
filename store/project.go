package store

import (
	"context"
	"strings"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/fields"
	"github.com/agentdms/admin/models"
	"gorm.io/gorm"
)

// ProjectStore manages projects and their default fields.
type ProjectStore struct{ DB *gorm.DB }

func NewProjectStore(db *gorm.DB) *ProjectStore { return &ProjectStore{DB: db} }

// ListProjects returns a page of projects, newest first, the total count and
// the page actually served. Pages past the end are clamped to the last one.
func (s *ProjectStore) ListProjects(ctx context.Context, page Page, includeArchived bool) ([]models.Project, int64, Page, error) {
	page = page.Normalize()
	q := s.DB.WithContext(ctx).Model(&models.Project{})
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, translate("count projects", err)
	}
	page = page.Clamp(total)
	var projects []models.Project
	if err := q.Order("created_at DESC").Order("id ASC").Offset(page.Offset()).Limit(page.PageSize).Find(&projects).Error; err != nil {
		return nil, 0, page, translate("list projects", err)
	}
	return projects, total, page, nil
}

// GetProject returns a project with its fields in display order.
func (s *ProjectStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate("get project", err)
	}
	list, err := listFields(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	p.Fields = list
	return &p, nil
}

// defaultFields are created with every project and cannot be removed.
func defaultFields(projectID, actorID string) []models.CustomField {
	specs := []struct {
		name string
		typ  models.FieldType
		desc string
		req  bool
	}{
		{models.DefaultFieldFilename, models.FieldTypeText, "Original file name", true},
		{models.DefaultFieldDateCreated, models.FieldTypeDate, "Upload date", false},
		{models.DefaultFieldDateModified, models.FieldTypeDate, "Last change date", false},
	}
	out := make([]models.CustomField, 0, len(specs))
	for i, sp := range specs {
		f := models.CustomField{
			ID:          models.NewID(),
			ProjectID:   projectID,
			Name:        sp.name,
			Description: models.StringPtr(sp.desc),
			FieldType:   sp.typ,
			IsRequired:  sp.req,
			IsDefault:   true,
			Order:       i,
			IsRemovable: false,
		}
		f.ModifiedBy = models.StringPtr(actorID)
		out = append(out, f)
	}
	return out
}

// CreateProject stores a project together with its default fields.
func (s *ProjectStore) CreateProject(ctx context.Context, p models.Project, actorID string) (*models.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, errors.ErrInvalidRequest
	}
	p.ID = models.NewID()
	p.IsActive = true
	p.IsArchived = false
	p.ModifiedBy = models.StringPtr(actorID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return tx.Create(defaultFields(p.ID, actorID)).Error
	})
	if err != nil {
		return nil, translate("create project", err)
	}
	return s.GetProject(ctx, p.ID)
}

// CloneProject copies a project, its fields and their value restrictions.
// The copy is named "<name> (Copy)". Documents are not copied.
func (s *ProjectStore) CloneProject(ctx context.Context, id, actorID string) (*models.Project, error) {
	var cloneID string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.Project
		if err := tx.Where("id = ?", id).First(&src).Error; err != nil {
			return err
		}
		clone := src
		clone.ID = models.NewID()
		clone.Name = src.Name + " (Copy)"
		clone.IsArchived = false
		clone.IsActive = true
		clone.Audit = models.Audit{ModifiedBy: models.StringPtr(actorID)}
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
		cloneID = clone.ID

		var srcFields []models.CustomField
		if err := tx.Where("project_id = ?", id).Find(&srcFields).Error; err != nil {
			return err
		}
		for _, f := range srcFields {
			var rows []models.RoleFieldValueRestriction
			if err := tx.Where("custom_field_id = ?", f.ID).Find(&rows).Error; err != nil {
				return err
			}
			nf := f
			nf.ID = models.NewID()
			nf.ProjectID = clone.ID
			nf.Audit = models.Audit{ModifiedBy: models.StringPtr(actorID)}
			if err := tx.Create(&nf).Error; err != nil {
				return err
			}
			for _, r := range rows {
				nr := r
				nr.ID = models.NewID()
				nr.CustomFieldID = nf.ID
				nr.Version = 1
				nr.Audit = models.Audit{ModifiedBy: models.StringPtr(actorID)}
				if err := tx.Create(&nr).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("clone project", err)
	}
	return s.GetProject(ctx, cloneID)
}

// ProjectUpdate carries the mutable project attributes; nil leaves a value unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	FileName    *string
	IsActive    *bool
}

func (s *ProjectStore) UpdateProject(ctx context.Context, id string, in ProjectUpdate, actorID string) (*models.Project, error) {
	updates := map[string]interface{}{"modified_by": models.StringPtr(actorID)}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, errors.ErrInvalidRequest
		}
		updates["name"] = n
	}
	if in.Description != nil {
		updates["description"] = models.StringPtr(*in.Description)
	}
	if in.FileName != nil {
		updates["file_name"] = models.StringPtr(*in.FileName)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.updateProject(ctx, id, updates); err != nil {
		return nil, translate("update project", err)
	}
	return s.GetProject(ctx, id)
}

// ArchiveProject hides a project from default listings.
func (s *ProjectStore) ArchiveProject(ctx context.Context, id, actorID string) error {
	return translate("archive project", s.updateProject(ctx, id, map[string]interface{}{
		"is_archived": true,
		"modified_by": models.StringPtr(actorID),
	}))
}

func (s *ProjectStore) updateProject(ctx context.Context, id string, updates map[string]interface{}) error {
	res := s.DB.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProject removes a project and everything it owns.
func (s *ProjectStore) DeleteProject(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		docs := tx.Model(&models.Document{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("document_id IN (?)", docs).Delete(&models.DocumentFieldValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id IN (?)", docs).Delete(&models.DocumentPage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		flds := tx.Model(&models.CustomField{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("custom_field_id IN (?)", flds).Delete(&models.RoleFieldValueRestriction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.CustomField{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectRole{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
	return translate("delete project", err)
}

func listFields(ctx context.Context, db *gorm.DB, projectID string) ([]models.CustomField, error) {
	var list []models.CustomField
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).Find(&list).Error; err != nil {
		return nil, translate("list fields", err)
	}
	fields.Sort(list)
	return list, nil
}
