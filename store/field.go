package store

import (
	"context"
	"strings"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/fields"
	"github.com/agentdms/admin/models"
	"gorm.io/gorm"
)

// FieldStore manages project custom fields.
type FieldStore struct{ DB *gorm.DB }

func NewFieldStore(db *gorm.DB) *FieldStore { return &FieldStore{DB: db} }

// ListByProject returns the fields of a project sorted by order then id.
func (s *FieldStore) ListByProject(ctx context.Context, projectID string) ([]models.CustomField, error) {
	return listFields(ctx, s.DB, projectID)
}

func (s *FieldStore) GetField(ctx context.Context, id string) (*models.CustomField, error) {
	var f models.CustomField
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, translate("get field", err)
	}
	return &f, nil
}

// CreateField appends a removable field after the project's last field.
func (s *FieldStore) CreateField(ctx context.Context, f models.CustomField, actorID string) (*models.CustomField, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" || !f.FieldType.Valid() {
		return nil, errors.ErrInvalidRequest
	}
	// store the canonical form
	v := models.ParseVisibility(f.RoleVisibility)
	if v.Invalid {
		return nil, errors.ErrInvalidRequest
	}
	f.RoleVisibility = nil
	if v.Restricted {
		f.RoleVisibility = models.EncodeVisibility(v.Roles)
	}
	f.ID = models.NewID()
	f.IsRemovable = true
	f.IsDefault = false
	f.UserListOptions = models.NewStringSet(f.UserListOptions...)
	f.ModifiedBy = models.StringPtr(actorID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Where("id = ?", f.ProjectID).First(&p).Error; err != nil {
			return err
		}
		var maxOrder int64
		row := tx.Model(&models.CustomField{}).Where("project_id = ?", f.ProjectID).Select("COALESCE(MAX(field_order), -1)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}
		f.Order = int(maxOrder) + 1
		return tx.Create(&f).Error
	})
	if err != nil {
		return nil, translate("create field", err)
	}
	return &f, nil
}

// FieldUpdate carries the mutable field attributes; nil leaves a value unchanged.
type FieldUpdate struct {
	Name            *string
	Description     *string
	IsRequired      *bool
	DefaultValue    *string
	RoleVisibility  *models.StringSet
	ClearVisibility bool
	UserListOptions *models.StringSet
}

// UpdateField changes a field. The type and removability of a field are fixed
// at creation.
func (s *FieldStore) UpdateField(ctx context.Context, id string, in FieldUpdate, actorID string) (*models.CustomField, error) {
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
	if in.IsRequired != nil {
		updates["is_required"] = *in.IsRequired
	}
	if in.DefaultValue != nil {
		updates["default_value"] = models.StringPtr(*in.DefaultValue)
	}
	switch {
	case in.ClearVisibility:
		updates["role_visibility"] = nil
	case in.RoleVisibility != nil:
		updates["role_visibility"] = models.EncodeVisibility(models.NewStringSet(*in.RoleVisibility...))
	}
	if in.UserListOptions != nil {
		updates["user_list_options"] = models.NewStringSet(*in.UserListOptions...)
	}
	res := s.DB.WithContext(ctx).Model(&models.CustomField{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, translate("update field", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.ErrNotFound
	}
	return s.GetField(ctx, id)
}

// DeleteField removes a field with its values and restrictions. Fields that
// are not removable fail with ErrFieldNotRemovable whoever asks.
func (s *FieldStore) DeleteField(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f models.CustomField
		if err := tx.Where("id = ?", id).First(&f).Error; err != nil {
			return err
		}
		if err := fields.CheckRemovable(f); err != nil {
			return err
		}
		if err := tx.Where("custom_field_id = ?", id).Delete(&models.RoleFieldValueRestriction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("custom_field_id = ?", id).Delete(&models.DocumentFieldValue{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.CustomField{}).Error
	})
	return translate("delete field", err)
}

// Reorder assigns orders 0..n-1 following ids. Every field of the project must
// be listed exactly once.
func (s *FieldStore) Reorder(ctx context.Context, projectID string, ids []string, actorID string) ([]models.CustomField, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&models.CustomField{}).Where("project_id = ?", projectID).Pluck("id", &existing).Error; err != nil {
			return err
		}
		if len(existing) == 0 {
			var n int64
			if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		want := models.NewStringSet(ids...)
		if len(want) != len(ids) || want.Encode() != models.NewStringSet(existing...).Encode() {
			return errors.ErrInvalidRequest
		}
		for i, id := range ids {
			if err := tx.Model(&models.CustomField{}).Where("id = ?", id).
				Updates(map[string]interface{}{"field_order": i, "modified_by": models.StringPtr(actorID)}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("reorder fields", err)
	}
	return listFields(ctx, s.DB, projectID)
}
