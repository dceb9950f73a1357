package store

import (
	"context"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"gorm.io/gorm"
)

// RestrictionStore manages per-role value restrictions of custom fields.
type RestrictionStore struct{ DB *gorm.DB }

func NewRestrictionStore(db *gorm.DB) *RestrictionStore { return &RestrictionStore{DB: db} }

// ListForField returns the restriction rows of a field ordered by role.
func (s *RestrictionStore) ListForField(ctx context.Context, fieldID string) ([]models.RoleFieldValueRestriction, error) {
	var rows []models.RoleFieldValueRestriction
	if err := s.DB.WithContext(ctx).Where("custom_field_id = ?", fieldID).Order("role_id ASC").Find(&rows).Error; err != nil {
		return nil, translate("list restrictions", err)
	}
	return rows, nil
}

func (s *RestrictionStore) Get(ctx context.Context, fieldID, roleID string) (*models.RoleFieldValueRestriction, error) {
	var r models.RoleFieldValueRestriction
	if err := s.DB.WithContext(ctx).Where("custom_field_id = ? AND role_id = ?", fieldID, roleID).First(&r).Error; err != nil {
		return nil, translate("get restriction", err)
	}
	return &r, nil
}

// Create adds a restriction. A second row for the same (role, field) fails
// with ErrDuplicateRestriction.
func (s *RestrictionStore) Create(ctx context.Context, r models.RoleFieldValueRestriction, actorID string) (*models.RoleFieldValueRestriction, error) {
	if r.RoleID == "" || r.CustomFieldID == "" {
		return nil, errors.ErrInvalidRequest
	}
	r.ID = models.NewID()
	r.Values = models.NewStringSet(r.Values...)
	r.Version = 1
	r.ModifiedBy = models.StringPtr(actorID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Role{}).Where("id = ?", r.RoleID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.CustomField{}).Where("id = ?", r.CustomFieldID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.RoleFieldValueRestriction{}).
			Where("role_id = ? AND custom_field_id = ?", r.RoleID, r.CustomFieldID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errors.ErrDuplicateRestriction
		}
		return tx.Create(&r).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent insert
		return nil, errors.ErrDuplicateRestriction
	}
	if err != nil {
		return nil, translate("create restriction", err)
	}
	return &r, nil
}

// RestrictionUpdate replaces the values and mode of a restriction. With a
// non-nil Version the update only applies if the stored version matches.
type RestrictionUpdate struct {
	Values      models.StringSet
	IsAllowList bool
	Version     *int
}

// Update applies in and bumps the version. A stale Version fails with
// ErrVersionConflict; without one the last write wins.
func (s *RestrictionStore) Update(ctx context.Context, fieldID, roleID string, in RestrictionUpdate, actorID string) (*models.RoleFieldValueRestriction, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.RoleFieldValueRestriction
		if err := tx.Where("custom_field_id = ? AND role_id = ?", fieldID, roleID).First(&cur).Error; err != nil {
			return err
		}
		expected := cur.Version
		if in.Version != nil {
			expected = *in.Version
		}
		res := tx.Model(&models.RoleFieldValueRestriction{}).
			Where("id = ? AND version = ?", cur.ID, expected).
			Updates(map[string]interface{}{
				"restricted_values": models.NewStringSet(in.Values...),
				"is_allow_list":     in.IsAllowList,
				"version":           gorm.Expr("version + 1"),
				"modified_by":       models.StringPtr(actorID),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return nil, translate("update restriction", err)
	}
	return s.Get(ctx, fieldID, roleID)
}

func (s *RestrictionStore) Delete(ctx context.Context, fieldID, roleID string) error {
	res := s.DB.WithContext(ctx).Where("custom_field_id = ? AND role_id = ?", fieldID, roleID).Delete(&models.RoleFieldValueRestriction{})
	if res.Error != nil {
		return translate("delete restriction", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}
