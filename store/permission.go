package store

import (
	"context"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/permission"
	"gorm.io/gorm"
)

// PermissionStore manages the permission catalogue.
type PermissionStore struct{ DB *gorm.DB }

func NewPermissionStore(db *gorm.DB) *PermissionStore { return &PermissionStore{DB: db} }

func (s *PermissionStore) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&perms).Error; err != nil {
		return nil, translate("list permissions", err)
	}
	return perms, nil
}

// CreatePermission adds a permission key. A trailing ".*" makes it a wildcard
// grant. Super Admin holds every new key immediately.
func (s *PermissionStore) CreatePermission(ctx context.Context, name string, description *string, actorID string) (*models.Permission, error) {
	key := permission.Normalize(name)
	if !key.Valid() {
		return nil, errors.ErrInvalidRequest
	}
	perm := models.Permission{ID: models.NewID(), Name: string(key), Description: description}
	perm.ModifiedBy = models.StringPtr(actorID)
	if err := s.DB.WithContext(ctx).Create(&perm).Error; err != nil {
		return nil, translate("create permission", err)
	}
	return &perm, nil
}
