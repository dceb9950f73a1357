package store

import (
	"context"
	"strings"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"gorm.io/gorm"
)

type RoleStore struct{ DB *gorm.DB }

func NewRoleStore(db *gorm.DB) *RoleStore { return &RoleStore{DB: db} }

// ListRoles returns every role with its permissions, ordered by name.
func (s *RoleStore) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, translate("list roles", err)
	}
	return roles, s.attachPermissions(ctx, s.DB, roles)
}

// GetRole returns a role with its permissions.
func (s *RoleStore) GetRole(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		return nil, translate("get role", err)
	}
	roles := []models.Role{role}
	if err := s.attachPermissions(ctx, s.DB, roles); err != nil {
		return nil, err
	}
	return &roles[0], nil
}

// RolesByIDs loads the given roles and their current permissions. Unknown ids
// are skipped.
func (s *RoleStore) RolesByIDs(ctx context.Context, ids []string) ([]models.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var roles []models.Role
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, translate("load roles", err)
	}
	return roles, s.attachPermissions(ctx, s.DB, roles)
}

// RolesForUser returns the roles assigned to a user.
func (s *RoleStore) RolesForUser(ctx context.Context, userID string) ([]models.Role, error) {
	var roles []models.Role
	err := s.DB.WithContext(ctx).Table("roles r").Select("r.*").
		Joins("JOIN user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).Order("r.name ASC").Scan(&roles).Error
	if err != nil {
		return nil, translate("roles for user", err)
	}
	return roles, s.attachPermissions(ctx, s.DB, roles)
}

func (s *RoleStore) attachPermissions(ctx context.Context, db *gorm.DB, roles []models.Role) error {
	if len(roles) == 0 {
		return nil
	}
	ids := make([]string, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	var rows []struct {
		RoleID string
		Name   string
	}
	err := db.WithContext(ctx).Table("role_permissions rp").Select("rp.role_id, p.name").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("rp.role_id IN ?", ids).Order("p.name ASC").Scan(&rows).Error
	if err != nil {
		return translate("load role permissions", err)
	}
	byRole := make(map[string][]string, len(roles))
	for _, r := range rows {
		byRole[r.RoleID] = append(byRole[r.RoleID], r.Name)
	}
	for i := range roles {
		roles[i].Permissions = byRole[roles[i].ID]
		if roles[i].Permissions == nil {
			roles[i].Permissions = []string{}
		}
	}
	return nil
}

// CreateRole inserts a role and grants the named permissions.
func (s *RoleStore) CreateRole(ctx context.Context, role models.Role, actorID string) (*models.Role, error) {
	role.Name = strings.TrimSpace(role.Name)
	if role.Name == "" {
		return nil, errors.ErrInvalidRequest
	}
	// system roles come from seeds only
	role.SystemKey = nil
	role.IsImmutable = false
	role.ID = models.NewID()
	role.ModifiedBy = models.StringPtr(actorID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		return grantAll(ctx, tx, role.ID, role.Permissions, actorID)
	})
	if err != nil {
		return nil, translate("create role", err)
	}
	return s.GetRole(ctx, role.ID)
}

// UpdateRole renames a role, changes its description and, when permissions is
// non-nil, replaces its permission set.
func (s *RoleStore) UpdateRole(ctx context.Context, id string, name, description *string, permissions []string, actorID string) (*models.Role, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("id = ?", id).First(&role).Error; err != nil {
			return err
		}
		if role.IsImmutable || role.SystemKey != nil {
			return errors.ErrImmutable
		}
		updates := map[string]interface{}{"modified_by": models.StringPtr(actorID)}
		if name != nil {
			n := strings.TrimSpace(*name)
			if n == "" {
				return errors.ErrInvalidRequest
			}
			updates["name"] = n
		}
		if description != nil {
			updates["description"] = models.StringPtr(*description)
		}
		if err := tx.Model(&models.Role{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if permissions == nil {
			return nil
		}
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return grantAll(ctx, tx, id, permissions, actorID)
	})
	if err != nil {
		return nil, translate("update role", err)
	}
	return s.GetRole(ctx, id)
}

// DeleteRole removes a role together with its restrictions, permission grants
// and user assignments. System roles cannot be deleted.
func (s *RoleStore) DeleteRole(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("id = ?", id).First(&role).Error; err != nil {
			return err
		}
		if role.IsImmutable || role.SystemKey != nil {
			return errors.ErrImmutable
		}
		for _, m := range []interface{}{&models.RoleFieldValueRestriction{}, &models.UserRole{}, &models.RolePermission{}, &models.ProjectRole{}} {
			if err := tx.Where("role_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&models.Role{}).Error
	})
	return translate("delete role", err)
}

// GrantPermission adds a permission to a role. Granting twice is a no-op.
func (s *RoleStore) GrantPermission(ctx context.Context, roleID, permissionName, actorID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("id = ?", roleID).First(&role).Error; err != nil {
			return err
		}
		if role.IsImmutable || role.SystemKey != nil {
			return errors.ErrImmutable
		}
		return grantAll(ctx, tx, roleID, []string{permissionName}, actorID)
	})
	return translate("grant permission", err)
}

// RevokePermission removes a permission from a role.
func (s *RoleStore) RevokePermission(ctx context.Context, roleID, permissionName string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("id = ?", roleID).First(&role).Error; err != nil {
			return err
		}
		if role.IsImmutable || role.SystemKey != nil {
			return errors.ErrImmutable
		}
		var perm models.Permission
		if err := tx.Where("name = ?", permissionName).First(&perm).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ? AND permission_id = ?", roleID, perm.ID).Delete(&models.RolePermission{}).Error
	})
	return translate("revoke permission", err)
}

func grantAll(ctx context.Context, tx *gorm.DB, roleID string, names []string, actorID string) error {
	for _, name := range models.NewStringSet(names...) {
		var perm models.Permission
		if err := tx.WithContext(ctx).Where("name = ?", name).First(&perm).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.RolePermission{}).Where("role_id = ? AND permission_id = ?", roleID, perm.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		rp := models.RolePermission{ID: models.NewID(), RoleID: roleID, PermissionID: perm.ID}
		rp.ModifiedBy = models.StringPtr(actorID)
		if err := tx.Create(&rp).Error; err != nil {
			return err
		}
	}
	return nil
}
