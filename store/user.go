package store

import (
	"context"
	"strings"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore provides operations for users.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{DB: db} }

// NewUser describes a user to create.
type NewUser struct {
	Username    string
	Email       string
	Password    string
	RoleIDs     []string
	IsImmutable bool
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// CreateUser hashes the password and stores the user with its roles.
func (s *UserStore) CreateUser(ctx context.Context, in NewUser, actorID string) (*models.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") || in.Password == "" {
		return nil, errors.ErrInvalidRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	user := models.User{ID: models.NewID(), Username: username, Email: email, PasswordHash: string(hash), IsImmutable: in.IsImmutable}
	user.ModifiedBy = models.StringPtr(actorID)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for _, roleID := range models.NewStringSet(in.RoleIDs...) {
			if err := assignRole(tx, user.ID, roleID, actorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("create user", err)
	}
	return &user, nil
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translate("get user by email", err)
	}
	return &user, nil
}

// ListUsers returns users ordered by email.
func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

// Authenticate verifies credentials. Unknown email and wrong password fail the
// same way.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, errors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.ErrInvalidCredentials
	}
	return user, nil
}

// SetPassword replaces a user's password.
func (s *UserStore) SetPassword(ctx context.Context, userID, password string) error {
	if password == "" {
		return errors.ErrInvalidRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", string(hash))
	if res.Error != nil {
		return translate("set password", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user and its role assignments. Immutable users cannot
// be deleted.
func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if user.IsImmutable {
			return errors.ErrImmutable
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
	return translate("delete user", err)
}

// AssignRole gives a user a role. Assigning twice is a no-op.
func (s *UserStore) AssignRole(ctx context.Context, userID, roleID, actorID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return assignRole(tx, userID, roleID, actorID)
	})
	return translate("assign role", err)
}

// RevokeRole removes a role from a user. Roles of immutable users cannot be
// revoked.
func (s *UserStore) RevokeRole(ctx context.Context, userID, roleID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		if user.IsImmutable {
			return errors.ErrImmutable
		}
		res := tx.Where("user_id = ? AND role_id = ?", userID, roleID).Delete(&models.UserRole{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("revoke role", err)
}

func assignRole(tx *gorm.DB, userID, roleID, actorID string) error {
	var n int64
	if err := tx.Model(&models.Role{}).Where("id = ?", roleID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := tx.Model(&models.UserRole{}).Where("user_id = ? AND role_id = ?", userID, roleID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	ur := models.UserRole{ID: models.NewID(), UserID: userID, RoleID: roleID}
	ur.ModifiedBy = models.StringPtr(actorID)
	return tx.Create(&ur).Error
}

// EnsureSuperAdmin creates the bootstrap super admin when no user holds the
// Super Admin role yet. It returns the existing or created user.
func (s *UserStore) EnsureSuperAdmin(ctx context.Context, email, password string) (*models.User, bool, error) {
	var role models.Role
	if err := s.DB.WithContext(ctx).Where("system_key = ?", string(models.SystemRoleSuperAdmin)).First(&role).Error; err != nil {
		return nil, false, translate("find super admin role", err)
	}
	var existing models.User
	err := s.DB.WithContext(ctx).Table("users u").Select("u.*").
		Joins("JOIN user_roles ur ON ur.user_id = u.id").
		Where("ur.role_id = ?", role.ID).Order("u.created_at ASC").Limit(1).Scan(&existing).Error
	if err != nil {
		return nil, false, translate("find super admin", err)
	}
	if existing.ID != "" {
		return &existing, false, nil
	}
	user, err := s.CreateUser(ctx, NewUser{Username: "superadmin", Email: email, Password: password, RoleIDs: []string{role.ID}, IsImmutable: true}, "")
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
