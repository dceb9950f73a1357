package models

// SystemRole identifies a built-in role independently of its display name.
type SystemRole string

const (
	// SystemRoleSuperAdmin is granted every permission, including ones
	// created after the role itself.
	SystemRoleSuperAdmin SystemRole = "super_admin"
)

// Role groups permissions and is assigned to users.
// Permissions is populated by the store from role_permissions.
type Role struct {
	ID          string      `gorm:"column:id;primaryKey" json:"id"`
	Name        string      `gorm:"column:name" json:"name"`
	Description *string     `gorm:"column:description" json:"description,omitempty"`
	SystemKey   *SystemRole `gorm:"column:system_key" json:"system_key,omitempty"`
	IsImmutable bool        `gorm:"column:is_immutable" json:"is_immutable"`
	Permissions []string    `gorm:"-" json:"permissions"`
	Audit
}

func (Role) TableName() string { return "roles" }

// Is reports whether the role is the given system role.
func (r Role) Is(key SystemRole) bool {
	return r.SystemKey != nil && *r.SystemKey == key
}

// IsSuperAdmin reports whether the role is the built-in Super Admin role.
func (r Role) IsSuperAdmin() bool { return r.Is(SystemRoleSuperAdmin) }

// Permission is a named capability such as "document.view".
type Permission struct {
	ID          string  `gorm:"column:id;primaryKey" json:"id"`
	Name        string  `gorm:"column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	Audit
}

func (Permission) TableName() string { return "permissions" }

// RolePermission links a role to a permission.
type RolePermission struct {
	ID           string `gorm:"column:id;primaryKey"`
	RoleID       string `gorm:"column:role_id"`
	PermissionID string `gorm:"column:permission_id"`
	Audit
}

func (RolePermission) TableName() string { return "role_permissions" }

// UserRole links a user to a role.
type UserRole struct {
	ID     string `gorm:"column:id;primaryKey"`
	UserID string `gorm:"column:user_id"`
	RoleID string `gorm:"column:role_id"`
	Audit
}

func (UserRole) TableName() string { return "user_roles" }
