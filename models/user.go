package models

// User is an administrator or end user of the document system.
// Immutable users (the bootstrap super admin) cannot be deleted and their
// role assignments cannot be revoked.
type User struct {
	ID           string `gorm:"column:id;primaryKey" json:"id"`
	Username     string `gorm:"column:username" json:"username"`
	Email        string `gorm:"column:email" json:"email"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`
	IsImmutable  bool   `gorm:"column:is_immutable" json:"is_immutable"`
	Audit
}

func (User) TableName() string { return "users" }
