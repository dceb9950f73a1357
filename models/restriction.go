package models

// RoleFieldValueRestriction limits the values a role may assign to a field.
// With IsAllowList only the listed values are permitted, otherwise the listed
// values are forbidden and everything else is permitted.
// At most one row exists per (role, field).
type RoleFieldValueRestriction struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	RoleID        string    `gorm:"column:role_id" json:"role_id"`
	CustomFieldID string    `gorm:"column:custom_field_id" json:"custom_field_id"`
	Values        StringSet `gorm:"column:restricted_values" json:"values"`
	IsAllowList   bool      `gorm:"column:is_allow_list" json:"is_allow_list"`
	Version       int       `gorm:"column:version" json:"version"`
	Audit
}

func (RoleFieldValueRestriction) TableName() string { return "role_field_value_restrictions" }

// Permits reports whether value passes this single restriction.
func (r RoleFieldValueRestriction) Permits(value string) bool {
	listed := r.Values.Contains(value)
	if r.IsAllowList {
		return listed
	}
	return !listed
}
