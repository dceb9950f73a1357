package models

import "strings"

// FieldType enumerates the value kinds a custom field may hold.
type FieldType string

const (
	FieldTypeText     FieldType = "Text"
	FieldTypeNumber   FieldType = "Number"
	FieldTypeDate     FieldType = "Date"
	FieldTypeBoolean  FieldType = "Boolean"
	FieldTypeLongText FieldType = "LongText"
	FieldTypeCurrency FieldType = "Currency"
	FieldTypeUserList FieldType = "UserList"
)

// FieldTypes lists every supported field type.
var FieldTypes = []FieldType{
	FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean,
	FieldTypeLongText, FieldTypeCurrency, FieldTypeUserList,
}

// Valid reports whether t is a supported field type.
func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// Names of the fields every new project starts with.
const (
	DefaultFieldFilename     = "Filename"
	DefaultFieldDateCreated  = "Date Created"
	DefaultFieldDateModified = "Date Modified"
)

// CustomField is a project-scoped metadata field attached to documents.
// RoleVisibility holds the raw stored text; use Visibility to interpret it.
type CustomField struct {
	ID              string    `gorm:"column:id;primaryKey" json:"id"`
	ProjectID       string    `gorm:"column:project_id" json:"project_id"`
	Name            string    `gorm:"column:name" json:"name"`
	Description     *string   `gorm:"column:description" json:"description,omitempty"`
	FieldType       FieldType `gorm:"column:field_type" json:"field_type"`
	IsRequired      bool      `gorm:"column:is_required" json:"is_required"`
	IsDefault       bool      `gorm:"column:is_default" json:"is_default"`
	DefaultValue    *string   `gorm:"column:default_value" json:"default_value,omitempty"`
	Order           int       `gorm:"column:field_order" json:"order"`
	RoleVisibility  *string   `gorm:"column:role_visibility" json:"role_visibility,omitempty"`
	UserListOptions StringSet `gorm:"column:user_list_options" json:"user_list_options,omitempty"`
	IsRemovable     bool      `gorm:"column:is_removable" json:"is_removable"`
	Audit
}

func (CustomField) TableName() string { return "custom_fields" }

// VisibilityAll is the legacy marker for an unrestricted field.
const VisibilityAll = "all"

// Visibility is the interpreted form of CustomField.RoleVisibility.
// When Restricted is set and Roles is empty the field is visible to Super
// Admin only; this covers both an explicit empty set and unreadable text.
type Visibility struct {
	Restricted bool
	Roles      StringSet
	// Invalid is set when the stored text could not be decoded.
	Invalid bool
}

// ParseVisibility interprets stored role visibility text. NULL, blank and
// "all" mean visible to everyone.
func ParseVisibility(raw *string) Visibility {
	if raw == nil {
		return Visibility{}
	}
	s := strings.TrimSpace(*raw)
	if s == "" || strings.EqualFold(s, VisibilityAll) {
		return Visibility{}
	}
	roles, err := ParseStringSet(s)
	if err != nil {
		return Visibility{Restricted: true, Roles: StringSet{}, Invalid: true}
	}
	return Visibility{Restricted: true, Roles: roles}
}

// EncodeVisibility is the inverse of ParseVisibility for a role set. A nil set
// clears the restriction.
func EncodeVisibility(roles StringSet) *string {
	if roles == nil {
		return nil
	}
	s := roles.Encode()
	return &s
}

// Visibility returns the parsed visibility of the field.
func (f CustomField) Visibility() Visibility {
	return ParseVisibility(f.RoleVisibility)
}
