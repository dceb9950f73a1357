package models

// Project groups documents and the custom fields describing them.
type Project struct {
	ID          string        `gorm:"column:id;primaryKey" json:"id"`
	Name        string        `gorm:"column:name" json:"name"`
	Description *string       `gorm:"column:description" json:"description,omitempty"`
	FileName    *string       `gorm:"column:file_name" json:"file_name,omitempty"`
	IsActive    bool          `gorm:"column:is_active" json:"is_active"`
	IsArchived  bool          `gorm:"column:is_archived" json:"is_archived"`
	Fields      []CustomField `gorm:"-" json:"fields,omitempty"`
	Audit
}

func (Project) TableName() string { return "projects" }

// ProjectRole grants a role coarse access to a single project.
type ProjectRole struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	ProjectID string `gorm:"column:project_id" json:"project_id"`
	RoleID    string `gorm:"column:role_id" json:"role_id"`
	CanView   bool   `gorm:"column:can_view" json:"can_view"`
	CanEdit   bool   `gorm:"column:can_edit" json:"can_edit"`
	CanDelete bool   `gorm:"column:can_delete" json:"can_delete"`
	Audit
}

func (ProjectRole) TableName() string { return "project_roles" }
