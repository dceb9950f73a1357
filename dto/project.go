package dto

import (
	"time"

	"github.com/agentdms/admin/models"
)

// FieldResponse represents a custom field. RoleVisibility is null for an
// unrestricted field and an empty list for a Super Admin only field.
type FieldResponse struct {
	ID              string           `json:"id"`
	ProjectID       string           `json:"project_id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	FieldType       models.FieldType `json:"field_type"`
	IsRequired      bool             `json:"is_required"`
	IsDefault       bool             `json:"is_default"`
	DefaultValue    *string          `json:"default_value,omitempty"`
	Order           int              `json:"order"`
	RoleVisibility  []string         `json:"role_visibility"`
	UserListOptions []string         `json:"user_list_options,omitempty"`
	IsRemovable     bool             `json:"is_removable"`
}

func FromField(f models.CustomField) FieldResponse {
	resp := FieldResponse{
		ID:           f.ID,
		ProjectID:    f.ProjectID,
		Name:         f.Name,
		Description:  f.Description,
		FieldType:    f.FieldType,
		IsRequired:   f.IsRequired,
		IsDefault:    f.IsDefault,
		DefaultValue: f.DefaultValue,
		Order:        f.Order,
		IsRemovable:  f.IsRemovable,
	}
	if v := f.Visibility(); v.Restricted {
		resp.RoleVisibility = append([]string{}, v.Roles...)
	}
	if len(f.UserListOptions) > 0 {
		resp.UserListOptions = append([]string{}, f.UserListOptions...)
	}
	return resp
}

func FromFields(fields []models.CustomField) []FieldResponse {
	out := make([]FieldResponse, len(fields))
	for i, f := range fields {
		out[i] = FromField(f)
	}
	return out
}

// ProjectResponse represents a project. Fields is only populated on detail
// reads and already filtered to what the caller may see.
type ProjectResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	FileName    *string         `json:"file_name,omitempty"`
	IsActive    bool            `json:"is_active"`
	IsArchived  bool            `json:"is_archived"`
	Fields      []FieldResponse `json:"fields,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	ModifiedAt  time.Time       `json:"modified_at"`
	ModifiedBy  *string         `json:"modified_by,omitempty"`
}

func FromProject(p models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		FileName:    p.FileName,
		IsActive:    p.IsActive,
		IsArchived:  p.IsArchived,
		CreatedAt:   p.CreatedAt,
		ModifiedAt:  p.ModifiedAt,
		ModifiedBy:  p.ModifiedBy,
	}
	if len(p.Fields) > 0 {
		resp.Fields = FromFields(p.Fields)
	}
	return resp
}

func FromProjects(projects []models.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = FromProject(p)
	}
	return out
}

// RestrictionResponse represents a role's value restriction on a field.
type RestrictionResponse struct {
	ID            string   `json:"id"`
	RoleID        string   `json:"role_id"`
	CustomFieldID string   `json:"custom_field_id"`
	Values        []string `json:"values"`
	IsAllowList   bool     `json:"is_allow_list"`
	Version       int      `json:"version"`
}

func FromRestriction(r models.RoleFieldValueRestriction) RestrictionResponse {
	values := []string(r.Values)
	if values == nil {
		values = []string{}
	}
	return RestrictionResponse{
		ID:            r.ID,
		RoleID:        r.RoleID,
		CustomFieldID: r.CustomFieldID,
		Values:        values,
		IsAllowList:   r.IsAllowList,
		Version:       r.Version,
	}
}

func FromRestrictions(rs []models.RoleFieldValueRestriction) []RestrictionResponse {
	out := make([]RestrictionResponse, len(rs))
	for i, r := range rs {
		out[i] = FromRestriction(r)
	}
	return out
}
