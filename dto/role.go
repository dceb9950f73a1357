package dto

import (
	"time"

	"github.com/agentdms/admin/models"
)

// RoleResponse represents a role and its granted permission names.
type RoleResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	SystemKey   *models.SystemRole `json:"system_key,omitempty"`
	IsImmutable bool               `json:"is_immutable"`
	Permissions []string           `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	ModifiedAt  time.Time          `json:"modified_at"`
}

func FromRole(r models.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		SystemKey:   r.SystemKey,
		IsImmutable: r.IsImmutable || r.SystemKey != nil,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		ModifiedAt:  r.ModifiedAt,
	}
}

func FromRoles(roles []models.Role) []RoleResponse {
	out := make([]RoleResponse, len(roles))
	for i, r := range roles {
		out[i] = FromRole(r)
	}
	return out
}

// PermissionResponse represents a permission in API responses.
type PermissionResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func FromPermissions(perms []models.Permission) []PermissionResponse {
	out := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		out[i] = PermissionResponse{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	return out
}
