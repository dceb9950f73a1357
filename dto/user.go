package dto

import (
	"time"

	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/permission"
)

// RoleSummary is the compact role reference embedded in user responses.
type RoleSummary struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	SystemKey *models.SystemRole `json:"system_key,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	IsImmutable bool          `json:"is_immutable"`
	Roles       []RoleSummary `json:"roles"`
	Permissions []string      `json:"permissions"`
	CreatedAt   time.Time     `json:"created_at"`
	ModifiedAt  time.Time     `json:"modified_at"`
}

// FromUser converts a models.User and its roles to a UserResponse.
// Permissions is the de-duplicated union over roles.
func FromUser(u *models.User, roles []models.Role) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsImmutable: u.IsImmutable,
		Roles:       make([]RoleSummary, 0, len(roles)),
		CreatedAt:   u.CreatedAt,
		ModifiedAt:  u.ModifiedAt,
	}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, RoleSummary{ID: r.ID, Name: r.Name, SystemKey: r.SystemKey})
	}
	resp.Permissions = EffectivePermissions(roles)
	return resp
}

// EffectivePermissions lists the permission names granted by roles. A Super
// Admin role contributes every built-in key.
func EffectivePermissions(roles []models.Role) []string {
	var names []string
	for _, r := range roles {
		if r.IsSuperAdmin() {
			for _, k := range permission.Builtin {
				names = append(names, string(k))
			}
		}
		names = append(names, r.Permissions...)
	}
	return []string(models.NewStringSet(names...))
}
