// Package fields decides which custom fields a role set may see and which
// values it may write.
package fields

import (
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/permission"
)

// IsVisible reports whether field is visible to roles.
//
// Unrestricted fields are visible to everyone, the empty role set included.
// A restricted field is visible when roles intersects its visibility set; a
// restricted field with an empty or unreadable set is visible to Super Admin
// only. Super Admin sees every field.
func IsVisible(field models.CustomField, roles permission.RoleSet) bool {
	v := field.Visibility()
	if !v.Restricted {
		return true
	}
	if roles.SuperAdmin {
		return true
	}
	if len(v.Roles) == 0 {
		return false
	}
	return v.Roles.Intersects(roles.IDs)
}

// FilterVisible returns the visible fields, keeping their order.
func FilterVisible(fields []models.CustomField, roles permission.RoleSet) []models.CustomField {
	out := make([]models.CustomField, 0, len(fields))
	for _, f := range fields {
		if IsVisible(f, roles) {
			out = append(out, f)
		}
	}
	return out
}
