package permission

import "github.com/agentdms/admin/models"

// Principal is the authenticated actor of a request together with the roles
// resolved for it at request time.
type Principal struct {
	UserID string
	Email  string
	Roles  []models.Role
}

// RoleIDs returns the identifiers of the principal's roles.
func (p Principal) RoleIDs() []string {
	ids := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

// IsSuperAdmin reports whether any of the principal's roles is Super Admin.
func (p Principal) IsSuperAdmin() bool {
	for _, r := range p.Roles {
		if r.IsSuperAdmin() {
			return true
		}
	}
	return false
}

// RoleSet is the role input of the field evaluators.
func (p Principal) RoleSet() RoleSet {
	return RoleSet{IDs: models.NewStringSet(p.RoleIDs()...), SuperAdmin: p.IsSuperAdmin()}
}

// RoleSet is a set of role identifiers plus whether it contains Super Admin.
type RoleSet struct {
	IDs        models.StringSet
	SuperAdmin bool
}

// Empty reports whether the set holds no roles.
func (s RoleSet) Empty() bool { return len(s.IDs) == 0 }
