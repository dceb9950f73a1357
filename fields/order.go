package fields

import (
	"sort"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
)

// Sort orders fields by Order, then by ID, in place.
func Sort(fields []models.CustomField) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].ID < fields[j].ID
	})
}

// CheckRemovable fails with ErrFieldNotRemovable for system fields. No
// permission overrides it.
func CheckRemovable(field models.CustomField) error {
	if !field.IsRemovable {
		return errors.ErrFieldNotRemovable
	}
	return nil
}
