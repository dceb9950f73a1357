package fields

import (
	"context"
	"fmt"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/permission"
)

// IsValueAllowed reports whether roles may assign value to a field carrying
// the given restriction rows.
//
// A role without a row imposes nothing. With a row, an allow list requires the
// value to be listed and a deny list requires it not to be. The value is
// allowed when any role allows it. An empty role set is refused as soon as the
// field has any restriction. value is compared in its canonical form.
func IsValueAllowed(roles permission.RoleSet, value string, restrictions []models.RoleFieldValueRestriction) bool {
	value = models.CanonicalValue(value)
	if roles.Empty() {
		return len(restrictions) == 0
	}
	byRole := make(map[string]models.RoleFieldValueRestriction, len(restrictions))
	for _, r := range restrictions {
		byRole[r.RoleID] = r
	}
	for _, id := range roles.IDs {
		r, ok := byRole[id]
		if !ok || r.Permits(value) {
			return true
		}
	}
	return false
}

// RestrictionSource loads the restriction rows of a field.
type RestrictionSource interface {
	ListForField(ctx context.Context, fieldID string) ([]models.RoleFieldValueRestriction, error)
}

// Recorder observes value checks. It may be nil.
type Recorder interface {
	RecordValueCheck(allowed bool)
}

// Evaluator combines visibility, value validation and restriction checks for
// writes.
type Evaluator struct {
	Restrictions RestrictionSource
	Recorder     Recorder
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(src RestrictionSource, rec Recorder) *Evaluator {
	return &Evaluator{Restrictions: src, Recorder: rec}
}

// CheckValue canonicalizes value and returns the form to store when roles
// may write it to field. Hidden fields fail with ErrFieldNotVisible,
// malformed values with ErrInvalidRequest and restricted values with
// ErrValueNotAllowed.
func (e *Evaluator) CheckValue(ctx context.Context, field models.CustomField, roles permission.RoleSet, value string) (string, error) {
	if !IsVisible(field, roles) {
		return "", errors.ErrFieldNotVisible
	}
	value = models.CanonicalValue(value)
	if err := ValidateValue(field, value); err != nil {
		return "", err
	}
	rows, err := e.Restrictions.ListForField(ctx, field.ID)
	if err != nil {
		return "", fmt.Errorf("load restrictions: %w", err)
	}
	allowed := IsValueAllowed(roles, value, rows)
	if e.Recorder != nil {
		e.Recorder.RecordValueCheck(allowed)
	}
	if !allowed {
		return "", errors.ErrValueNotAllowed
	}
	return value, nil
}
