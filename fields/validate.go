package fields

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ValidateValue checks that value is well formed for the field type. Empty
// values are accepted unless the field is required.
func ValidateValue(field models.CustomField, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		if field.IsRequired {
			return errors.InvalidRequestf("%s is required", field.Name)
		}
		return nil
	}
	switch field.FieldType {
	case models.FieldTypeNumber, models.FieldTypeCurrency:
		if !isFiniteNumber(v) {
			return errors.InvalidRequestf("%s must be a number", field.Name)
		}
	case models.FieldTypeDate:
		if !parsesAsDate(v) {
			return errors.InvalidRequestf("%s must be a date", field.Name)
		}
	case models.FieldTypeBoolean:
		if _, err := strconv.ParseBool(v); err != nil {
			return errors.InvalidRequestf("%s must be true or false", field.Name)
		}
	case models.FieldTypeUserList:
		if len(field.UserListOptions) > 0 && !field.UserListOptions.Contains(v) {
			return errors.InvalidRequestf("%s is not one of the options", field.Name)
		}
	}
	return nil
}

// isFiniteNumber accepts plain decimal numbers. NaN, infinities and hex
// floats are refused.
func isFiniteNumber(v string) bool {
	if strings.ContainsAny(v, "xXpP") {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
