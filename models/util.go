package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a new identifier as a hyphenless 32-char UUIDv4 string.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
