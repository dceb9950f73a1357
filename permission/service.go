package permission

import (
	"context"
	"fmt"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
)

// RoleSource loads roles with their current permissions.
type RoleSource interface {
	RolesByIDs(ctx context.Context, ids []string) ([]models.Role, error)
}

// Recorder observes authorization decisions. It may be nil.
type Recorder interface {
	RecordDecision(key Key, allowed bool)
}

// Decide reports whether roles grant key: the union of the roles'
// permissions covers key, or one of the roles is Super Admin.
func Decide(roles []models.Role, key Key) bool {
	for _, r := range roles {
		if r.IsSuperAdmin() {
			return true
		}
		if HasValidPermissions(r.Permissions, key) {
			return true
		}
	}
	return false
}

// Service checks permissions against the persisted role mapping.
type Service struct {
	Roles    RoleSource
	Recorder Recorder
}

// NewService creates a Service reading from roles.
func NewService(roles RoleSource, rec Recorder) *Service {
	return &Service{Roles: roles, Recorder: rec}
}

// Authorize returns nil when p may perform key and ErrUnauthorized otherwise.
// Role permissions are re-read on every call.
func (s *Service) Authorize(ctx context.Context, p Principal, key Key) error {
	ids := p.RoleIDs()
	if len(ids) == 0 {
		s.record(key, false)
		return errors.ErrUnauthorized
	}
	roles, err := s.Roles.RolesByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	if !Decide(roles, key) {
		s.record(key, false)
		return errors.ErrUnauthorized
	}
	s.record(key, true)
	return nil
}

// HasPermission is Authorize reduced to a boolean; load failures deny.
func (s *Service) HasPermission(ctx context.Context, p Principal, key Key) bool {
	return s.Authorize(ctx, p, key) == nil
}

func (s *Service) record(key Key, allowed bool) {
	if s.Recorder != nil {
		s.Recorder.RecordDecision(key, allowed)
	}
}
