package permission

import (
	"context"
	"testing"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
)

type memRoles map[string]models.Role

func (m memRoles) RolesByIDs(_ context.Context, ids []string) ([]models.Role, error) {
	var out []models.Role
	for _, id := range ids {
		if r, ok := m[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func superAdmin() models.Role {
	key := models.SystemRoleSuperAdmin
	return models.Role{ID: "sa", Name: "Super Admin", SystemKey: &key}
}

func TestMatches(t *testing.T) {
	if !Matches(DocumentView, DocumentView) {
		t.Fatalf("exact match failed")
	}
	if !Matches("document.*", DocumentPrint) {
		t.Fatalf("wildcard should cover document.print")
	}
	if Matches("document.*", WorkspaceAdmin) {
		t.Fatalf("wildcard must not cover other prefixes")
	}
	if Matches(DocumentView, DocumentEdit) {
		t.Fatalf("different keys must not match")
	}
}

func TestKeyValid(t *testing.T) {
	for _, k := range []Key{"document.view", "document.*", "workspace.admin"} {
		if !k.Valid() {
			t.Fatalf("expected %s valid", k)
		}
	}
	for _, k := range []Key{"", "Document View", ".view", "document..view"} {
		if k.Valid() {
			t.Fatalf("expected %q invalid", k)
		}
	}
}

func TestDecideSuperAdminAllowsEverything(t *testing.T) {
	roles := []models.Role{superAdmin()}
	for _, k := range append(Builtin, "report.export", "anything.created.later") {
		if !Decide(roles, k) {
			t.Fatalf("super admin denied %s", k)
		}
	}
}

func TestDecideUnion(t *testing.T) {
	roles := []models.Role{
		{ID: "viewer", Permissions: []string{"document.view"}},
		{ID: "printer", Permissions: []string{"document.print"}},
	}
	if !Decide(roles, DocumentView) || !Decide(roles, DocumentPrint) {
		t.Fatalf("union of role permissions should allow both")
	}
	if Decide(roles, WorkspaceAdmin) {
		t.Fatalf("workspace.admin not granted by any role")
	}
}

func TestDecideNameIsNotSuperAdmin(t *testing.T) {
	roles := []models.Role{{ID: "x", Name: "Super Admin"}}
	if Decide(roles, WorkspaceAdmin) {
		t.Fatalf("role name must not grant super admin rights")
	}
}

func TestAuthorizeEmptyRoleSet(t *testing.T) {
	svc := NewService(memRoles{}, nil)
	err := svc.Authorize(context.Background(), Principal{UserID: "u"}, DocumentView)
	if !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizeReadsCurrentMapping(t *testing.T) {
	src := memRoles{"r": {ID: "r", Permissions: []string{"document.view"}}}
	svc := NewService(src, nil)
	p := Principal{UserID: "u", Roles: []models.Role{{ID: "r"}}}
	ctx := context.Background()

	if err := svc.Authorize(ctx, p, DocumentEdit); !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("expected denial before grant, got %v", err)
	}
	src["r"] = models.Role{ID: "r", Permissions: []string{"document.view", "document.edit"}}
	if err := svc.Authorize(ctx, p, DocumentEdit); err != nil {
		t.Fatalf("expected grant to be picked up, got %v", err)
	}
	src["r"] = models.Role{ID: "r"}
	if svc.HasPermission(ctx, p, DocumentView) {
		t.Fatalf("expected revoke to be picked up")
	}
}

type countRecorder struct{ allowed, denied int }

func (c *countRecorder) RecordDecision(_ Key, allowed bool) {
	if allowed {
		c.allowed++
	} else {
		c.denied++
	}
}

func TestAuthorizeRecordsDecisions(t *testing.T) {
	rec := &countRecorder{}
	src := memRoles{"sa": superAdmin()}
	svc := NewService(src, rec)
	p := Principal{Roles: []models.Role{{ID: "sa"}}}
	_ = svc.Authorize(context.Background(), p, WorkspaceAdmin)
	_ = svc.Authorize(context.Background(), Principal{}, WorkspaceAdmin)
	if rec.allowed != 1 || rec.denied != 1 {
		t.Fatalf("unexpected counts %+v", rec)
	}
}

func TestPrincipalRoleSet(t *testing.T) {
	p := Principal{Roles: []models.Role{{ID: "b"}, superAdmin(), {ID: "b"}}}
	rs := p.RoleSet()
	if !rs.SuperAdmin || len(rs.IDs) != 2 {
		t.Fatalf("unexpected role set %+v", rs)
	}
	if (Principal{}).RoleSet().Empty() != true {
		t.Fatalf("expected empty role set")
	}
}
