package store

import (
	"context"
	"testing"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/permission"
	"github.com/agentdms/admin/test/testdb"
	"github.com/stretchr/testify/require"
)

func TestSeededRoles(t *testing.T) {
	db := testdb.Open(t)
	rs := NewRoleStore(db)
	ctx := context.Background()

	roles, err := rs.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	sa, err := rs.GetRole(ctx, testdb.SuperAdminRoleID)
	require.NoError(t, err)
	require.True(t, sa.IsSuperAdmin())
	require.True(t, sa.IsImmutable)

	admin, err := rs.GetRole(ctx, testdb.AdministratorRoleID)
	require.NoError(t, err)
	require.Contains(t, admin.Permissions, string(permission.WorkspaceAdmin))
}

func TestRoleCRUDAndPermissions(t *testing.T) {
	db := testdb.Open(t)
	rs := NewRoleStore(db)
	ctx := context.Background()

	role, err := rs.CreateRole(ctx, models.Role{Name: "Reviewer", Permissions: []string{"document.view", "document.annotate"}}, "tester")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"document.annotate", "document.view"}, role.Permissions)
	require.Nil(t, role.SystemKey)

	_, err = rs.CreateRole(ctx, models.Role{Name: "Reviewer"}, "tester")
	require.ErrorIs(t, err, errors.ErrConflict)

	require.NoError(t, rs.GrantPermission(ctx, role.ID, "document.print", "tester"))
	require.NoError(t, rs.GrantPermission(ctx, role.ID, "document.print", "tester"))
	require.NoError(t, rs.RevokePermission(ctx, role.ID, "document.view"))

	got, err := rs.RolesByIDs(ctx, []string{role.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.ElementsMatch(t, []string{"document.annotate", "document.print"}, got[0].Permissions)

	name := "Senior Reviewer"
	updated, err := rs.UpdateRole(ctx, role.ID, &name, nil, []string{"document.edit"}, "tester")
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, []string{"document.edit"}, updated.Permissions)

	err = rs.GrantPermission(ctx, role.ID, "no.such", "tester")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSystemRoleIsProtected(t *testing.T) {
	db := testdb.Open(t)
	rs := NewRoleStore(db)
	ctx := context.Background()

	require.ErrorIs(t, rs.DeleteRole(ctx, testdb.SuperAdminRoleID), errors.ErrImmutable)
	name := "Root"
	_, err := rs.UpdateRole(ctx, testdb.SuperAdminRoleID, &name, nil, nil, "tester")
	require.ErrorIs(t, err, errors.ErrImmutable)
	require.ErrorIs(t, rs.RevokePermission(ctx, testdb.SuperAdminRoleID, "document.view"), errors.ErrImmutable)
}

func TestSuperAdminGetsNewPermissions(t *testing.T) {
	db := testdb.Open(t)
	rs := NewRoleStore(db)
	ps := NewPermissionStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := ps.CreatePermission(ctx, "report.export", nil, "tester")
	require.NoError(t, err)

	u, err := users.CreateUser(ctx, NewUser{Email: "sa@example.com", Password: "pw", RoleIDs: []string{testdb.SuperAdminRoleID}}, "tester")
	require.NoError(t, err)
	roles, err := rs.RolesForUser(ctx, u.ID)
	require.NoError(t, err)

	svc := permission.NewService(rs, nil)
	require.NoError(t, svc.Authorize(ctx, permission.Principal{UserID: u.ID, Roles: roles}, "report.export"))
}

func TestDeleteRoleCascades(t *testing.T) {
	db := testdb.Open(t)
	rs := NewRoleStore(db)
	restr := NewRestrictionStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	role, err := rs.CreateRole(ctx, models.Role{Name: "Temp", Permissions: []string{"document.view"}}, "tester")
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, NewUser{Email: "temp@example.com", Password: "pw", RoleIDs: []string{role.ID}}, "tester")
	require.NoError(t, err)
	_, err = restr.Create(ctx, models.RoleFieldValueRestriction{
		RoleID: role.ID, CustomFieldID: "field-sample-filename", Values: models.NewStringSet("a"), IsAllowList: true,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, rs.DeleteRole(ctx, role.ID))

	rows, err := restr.ListForField(ctx, "field-sample-filename")
	require.NoError(t, err)
	require.Empty(t, rows)

	var n int64
	require.NoError(t, db.Model(&models.UserRole{}).Where("role_id = ?", role.ID).Count(&n).Error)
	require.Zero(t, n)
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&n).Error)
	require.Zero(t, n)

	_, err = rs.GetRole(ctx, role.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)
}
