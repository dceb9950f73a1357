package store

import (
	"context"
	"testing"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/test/testdb"
	"github.com/stretchr/testify/require"
)

func TestCreateAndAuthenticateUser(t *testing.T) {
	db := testdb.Open(t)
	us := NewUserStore(db)
	ctx := context.Background()

	u, err := us.CreateUser(ctx, NewUser{Email: " Ann@Example.com ", Password: "secret", RoleIDs: []string{testdb.UserRoleID}}, "tester")
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", u.Email)
	require.Equal(t, "ann", u.Username)
	require.NotEqual(t, "secret", u.PasswordHash)

	got, err := us.Authenticate(ctx, "ANN@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = us.Authenticate(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	_, err = us.Authenticate(ctx, "nobody@example.com", "secret")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, err = us.CreateUser(ctx, NewUser{Email: "ann@example.com", Password: "x"}, "tester")
	require.ErrorIs(t, err, errors.ErrConflict)

	require.NoError(t, us.SetPassword(ctx, u.ID, "changed"))
	_, err = us.Authenticate(ctx, "ann@example.com", "changed")
	require.NoError(t, err)
}

func TestImmutableUser(t *testing.T) {
	db := testdb.Open(t)
	us := NewUserStore(db)
	rs := NewRoleStore(db)
	ctx := context.Background()

	sa, created, err := us.EnsureSuperAdmin(ctx, "root@example.com", "pw")
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, sa.IsImmutable)

	again, created, err := us.EnsureSuperAdmin(ctx, "other@example.com", "pw")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, sa.ID, again.ID)

	require.ErrorIs(t, us.DeleteUser(ctx, sa.ID), errors.ErrImmutable)
	require.ErrorIs(t, us.RevokeRole(ctx, sa.ID, testdb.SuperAdminRoleID), errors.ErrImmutable)

	roles, err := rs.RolesForUser(ctx, sa.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	require.True(t, roles[0].IsSuperAdmin())
}

func TestAssignAndRevokeRole(t *testing.T) {
	db := testdb.Open(t)
	us := NewUserStore(db)
	rs := NewRoleStore(db)
	ctx := context.Background()

	u, err := us.CreateUser(ctx, NewUser{Email: "bob@example.com", Password: "pw"}, "tester")
	require.NoError(t, err)

	require.NoError(t, us.AssignRole(ctx, u.ID, testdb.AdministratorRoleID, "tester"))
	require.NoError(t, us.AssignRole(ctx, u.ID, testdb.AdministratorRoleID, "tester"))
	require.ErrorIs(t, us.AssignRole(ctx, u.ID, "missing", "tester"), errors.ErrNotFound)

	roles, err := rs.RolesForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)

	require.NoError(t, us.RevokeRole(ctx, u.ID, testdb.AdministratorRoleID))
	require.ErrorIs(t, us.RevokeRole(ctx, u.ID, testdb.AdministratorRoleID), errors.ErrNotFound)

	require.NoError(t, us.DeleteUser(ctx, u.ID))
	_, err = us.GetUser(ctx, u.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)
}
