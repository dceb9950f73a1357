package store

import (
	"context"
	"testing"
	"time"

	"github.com/agentdms/admin/errors"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	kv, err := OpenKV(KVConfig{Backend: "memory"})
	require.NoError(t, err)
	defer kv.Close()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "a", "1", 0))
	v, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "1", v)

	require.NoError(t, kv.Delete(ctx, "a"))
	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	require.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "short", "1", 50*time.Millisecond))
	time.Sleep(120 * time.Millisecond)
	_, err = kv.Get(ctx, "short")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestOpenKVUnknownBackend(t *testing.T) {
	_, err := OpenKV(KVConfig{Backend: "etcd"})
	require.Error(t, err)
}

func TestRevocationStore(t *testing.T) {
	kv, err := NewMemoryKV()
	require.NoError(t, err)
	defer kv.Close()
	rs := NewRevocationStore(kv)
	ctx := context.Background()

	revoked, err := rs.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, rs.RevokeToken(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = rs.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	// expired tokens need no entry
	require.NoError(t, rs.RevokeToken(ctx, "jti-2", time.Now().Add(-time.Minute)))
	revoked, err = rs.IsTokenRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestPasswordResetTokensAreSingleUse(t *testing.T) {
	kv, err := NewMemoryKV()
	require.NoError(t, err)
	defer kv.Close()
	ps := NewPasswordResetStore(kv, 0)
	ctx := context.Background()

	token, err := ps.CreateResetToken(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, token, 64)

	uid, err := ps.ConsumeResetToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)

	_, err = ps.ConsumeResetToken(ctx, token)
	require.ErrorIs(t, err, errors.ErrInvalidRequest)
}
