package store

import (
	"context"
	"fmt"
	"time"

	"github.com/agentdms/admin/errors"
	valkey "github.com/valkey-io/valkey-go"
)

// ValkeyKV stores keys in Valkey (Redis-compatible) so that revocations and
// reset codes are shared by every server process.
type ValkeyKV struct {
	client valkey.Client
	prefix string
}

// NewValkeyKV creates a Valkey-backed KV.
// addr example: "127.0.0.1:6379"; prefix helps namespace keys.
func NewValkeyKV(addr string, prefix string) (*ValkeyKV, error) {
	if addr == "" {
		return nil, fmt.Errorf("valkey address is required")
	}
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}
	if prefix == "" {
		prefix = "agentdms:"
	}
	return &ValkeyKV{client: cli, prefix: prefix}, nil
}

func (v *ValkeyKV) key(k string) string { return v.prefix + k }

func (v *ValkeyKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	set := v.client.B().Set().Key(v.key(key)).Value(value)
	if ttl > 0 {
		return v.client.Do(ctx, set.Ex(ttl).Build()).Error()
	}
	return v.client.Do(ctx, set.Build()).Error()
}

func (v *ValkeyKV) Get(ctx context.Context, key string) (string, error) {
	s, err := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return "", errors.ErrNotFound
	}
	return s, err
}

func (v *ValkeyKV) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(v.key(key)).Build()).Error()
}

func (v *ValkeyKV) Close() error {
	v.client.Close()
	return nil
}
