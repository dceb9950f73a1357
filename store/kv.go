package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agentdms/admin/errors"
	"github.com/tidwall/buntdb"
)

// KV is a short-lived key/value store for revoked token ids and password
// reset codes. Get returns errors.ErrNotFound for missing or expired keys.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// KVConfig selects the KV backend.
type KVConfig struct {
	Backend string `koanf:"backend"` // memory or valkey
	Addr    string `koanf:"addr"`
	Prefix  string `koanf:"prefix"`
}

// OpenKV returns the configured KV backend.
func OpenKV(cfg KVConfig) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "memory":
		return NewMemoryKV()
	case "valkey", "redis":
		return NewValkeyKV(cfg.Addr, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unsupported kv backend: %s", cfg.Backend)
	}
}

// MemoryKV keeps keys in an in-memory buntdb.
type MemoryKV struct {
	db *buntdb.DB
}

// NewMemoryKV opens an in-memory store.
func NewMemoryKV() (*MemoryKV, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, err
	}
	return &MemoryKV{db: db}, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	return m.db.Update(func(tx *buntdb.Tx) error {
		var opts *buntdb.SetOptions
		if ttl > 0 {
			opts = &buntdb.SetOptions{Expires: true, TTL: ttl}
		}
		_, _, err := tx.Set(key, value, opts)
		return err
	})
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	var value string
	err := m.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return "", errors.ErrNotFound
	}
	return value, err
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	return m.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
}

func (m *MemoryKV) Close() error { return m.db.Close() }
