package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	cfg := LoadConfig()

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "memory", cfg.KV.Backend)
	require.Equal(t, 24*time.Hour, cfg.JWT.TTL)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	base := "http:\n  addr: \":9000\"\ndatabase:\n  driver: postgres\n  dsn: postgres://base\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o600))
	staging := "jwt:\n  issuer: staging\n  ttl: 1h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(staging), 0o600))

	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("AGENTDMS_DATABASE__DSN", "postgres://env")
	t.Setenv("AGENTDMS_KV__BACKEND", "valkey")

	cfg := LoadConfig()
	require.Equal(t, "staging", cfg.Env)
	require.Equal(t, ":9000", cfg.HTTP.Addr)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "postgres://env", cfg.Database.DSN)
	require.Equal(t, "staging", cfg.JWT.Issuer)
	require.Equal(t, time.Hour, cfg.JWT.TTL)
	require.Equal(t, "valkey", cfg.KV.Backend)
}
