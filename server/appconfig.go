package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/agentdms/admin/email"
	"github.com/agentdms/admin/store"
)

// AppConfig defines application configuration loaded from files and environment.
type AppConfig struct {
	Env       string               `koanf:"env"`
	HTTP      HTTPConfig           `koanf:"http"`
	Database  store.DatabaseConfig `koanf:"database"`
	JWT       JWTConfig            `koanf:"jwt"`
	KV        store.KVConfig       `koanf:"kv"`
	Bootstrap BootstrapConfig      `koanf:"bootstrap"`
	Log       LogConfig            `koanf:"log"`
	Migrate   MigrateConfig        `koanf:"migrate"`
	Email     email.Config         `koanf:"email"`
	Reset     ResetConfig          `koanf:"reset"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

type JWTConfig struct {
	Secret   string        `koanf:"secret"`
	Issuer   string        `koanf:"issuer"`
	Audience string        `koanf:"audience"`
	TTL      time.Duration `koanf:"ttl"`
}

// BootstrapConfig seeds the immutable super admin on first start.
type BootstrapConfig struct {
	SuperAdminEmail    string `koanf:"super_admin_email"`
	SuperAdminPassword string `koanf:"super_admin_password"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text or json
}

type MigrateConfig struct {
	OnStart     bool `koanf:"on_start"`
	SeedOnStart bool `koanf:"seed_on_start"`
}

type ResetConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

var (
	cfgOnce sync.Once
	cfgInst *AppConfig
)

// GetConfig loads and returns the singleton AppConfig. Loading order:
// 1) config/config.yaml (optional)
// 2) config/config.<APP_ENV>.yaml (optional), APP_ENV defaults to "local"
// 3) Environment variables with prefix AGENTDMS_ mapped using __ as nested separator, e.g. AGENTDMS_DATABASE__DSN
func GetConfig() *AppConfig {
	cfgOnce.Do(func() {
		cfgInst = LoadConfig()
	})
	return cfgInst
}

// LoadConfig reads configuration without caching it.
func LoadConfig() *AppConfig {
	k := koanf.New(".")
	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "config"
	}
	base := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(base); err == nil {
		if err := k.Load(file.Provider(base), yaml.Parser()); err != nil {
			log.Printf("config: failed loading base: %v", err)
		}
	}
	envName := os.Getenv("APP_ENV")
	if envName == "" {
		envName = "local"
	}
	envFile := filepath.Join(configDir, "config."+envName+".yaml")
	if _, err := os.Stat(envFile); err == nil {
		if err := k.Load(file.Provider(envFile), yaml.Parser()); err != nil {
			log.Printf("config: failed loading env file: %v", err)
		}
	}
	// AGENTDMS_DATABASE__DSN -> database.dsn
	_ = k.Load(env.Provider("AGENTDMS_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "AGENTDMS_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)

	c := DefaultConfig()
	if err := k.Unmarshal("", c); err != nil {
		log.Printf("config: unmarshal error: %v", err)
	}
	if c.Env == "" {
		c.Env = envName
	}
	return c
}

// DefaultConfig returns the settings used when nothing is configured: an
// in-memory KV, console email and a local sqlite database.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		HTTP:     HTTPConfig{Addr: ":8080"},
		Database: store.DatabaseConfig{Driver: "sqlite", DSN: "agentdms.db"},
		JWT:      JWTConfig{Issuer: "agentdms", TTL: 24 * time.Hour},
		KV:       store.KVConfig{Backend: "memory"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Migrate:  MigrateConfig{OnStart: true, SeedOnStart: true},
		Email:    email.Config{Provider: "console", AppName: "AgentDMS"},
		Reset:    ResetConfig{TTL: store.DefaultResetTTL},
	}
}
