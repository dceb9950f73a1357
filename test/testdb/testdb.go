// Package testdb provides a migrated and seeded SQLite database for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/agentdms/admin/migrate"
	"github.com/agentdms/admin/seed"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Seeded identifiers.
const (
	SuperAdminRoleID    = "role-super-admin"
	AdministratorRoleID = "role-administrator"
	UserRoleID          = "role-user"
	SampleProjectID     = "project-sample"
)

// Open returns a fresh database in a temp dir with migrations and seeds
// applied. Goose keeps global state, so callers must not run in parallel.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentdms.db")
	opts := migrate.Options{Driver: "sqlite", DSN: path, Command: "up", Logger: goose.NopLogger()}
	if err := migrate.Run(opts); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(opts); err != nil {
		t.Fatalf("seed: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
