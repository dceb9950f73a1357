package migrate

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// migrationsFS holds embedded SQL migrations in migrate/sql.
//
//go:embed sql/*.sql
var migrationsFS embed.FS

// Options defines how to run migrations.
type Options struct {
	Driver  string       // sqlite or postgres
	DSN     string       // e.g. ./agentdms.db for sqlite, or a full postgres DSN
	Command string       // up, down, status, version, up-to, down-to, redo, reset
	Target  int64        // used with up-to/down-to
	Logger  goose.Logger // optional logger
}

// Run executes migrations based on provided options. If Driver or DSN are empty, it is a no-op.
func Run(opts Options) error {
	if strings.TrimSpace(opts.Driver) == "" || strings.TrimSpace(opts.DSN) == "" {
		return nil
	}
	return Exec(migrationsFS, "schema_migrations", opts)
}

// Dialect maps a database/sql driver name to the goose dialect.
func Dialect(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return "postgres"
	}
}

// Exec runs a goose command over the sql directory of fsys, tracking versions
// in table. The seed package shares it with a separate table.
func Exec(fsys embed.FS, table string, opts Options) error {
	if opts.Logger != nil {
		goose.SetLogger(opts.Logger)
	}
	goose.SetBaseFS(fsys)
	goose.SetTableName(table)
	if err := goose.SetDialect(Dialect(opts.Driver)); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	db, err := sql.Open(driverName(opts.Driver), opts.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	dir := "sql"
	switch strings.ToLower(strings.TrimSpace(opts.Command)) {
	case "", "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	case "version":
		return goose.Version(db, dir)
	case "up-to":
		return goose.UpTo(db, dir, opts.Target)
	case "down-to":
		return goose.DownTo(db, dir, opts.Target)
	case "redo":
		return goose.Redo(db, dir)
	case "reset":
		return goose.Reset(db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s", opts.Command)
	}
}

// driverName returns the registered database/sql driver for a configured
// provider. modernc registers itself as "sqlite".
func driverName(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return "postgres"
	}
}
