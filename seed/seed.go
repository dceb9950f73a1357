package seed

import (
	"embed"
	"strings"

	"github.com/agentdms/admin/migrate"
)

// seedFS holds embedded SQL seed files in seed/sql.
//
//go:embed sql/*.sql
var seedFS embed.FS

// Options defines how to run seed migrations.
type Options = migrate.Options

// Run executes seed migrations based on provided options. If Driver or DSN are empty, it is a no-op.
// Seeds are tracked in their own table so they can be rerun independently of the schema.
func Run(opts Options) error {
	if strings.TrimSpace(opts.Driver) == "" || strings.TrimSpace(opts.DSN) == "" {
		return nil
	}
	return migrate.Exec(seedFS, "seed_migrations", opts)
}
