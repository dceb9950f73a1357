package main

import (
	"github.com/spf13/cobra"

	"github.com/agentdms/admin/migrate"
	"github.com/agentdms/admin/seed"
	"github.com/agentdms/admin/server"
)

type migrateFlags struct {
	driver string
	dsn    string
	target int64
}

func (f *migrateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "database driver (sqlite or postgres), defaults to database.driver")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "database DSN, defaults to database.dsn")
	cmd.Flags().Int64Var(&f.target, "target", 0, "target version for up-to and down-to")
}

func (f *migrateFlags) options(command string) migrate.Options {
	cfg := server.GetConfig()
	opts := migrate.Options{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.DSN,
		Command: command,
		Target:  f.target,
		Logger:  server.NewLogger(cfg.Log),
	}
	if f.driver != "" {
		opts.Driver = f.driver
	}
	if f.dsn != "" {
		opts.DSN = f.dsn
	}
	return opts
}

func commandArg(args []string) string {
	if len(args) == 0 {
		return "up"
	}
	return args[0]
}

func newMigrateCommand() *cobra.Command {
	var flags migrateFlags
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status|version|up-to|down-to|redo|reset]",
		Short: "Apply schema migrations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate.Run(flags.options(commandArg(args)))
		},
	}
	flags.register(cmd)
	return cmd
}

func newSeedCommand() *cobra.Command {
	var flags migrateFlags
	cmd := &cobra.Command{
		Use:   "seed [up|down|status|version|up-to|down-to|redo|reset]",
		Short: "Load baseline roles, permissions and the sample project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed.Run(flags.options(commandArg(args)))
		},
	}
	flags.register(cmd)
	return cmd
}
