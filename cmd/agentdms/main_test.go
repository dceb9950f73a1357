package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "migrate", "seed"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
}

func TestMigrateFlagsOverrideConfig(t *testing.T) {
	f := migrateFlags{driver: "postgres", dsn: "postgres://localhost/x", target: 3}
	opts := f.options("up-to")
	require.Equal(t, "postgres", opts.Driver)
	require.Equal(t, "postgres://localhost/x", opts.DSN)
	require.Equal(t, "up-to", opts.Command)
	require.EqualValues(t, 3, opts.Target)
}

func TestCommandArgDefaultsToUp(t *testing.T) {
	require.Equal(t, "up", commandArg(nil))
	require.Equal(t, "status", commandArg([]string{"status"}))
}
