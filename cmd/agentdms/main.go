package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentdms/admin/server"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "agentdms",
		Short:         "AgentDMS administration backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		server.NewLogger(server.GetConfig().Log).WithError(err).Error("command failed")
		os.Exit(1)
	}
}
