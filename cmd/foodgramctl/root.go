package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foodgramctl",
		Short: "Operator tool for the Foodgram backend",
		Long: `foodgramctl runs operator tasks against the Foodgram database.

Connection settings come from the same DB_* and REDIS_* environment
variables as the API server (a .env file is loaded when present).`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newLoadIngredientsCmd(),
		newIssueTokenCmd(),
		newVersionCmd(),
	)
	return root
}
