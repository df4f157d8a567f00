package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rondasapi/internal/database/migration"
)

// InitDatabaseCommands registers "migrate".
func InitDatabaseCommands(rootCmd *cobra.Command) {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema when it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := migration.EnsureMigrated(ctx, env.db, env.log, env.cfg.Database.Host); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
	rootCmd.AddCommand(migrateCmd)
}
