package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rondasapi/internal/repository/postgres"
	"rondasapi/internal/service"
)

// InitUserCommands registers "user create" and "user approve".
func InitUserCommands(rootCmd *cobra.Command) {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator accounts",
	}

	var in service.RegisterInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an approved account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := service.NewAuthService(postgres.NewUserPostgres(env.db), nil, env.log)
			in.IsApproved = true
			u, err := svc.Register(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", u.ID, u.Email)
			return nil
		},
	}
	createCmd.Flags().StringVar(&in.Email, "email", "", "Login email")
	createCmd.Flags().StringVar(&in.Username, "username", "", "Display name")
	createCmd.Flags().StringVar(&in.Password, "password", "", "Initial password (min 6 characters)")
	createCmd.Flags().BoolVar(&in.IsAdmin, "admin", false, "Grant admin rights")
	createCmd.Flags().BoolVar(&in.IsSupervisor, "supervisor", false, "Grant supervisor rights")
	for _, f := range []string{"email", "username", "password"} {
		_ = createCmd.MarkFlagRequired(f)
	}

	approveCmd := &cobra.Command{
		Use:   "approve <email>",
		Short: "Approve a pending account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := service.NewAuthService(postgres.NewUserPostgres(env.db), nil, env.log)
			if err := svc.Approve(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved %s\n", args[0])
			return nil
		},
	}

	userCmd.AddCommand(createCmd, approveCmd)
	rootCmd.AddCommand(userCmd)
}
