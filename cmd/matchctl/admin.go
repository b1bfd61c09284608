package main

import (
	"github.com/spf13/cobra"

	"github.com/artem13815/resumematch/pkg/logger"
	pgrepo "github.com/artem13815/resumematch/pkg/repository/postgres"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

func setAdminCmd(use, short string, isAdmin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pgrepo.NewUserRepository(pool).SetAdmin(ctx, args[0], isAdmin); err != nil {
				return err
			}
			logger.Info().Str("email", args[0]).Bool("admin", isAdmin).Msg("user updated")
			return nil
		},
	}
}

func init() {
	adminCmd.AddCommand(setAdminCmd("grant", "Give a user admin rights", true))
	adminCmd.AddCommand(setAdminCmd("revoke", "Take admin rights away", false))
	rootCmd.AddCommand(adminCmd)
}
