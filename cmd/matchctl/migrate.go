package main

import (
	"github.com/spf13/cobra"

	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		v, err := postgres.SchemaVersion(ctx, pool)
		if err != nil {
			return err
		}
		logger.Info().Int64("version", v).Msg("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
