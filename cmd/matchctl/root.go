package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/artem13815/resumematch/pkg/config"
	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/storage/postgres"
)

const app = "matchctl"

var (
	debug    bool
	jsonLogs bool
	cfg      config.Config

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "matchctl manages the resumematch database and scores documents offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cfg = config.Load()
			lc := logger.Config{Level: cfg.LogLevel, Format: "pretty"}
			if debug {
				lc.Level = "debug"
			}
			if jsonLogs {
				lc.Format = "json"
			}
			logger.Init(lc)
		},
	}
)

// Execute runs the root command and logs a failure.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Error().Err(err).Msg(app + " failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
}

// connect opens the pool configured by DATABASE_URL.
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
}
