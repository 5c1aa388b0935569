package main

import (
	"context"
	"fmt"

	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	env        string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "liftlogctl",
		Short:         "liftlogctl runs maintenance tasks against the liftlog database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// secrets may also come from the environment directly
			_ = godotenv.Load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "development", "config environment [dev | prod]")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "./config.toml", "path for the TOML config file")

	rootCmd.AddCommand(
		newMigrateCmd(opts),
		newExercisesCmd(opts),
		newE1RMCmd(opts),
	)

	return rootCmd
}

// withPool opens a pool from the config file, runs fn and closes the pool.
func (o *rootOptions) withPool(ctx context.Context, fn func(pool *pgxpool.Pool) error) error {
	cfg, err := config.Load(o.env, o.configPath)
	if err != nil {
		return err
	}
	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		return err
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
		SSLMode:    cfg.PostgresSSLMode,
		MaxConns:   2,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	return fn(pool)
}
