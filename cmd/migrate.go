package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-InterviewScheduler/internal/config"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/migrations"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(c *cobra.Command, _ []string) error {
			return withMigrator(c.Context(), *configPath, func(ctx context.Context, m *migrations.Migrator) error {
				return m.Up(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(c *cobra.Command, _ []string) error {
			return withMigrator(c.Context(), *configPath, func(ctx context.Context, m *migrations.Migrator) error {
				return m.Down(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(c *cobra.Command, _ []string) error {
			return withMigrator(c.Context(), *configPath, func(ctx context.Context, m *migrations.Migrator) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("schema version: %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, configPath string, fn func(ctx context.Context, m *migrations.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, log)
	if err != nil {
		return err
	}
	return fn(ctx, migrator)
}
