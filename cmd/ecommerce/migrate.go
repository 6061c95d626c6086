package main

import (
	"context"
	"fmt"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/config"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/database"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewLoggerWithService(cfg.Observability, nil)

	return database.Migrate(ctx, &log, cfg)
}
