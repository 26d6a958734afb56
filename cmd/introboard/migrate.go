package main

import (
	"fmt"

	"introboard/internal/database"
	"introboard/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL migrations for the sheet endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.Sheet.DatabaseURL == "" {
			return fmt.Errorf("sheet.database_url is required (or set DATABASE_URL)")
		}
		return database.Migrations(cfg.Sheet.Migrations, cfg.Sheet.DatabaseURL)
	},
}
