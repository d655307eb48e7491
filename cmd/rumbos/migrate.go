package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurpe/rumbos-envios/internal/db"
	"github.com/nurpe/rumbos-envios/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.New(cfg.Environment)

		database, err := db.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		if err := db.Migrate(cmd.Context(), database, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("schema up to date")
		return nil
	},
}
