package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrwaste/wastecrm/internal/config"
	"github.com/mrwaste/wastecrm/internal/db"
	"github.com/mrwaste/wastecrm/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL schema",
	Long: `Connects to DB_DSN and applies every migration. Migrations are
idempotent, so running the command twice is harmless. The bolt driver
needs no migrations.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DB.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("migrate requires STORAGE_DRIVER=%s, got %q", config.StorageDriverPostgres, cfg.DB.Driver)
	}

	log := logger.New(cfg.Environment)
	database, err := db.New(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
