package main

import (
	"context"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/recipe-api/backend/config"
	"github.com/recipe-api/backend/internal/database"
	"github.com/recipe-api/backend/internal/logging"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "manage",
		Short:         "Administrative tasks for the recipe API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup("recipe-manage", logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newWaitForDBCmd(),
		newMigrateCmd(),
		newCreateSuperuserCmd(),
		newSeedCmd(),
	)
	return root
}

// openDB loads the configuration and connects once the database is up.
func openDB(ctx context.Context) (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(ctx, cfg, database.WaitOptions{})
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
