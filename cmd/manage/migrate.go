package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/recipe-api/backend/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.RunMigrations(db); err != nil {
				slog.Error("migration failed", "error", err)
				return err
			}

			if db.Dialector.Name() == "postgres" {
				applied, err := database.AppliedMigrations(db)
				if err != nil {
					return err
				}
				for _, name := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
				}
			}
			slog.Info("migrations completed successfully")
			return nil
		},
	}
}
