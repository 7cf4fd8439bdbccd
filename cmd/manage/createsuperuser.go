package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recipe-api/backend/internal/database"
	"github.com/recipe-api/backend/internal/service"
)

func newCreateSuperuserCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff account with full rights",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			cfg, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)
			if err := database.RunMigrations(db); err != nil {
				return err
			}

			auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, nil)
			user, err := auth.CreateSuperuser(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address of the new superuser")
	cmd.Flags().StringVar(&password, "password", "", "password of the new superuser")
	return cmd
}
