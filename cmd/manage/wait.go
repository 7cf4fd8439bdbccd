package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/recipe-api/backend/config"
	"github.com/recipe-api/backend/internal/database"
)

func newWaitForDBCmd() *cobra.Command {
	var (
		timeout  time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait-for-db",
		Short: "Block until the database accepts connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			sqlDB, err := database.OpenSQL(cfg)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			_, err = database.WaitForDB(ctx, sqlDB, database.WaitOptions{Interval: interval})
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 waits forever)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between attempts")
	return cmd
}
