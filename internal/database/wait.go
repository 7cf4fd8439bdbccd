package database

import (
	"context"
	"log/slog"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WaitOptions tune WaitForDB.
type WaitOptions struct {
	// Interval between attempts. Defaults to one second.
	Interval time.Duration
	// Sleep is replaceable in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitForDB pings the database until it answers or ctx is done. It returns
// the number of attempts made.
func WaitForDB(ctx context.Context, db Pinger, opts WaitOptions) (int, error) {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	slog.Info("waiting for database...")
	attempts := 0
	for {
		attempts++
		err := db.PingContext(ctx)
		if err == nil {
			slog.Info("Database available!", "attempts", attempts)
			return attempts, nil
		}
		if ctx.Err() != nil {
			return attempts, ctx.Err()
		}
		slog.Info("Database unavailable, waiting "+describeInterval(opts.Interval)+"...", "error", err)
		if err := opts.Sleep(ctx, opts.Interval); err != nil {
			return attempts, err
		}
	}
}

func describeInterval(d time.Duration) string {
	if d == time.Second {
		return "1 second"
	}
	return d.String()
}
