package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipe-api/backend/config"
)

// Open connects gorm to the configured database and applies pool settings.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		slog.Info("connecting to database", "driver", cfg.DBDriver, "host", cfg.DBHost, "port", cfg.DBPort, "user", cfg.DBUser)
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		slog.Info("connecting to database", "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	slog.Info("successfully connected to database")
	return db, nil
}

// OpenSQL returns a lazily connecting database/sql handle. Nothing is dialed
// until the first ping, so it is safe to use while the server is still down.
func OpenSQL(cfg *config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return sql.Open("postgres", cfg.DSN())
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{Logger: logger.Discard})
		if err != nil {
			return nil, err
		}
		return db.DB()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// Connect waits until the database answers pings and then opens gorm on it.
func Connect(ctx context.Context, cfg *config.Config, opts WaitOptions) (*gorm.DB, error) {
	sqlDB, err := OpenSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("error preparing database handle: %w", err)
	}
	_, waitErr := WaitForDB(ctx, sqlDB, opts)
	sqlDB.Close()
	if waitErr != nil {
		return nil, fmt.Errorf("database did not become available: %w", waitErr)
	}
	return Open(cfg)
}
