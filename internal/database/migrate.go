package database

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations brings the schema up to date. Postgres applies the embedded
// SQL files in name order and records each one. SQLite, used for local runs
// and tests, relies on gorm auto-migration.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		slog.Info("using GORM auto-migration for SQLite")
		return db.AutoMigrate(models.All()...)
	}
	return applySQLMigrations(db, migrationFiles)
}

func applySQLMigrations(db *gorm.DB, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		var count int64
		if err := db.Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			slog.Debug("skipping migration (already applied)", "name", name)
			continue
		}

		content, err := fs.ReadFile(fsys, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Info("applied migration", "name", name)
	}

	return nil
}

// AppliedMigrations lists the recorded migration names in order.
func AppliedMigrations(db *gorm.DB) ([]string, error) {
	var names []string
	err := db.Table("migrations").Order("name").Pluck("name", &names).Error
	return names, err
}
