package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRunMigrationsSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, RunMigrations(db))
	// a second run is a no-op
	require.NoError(t, RunMigrations(db))

	for _, table := range []string{"users", "recipes", "tags", "ingredients", "recipe_tags", "recipe_ingredients"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	content, err := fs.ReadFile(migrationFiles, "migrations/"+entries[0].Name())
	require.NoError(t, err)
	sql := string(content)
	for _, table := range []string{"users", "recipes", "tags", "ingredients", "recipe_tags", "recipe_ingredients"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" "), table)
	}
}
