package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-api/backend/internal/models"
)

func TestDatabaseSetup(t *testing.T) {
	db := SetupTestDatabase(t)
	require.NotNil(t, db)

	user := CreateTestUser(t, db, "test@Example.com", "testpass123")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.CheckPassword("testpass123"))

	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       "Sample recipe",
		TimeMinutes: 5,
		Price:       models.Price(550),
		Tags:        []models.Tag{models.NewTag(user.ID, "Vegan")},
	}
	require.NoError(t, db.Create(recipe).Error)

	var loaded models.Recipe
	require.NoError(t, db.Preload("Tags").First(&loaded, recipe.ID).Error)
	assert.Equal(t, models.Price(550), loaded.Price)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "Vegan", loaded.Tags[0].Name)
}

func TestPostgresDatabaseSetup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := SetupPostgresDatabase(t)

	user := CreateTestUser(t, db, "pg@example.com", "testpass123")
	recipe := &models.Recipe{UserID: user.ID, Title: "Pg recipe", TimeMinutes: 10, Price: models.Price(12345)}
	require.NoError(t, db.Create(recipe).Error)

	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, recipe.ID).Error)
	assert.Equal(t, "123.45", loaded.Price.String())
}
