package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

func (m *MockRecipeService) recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, userID uint, filter types.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id))
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, userID uint, req types.RecipeRequest) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, req))
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, userID, id uint, req types.RecipeRequest, partial bool) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id, req, partial))
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

// UploadImage mocks the UploadImage method. The reader is not passed to the
// recorded call.
func (m *MockRecipeService) UploadImage(ctx context.Context, userID, id uint, filename string, _ io.Reader) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, id, filename))
}

// ImageURL mocks the ImageURL method
func (m *MockRecipeService) ImageURL(key string) *string {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*string)
}
