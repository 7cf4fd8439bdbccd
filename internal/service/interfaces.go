package service

import (
	"context"
	"io"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/types"
)

// IAuthService defines the interface for account and token operations
type IAuthService interface {
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	RevokeToken(ctx context.Context, claims *types.TokenClaims) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, req types.UpdateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uint, filter types.RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, userID uint, req types.RecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uint, req types.RecipeRequest, partial bool) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uint) error
	ImageUploader
}

// ImageUploader covers the recipe image operations
type ImageUploader interface {
	UploadImage(ctx context.Context, userID, id uint, filename string, r io.Reader) (*models.Recipe, error)
	ImageURL(key string) *string
}

// IAttributeService defines the interface for tag and ingredient operations
type IAttributeService[T models.Attribute] interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error)
	Get(ctx context.Context, userID, id uint) (*T, error)
	Update(ctx context.Context, userID, id uint, name string) (*T, error)
	Delete(ctx context.Context, userID, id uint) error
}

var (
	_ IAuthService                         = (*AuthService)(nil)
	_ IRecipeService                       = (*RecipeService)(nil)
	_ IAttributeService[models.Tag]        = (*AttributeService[models.Tag])(nil)
	_ IAttributeService[models.Ingredient] = (*AttributeService[models.Ingredient])(nil)
	_ RevocationStore                      = (*RedisRevocationStore)(nil)
	_ RevocationStore                      = (*MemoryRevocationStore)(nil)
	_ ImageStore                           = (*DiskImageStore)(nil)
)
