package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/types"
)

// MaxImageSize bounds a single recipe image upload.
const MaxImageSize = 10 << 20

// RecipeService handles recipe operations. Every query is scoped to the
// owning user.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

// NewRecipeService creates a new RecipeService instance. images may be nil,
// in which case uploads fail with ErrStorageUnavailable.
func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

func preloadAttributes(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

// ListRecipes lists the user's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uint, filter types.RecipeFilter) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx)
	query := preloadAttributes(db).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		sub := db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if len(filter.IngredientIDs) > 0 {
		sub := db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs)
		query = query.Where("recipes.id IN (?)", sub)
	}

	var recipes []models.Recipe
	if err := query.Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns the user's recipe or ErrNotFound.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return s.getRecipe(s.db.WithContext(ctx), userID, id)
}

func (s *RecipeService) getRecipe(db *gorm.DB, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := preloadAttributes(db).Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe owned by userID along with any nested tags
// and ingredients that do not exist yet.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uint, req types.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipe(req, false); err != nil {
		return nil, err
	}

	var created *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{
			UserID:      userID,
			Title:       *req.Title,
			TimeMinutes: *req.TimeMinutes,
			Price:       *req.Price,
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if req.Link != nil {
			recipe.Link = *req.Link
		}
		if err := tx.Omit("Tags", "Ingredients").Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := replaceAttributes(tx, &recipe, req); err != nil {
			return err
		}

		var err error
		created, err = s.getRecipe(tx, userID, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRecipe updates the user's recipe. With partial unset every required
// field must be supplied. Nested lists that are present replace the current set.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uint, req types.RecipeRequest, partial bool) (*models.Recipe, error) {
	var updated *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.getRecipe(tx, userID, id)
		if err != nil {
			return err
		}
		if err := validateRecipe(req, partial); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.TimeMinutes != nil {
			updates["time_minutes"] = *req.TimeMinutes
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Link != nil {
			updates["link"] = *req.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
		}
		if err := replaceAttributes(tx, recipe, req); err != nil {
			return err
		}

		updated, err = s.getRecipe(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecipe removes the user's recipe with its tag and ingredient links.
// The stored image is removed on a best-effort basis.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uint) error {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
			return notFound(err)
		}
		return tx.Select("Tags", "Ingredients").Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	if recipe.Image != "" && s.images != nil {
		if err := s.images.Remove(ctx, recipe.Image); err != nil {
			slog.Warn("failed to remove recipe image", "recipe_id", id, "key", recipe.Image, "error", err)
		}
	}
	return nil
}

// UploadImage stores an image for the user's recipe and replaces any
// previous one.
func (s *RecipeService) UploadImage(ctx context.Context, userID, id uint, filename string, r io.Reader) (*models.Recipe, error) {
	if s.images == nil {
		return nil, ErrStorageUnavailable
	}

	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	verr := &ValidationError{}
	switch {
	case len(data) == 0:
		verr.Add("image", "the submitted file is empty")
	case len(data) > MaxImageSize:
		verr.Add("image", "the submitted file is too large")
	}
	contentType := http.DetectContentType(data)
	if len(data) > 0 && !strings.HasPrefix(contentType, "image/") {
		verr.Add("image", "upload a valid image")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	key := imageKey(filename)
	if err := s.images.Save(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipe.ID).Update("image", key).Error; err != nil {
		if rmErr := s.images.Remove(ctx, key); rmErr != nil {
			slog.Warn("failed to remove orphaned image", "key", key, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	if old := recipe.Image; old != "" && old != key {
		if err := s.images.Remove(ctx, old); err != nil {
			slog.Warn("failed to remove previous recipe image", "recipe_id", id, "key", old, "error", err)
		}
	}
	recipe.Image = key
	return recipe, nil
}

// ImageURL returns the public URL for an image key, or nil when there is none.
func (s *RecipeService) ImageURL(key string) *string {
	if key == "" || s.images == nil {
		return nil
	}
	u := s.images.URL(key)
	return &u
}

// imageKey builds a collision-free object key that keeps the original extension.
func imageKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("uploads", "recipe", uuid.NewString()+ext)
}

// maxFieldLength is the character limit of the varchar(255) columns.
const maxFieldLength = 255

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > maxFieldLength
}

func validateRecipe(req types.RecipeRequest, partial bool) error {
	verr := &ValidationError{}

	if req.Title == nil {
		if !partial {
			verr.Add("title", "this field is required")
		}
	} else if t := strings.TrimSpace(*req.Title); t == "" {
		verr.Add("title", "this field may not be blank")
	} else if tooLong(*req.Title) {
		verr.Add("title", "ensure this field has no more than 255 characters")
	}

	if req.TimeMinutes == nil {
		if !partial {
			verr.Add("time_minutes", "this field is required")
		}
	} else if *req.TimeMinutes < 0 {
		verr.Add("time_minutes", "ensure this value is greater than or equal to 0")
	}

	if req.Price == nil {
		if !partial {
			verr.Add("price", "this field is required")
		}
	} else if *req.Price > models.MaxPrice || *req.Price < -models.MaxPrice {
		verr.Add("price", models.ErrPriceMaxDigits.Error())
	}

	if req.Link != nil && tooLong(*req.Link) {
		verr.Add("link", "ensure this field has no more than 255 characters")
	}

	for field, items := range map[string]*[]types.NamedItem{"tags": req.Tags, "ingredients": req.Ingredients} {
		if items == nil {
			continue
		}
		for _, item := range *items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				verr.Add(field, "name may not be blank")
			} else if tooLong(name) {
				verr.Add(field, "name must have no more than 255 characters")
			}
		}
	}

	return verr.Err()
}

// replaceAttributes rebuilds the recipe's tag and ingredient sets for every
// list present in req.
func replaceAttributes(tx *gorm.DB, recipe *models.Recipe, req types.RecipeRequest) error {
	if req.Tags != nil {
		tags, err := findOrCreate(tx, recipe.UserID, *req.Tags, models.NewTag)
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to set tags: %w", err)
		}
	}
	if req.Ingredients != nil {
		ingredients, err := findOrCreate(tx, recipe.UserID, *req.Ingredients, models.NewIngredient)
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
			return fmt.Errorf("failed to set ingredients: %w", err)
		}
	}
	return nil
}

// findOrCreate resolves names to the user's existing items, creating the
// missing ones. Duplicate names collapse to one item.
func findOrCreate[T models.Attribute](tx *gorm.DB, userID uint, items []types.NamedItem, build func(uint, string) T) ([]T, error) {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if seen[name] {
			continue
		}
		seen[name] = true

		var found T
		if err := tx.Where("user_id = ? AND name = ?", userID, name).
			Attrs(build(userID, name)).
			FirstOrCreate(&found).Error; err != nil {
			return nil, fmt.Errorf("failed to get or create %q: %w", name, err)
		}
		out = append(out, found)
	}
	return out, nil
}
