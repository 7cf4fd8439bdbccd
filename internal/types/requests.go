package types

import "github.com/recipe-api/backend/internal/models"

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name" binding:"required,max=255"`
}

// TokenRequest represents the request body for obtaining a token
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents the request body for updating the current user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

// NamedItem is a nested tag or ingredient in a recipe payload
type NamedItem struct {
	Name string `json:"name"`
}

// RecipeRequest is the body of recipe create, update and partial update.
// Pointer fields distinguish "absent" from "zero"; a present but empty tag
// list clears the recipe's tags.
type RecipeRequest struct {
	Title       *string       `json:"title"`
	TimeMinutes *int          `json:"time_minutes"`
	Price       *models.Price `json:"price"`
	Description *string       `json:"description"`
	Link        *string       `json:"link"`
	Tags        *[]NamedItem  `json:"tags"`
	Ingredients *[]NamedItem  `json:"ingredients"`
}

// AttributeRequest renames a tag or ingredient. Name may be absent on PATCH.
type AttributeRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// RecipeFilter narrows a recipe listing. A recipe matches when it carries any
// of the tag ids and any of the ingredient ids.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}
