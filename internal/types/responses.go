package types

import "github.com/recipe-api/backend/internal/models"

// UserResponse is the public view of a user
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AdminUserResponse is the staff view of a user
type AdminUserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

// TokenResponse carries an issued auth token
type TokenResponse struct {
	Token string `json:"token"`
}

// AttributeResponse is a tag or ingredient
type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list view of a recipe
type RecipeResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       models.Price        `json:"price"`
	Description string              `json:"description"`
	Link        string              `json:"link"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the image to the list view
type RecipeDetailResponse struct {
	RecipeResponse
	Image *string `json:"image"`
}

// RecipeImageResponse is returned after an image upload
type RecipeImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
