package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	useJSONFieldNames()
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes mounts the recipe endpoints on a group that already
// requires authentication. limit is applied to every route and only acts on
// writes.
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	recipes := rg.Group("/recipes")
	if limit != nil {
		recipes.Use(limit)
	}
	recipes.GET("/", h.ListRecipes)
	recipes.POST("/", h.CreateRecipe)
	recipes.GET("/:id/", h.GetRecipe)
	recipes.PUT("/:id/", h.UpdateRecipe)
	recipes.PATCH("/:id/", h.PartialUpdateRecipe)
	recipes.DELETE("/:id/", h.DeleteRecipe)
	recipes.POST("/:id/upload-image/", h.UploadImage)
}

func toAttributeResponses[T models.Attribute](items []T) []types.AttributeResponse {
	out := make([]types.AttributeResponse, len(items))
	for i, item := range items {
		out[i] = types.AttributeResponse{ID: item.AttributeID(), Name: item.AttributeName()}
	}
	return out
}

func toRecipeResponse(r *models.Recipe) types.RecipeResponse {
	return types.RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Description: r.Description,
		Link:        r.Link,
		Tags:        toAttributeResponses(r.Tags),
		Ingredients: toAttributeResponses(r.Ingredients),
	}
}

func (h *RecipeHandler) toDetailResponse(r *models.Recipe) types.RecipeDetailResponse {
	return types.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(r),
		Image:          h.recipeService.ImageURL(r.Image),
	}
}

// ListRecipes lists the caller's recipes, optionally filtered by
// ?tags=1,2 and ?ingredients=3.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var filter types.RecipeFilter
	verr := &service.ValidationError{}
	var err error
	if filter.TagIDs, err = parseIDList(c.Query("tags")); err != nil {
		verr.Add("tags", "expected a comma separated list of ids")
	}
	if filter.IngredientIDs, err = parseIDList(c.Query("ingredients")); err != nil {
		verr.Add("ingredients", "expected a comma separated list of ids")
	}
	if err := verr.Err(); err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]types.RecipeResponse, len(recipes))
	for i := range recipes {
		resp[i] = toRecipeResponse(&recipes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toDetailResponse(recipe))
}

// CreateRecipe creates a recipe owned by the caller. Any user field in the
// body is ignored.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toDetailResponse(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	h.update(c, false)
}

func (h *RecipeHandler) PartialUpdateRecipe(c *gin.Context) {
	h.update(c, true)
}

func (h *RecipeHandler) update(c *gin.Context, partial bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toDetailResponse(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart "image" file for the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:  "validation failed",
			Fields: map[string]string{"image": "no file was submitted"},
		})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	recipe, err := h.recipeService.UploadImage(c.Request.Context(), userID, id, header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeImageResponse{
		ID:    recipe.ID,
		Image: h.recipeService.ImageURL(recipe.Image),
	})
}
