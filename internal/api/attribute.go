package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

// AttributeHandler serves the tag and ingredient endpoints. Items are only
// created through recipe payloads.
type AttributeHandler[T models.Attribute] struct {
	service service.IAttributeService[T]
}

func NewAttributeHandler[T models.Attribute](svc service.IAttributeService[T]) *AttributeHandler[T] {
	useJSONFieldNames()
	return &AttributeHandler[T]{service: svc}
}

// RegisterRoutes mounts the handler under /<name>/ on an authenticated group.
func (h *AttributeHandler[T]) RegisterRoutes(rg *gin.RouterGroup, name string, limit gin.HandlerFunc) {
	items := rg.Group("/" + name)
	if limit != nil {
		items.Use(limit)
	}
	items.GET("/", h.List)
	items.PUT("/:id/", h.Update)
	items.PATCH("/:id/", h.Update)
	items.DELETE("/:id/", h.Delete)
}

func toAttributeResponse[T models.Attribute](item T) types.AttributeResponse {
	return types.AttributeResponse{ID: item.AttributeID(), Name: item.AttributeName()}
}

// List returns the caller's items. ?assigned_only=1 keeps only items used by
// a recipe.
func (h *AttributeHandler[T]) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assignedOnly := false
	if raw := c.Query("assigned_only"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:  "validation failed",
				Fields: map[string]string{"assigned_only": "expected 0 or 1"},
			})
			return
		}
		assignedOnly = n != 0
	}

	items, err := h.service.List(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttributeResponses(items))
}

// Update renames an item. PUT requires a name. A PATCH without one returns
// the item unchanged.
func (h *AttributeHandler[T]) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	partial := c.Request.Method == http.MethodPatch
	var req types.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !(partial && errors.Is(err, io.EOF)) {
		respondBindError(c, err)
		return
	}

	var (
		item *T
		err  error
	)
	switch {
	case req.Name != nil:
		item, err = h.service.Update(c.Request.Context(), userID, id, *req.Name)
	case partial:
		item, err = h.service.Get(c.Request.Context(), userID, id)
	default:
		err = &service.ValidationError{Fields: map[string]string{"name": "this field is required"}}
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttributeResponse(*item))
}

func (h *AttributeHandler[T]) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
