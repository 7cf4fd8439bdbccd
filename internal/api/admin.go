package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

// AdminHandler exposes staff-only views.
type AdminHandler struct {
	authService service.IAuthService
}

func NewAdminHandler(authService service.IAuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/", h.ListUsers)
}

// ListUsers returns every account ordered by id.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]types.AdminUserResponse, len(users))
	for i, u := range users {
		resp[i] = types.AdminUserResponse{
			ID:       u.ID,
			Email:    u.Email,
			Name:     u.Name,
			IsActive: u.IsActive,
			IsStaff:  u.IsStaff,
		}
	}
	c.JSON(http.StatusOK, resp)
}
