package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/middleware"
	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

// UserHandler serves account creation, tokens and the caller's own profile.
type UserHandler struct {
	authService service.IAuthService
}

func NewUserHandler(authService service.IAuthService) *UserHandler {
	useJSONFieldNames()
	return &UserHandler{authService: authService}
}

// RegisterRoutes mounts the user endpoints. auth guards the routes that
// need a token.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	user := rg.Group("/user")
	user.POST("/create/", h.CreateUser)
	user.POST("/token/", h.CreateToken)

	me := user.Group("", auth)
	me.GET("/me/", h.GetMe)
	me.PUT("/me/", h.UpdateMe)
	me.PATCH("/me/", h.UpdateMe)
	me.POST("/logout/", h.Logout)
}

func toUserResponse(u *models.User) types.UserResponse {
	return types.UserResponse{Email: u.Email, Name: u.Name}
}

// CreateUser registers a new account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, &service.ValidationError{Fields: map[string]string{"name": "this field may not be blank"}})
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// CreateToken exchanges credentials for an auth token.
func (h *UserHandler) CreateToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT and PATCH. PUT must carry the email, password and
// name. Neither accepts a blank name.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	verr := &service.ValidationError{}
	if c.Request.Method == http.MethodPut {
		if req.Email == nil {
			verr.Add("email", "this field is required")
		}
		if req.Password == nil {
			verr.Add("password", "this field is required")
		}
		if req.Name == nil {
			verr.Add("name", "this field is required")
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		verr.Add("name", "this field may not be blank")
	}
	if err := verr.Err(); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout revokes the token used for this request.
func (h *UserHandler) Logout(c *gin.Context) {
	value, ok := c.Get(middleware.ContextClaims)
	claims, _ := value.(*types.TokenClaims)
	if !ok || claims == nil {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "authentication credentials were not provided"})
		return
	}

	if err := h.authService.RevokeToken(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
