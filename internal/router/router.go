package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/api"
	"github.com/recipe-api/backend/internal/middleware"
	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
)

// Dependencies carries everything the routes need.
type Dependencies struct {
	DB                *gorm.DB
	Redis             *redis.Client
	AuthService       service.IAuthService
	RecipeService     service.IRecipeService
	TagService        service.IAttributeService[models.Tag]
	IngredientService service.IAttributeService[models.Ingredient]
	Limiter           middleware.Limiter
	CORSOrigins       []string
	// MediaDir is served under /media when images are stored on disk.
	MediaDir string
	Logger   *slog.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(deps.CORSOrigins),
	)

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.Health)
	router.GET("/ready", health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if deps.MediaDir != "" {
		router.Static("/media", deps.MediaDir)
	}

	apiGroup := router.Group("/api")
	apiGroup.GET("/schema/", api.Schema)
	apiGroup.GET("/docs/", api.Docs)

	auth := middleware.AuthMiddleware(deps.AuthService)
	var limit gin.HandlerFunc
	if deps.Limiter != nil {
		limit = middleware.RateLimit(deps.Limiter)
	}

	api.NewUserHandler(deps.AuthService).RegisterRoutes(apiGroup, auth)

	recipe := apiGroup.Group("/recipe", auth)
	api.NewRecipeHandler(deps.RecipeService).RegisterRoutes(recipe, limit)
	api.NewAttributeHandler(deps.TagService).RegisterRoutes(recipe, "tags", limit)
	api.NewAttributeHandler(deps.IngredientService).RegisterRoutes(recipe, "ingredients", limit)

	admin := apiGroup.Group("/admin", auth, middleware.RequireStaff())
	api.NewAdminHandler(deps.AuthService).RegisterRoutes(admin)

	return router
}
