package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/recipe-api/backend/config"
	"github.com/recipe-api/backend/internal/database"
	"github.com/recipe-api/backend/internal/logging"
	"github.com/recipe-api/backend/internal/middleware"
	"github.com/recipe-api/backend/internal/router"
	"github.com/recipe-api/backend/internal/server"
	"github.com/recipe-api/backend/internal/service"
)

const dbWaitTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.Setup("recipe-api", cfg.LogLevel)
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	waitCtx, cancel := context.WithTimeout(ctx, dbWaitTimeout)
	db, err := database.Connect(waitCtx, cfg, database.WaitOptions{})
	cancel()
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		revoked     service.RevocationStore
		limiter     middleware.Limiter
	)
	limitCfg := middleware.RateLimitConfig{
		Limit:     cfg.RateLimit,
		Window:    cfg.RateLimitWindow,
		KeyPrefix: "rate_limit:writes",
	}
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			slog.Warn("redis unavailable, using in-process token revocation and rate limiting", "error", err)
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
		revoked = service.NewRedisRevocationStore(redisClient)
		limiter = middleware.NewRedisLimiter(redisClient, limitCfg)
	} else {
		revoked = service.NewMemoryRevocationStore()
		limiter = middleware.NewLocalLimiter(limitCfg)
	}

	var (
		images   service.ImageStore
		mediaDir string
	)
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		images = s3cfg
		slog.Info("storing recipe images in S3", "bucket", s3cfg.BucketName)
	} else {
		mediaDir = cfg.MediaDir
		baseURL := cfg.MediaBaseURL
		if baseURL == "" {
			baseURL = "/media"
		}
		images = service.NewDiskImageStore(mediaDir, baseURL)
		slog.Info("storing recipe images on disk", "dir", mediaDir)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, revoked)
	handler := router.SetupRouter(router.Dependencies{
		DB:                db,
		Redis:             redisClient,
		AuthService:       authService,
		RecipeService:     service.NewRecipeService(db, images),
		TagService:        service.NewTagService(db),
		IngredientService: service.NewIngredientService(db),
		Limiter:           limiter,
		CORSOrigins:       cfg.CORSOrigins,
		MediaDir:          mediaDir,
		Logger:            logger,
	})

	return server.NewServer(cfg.Addr(), handler).Run(ctx)
}
