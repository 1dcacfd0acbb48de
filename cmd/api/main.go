package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smartrecipe/backend/config"
	"github.com/smartrecipe/backend/internal/api"
	"github.com/smartrecipe/backend/internal/database"
	"github.com/smartrecipe/backend/internal/logging"
	"github.com/smartrecipe/backend/internal/router"
	"github.com/smartrecipe/backend/internal/server"
	"github.com/smartrecipe/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	logger := logging.Init(cfg.App.LogLevel, cfg.IsDevelopment())
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	var imageService *service.ImageService
	if cfg.S3.Enabled {
		s3Config, err := config.NewS3Config(context.Background(), cfg.S3)
		if err != nil {
			logger.Fatal("failed to configure S3", zap.Error(err))
		}
		imageService = service.NewImageService(s3Config)
	}

	cache := service.NewSuggestionCache(redisClient, cfg.Suggestions.CacheTTL)
	recipeService := service.NewRecipeService(db, cache, cfg.Suggestions.Strategy)
	authService := service.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	classifierService := service.NewClassifierService(cfg.Classifier.URL, cfg.Classifier.Timeout)

	engine := router.Setup(router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Recipe:     api.NewRecipeHandler(recipeService, imageService, authService),
		Ingredient: api.NewIngredientHandler(classifierService),
		Health:     api.NewHealthHandler(db),
	}, cfg.IsDevelopment())

	srv := server.New(cfg.Server, engine)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("forced shutdown", zap.Error(err))
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis client", zap.Error(err))
			}
		}
	}

	logger.Info("server stopped")
}
