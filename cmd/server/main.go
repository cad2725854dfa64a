package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/router"
	"github.com/quantlake/stockbuzz/backend/pkg/cache"
	"github.com/quantlake/stockbuzz/backend/pkg/config"
	"github.com/quantlake/stockbuzz/backend/pkg/firebase"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"github.com/quantlake/stockbuzz/backend/validators"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredPath)
	if err != nil {
		logger.Log.Fatal("failed to initialize Firebase", zap.Error(err))
	}

	// Redis is optional; without it feed proxying falls back to direct fetches
	var redisClient *cache.RedisClient
	if cfg.RedisAddr != "" {
		redisClient, err = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Log.Warn("redis unavailable, feed caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseApp.AuthClient, redisClient, cfg); err != nil {
		logger.Log.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
