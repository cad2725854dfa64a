package main

import (
	"context"
	"flag"
	"log"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"github.com/quantlake/stockbuzz/backend/internal/seed"
	"github.com/quantlake/stockbuzz/backend/pkg/config"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	clean := flag.Bool("clean", false, "remove existing seed data before seeding")
	flag.Parse()

	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	err = db.Postgres.AutoMigrate(
		&models.User{},
		&models.Creator{},
		&models.KolSubscription{},
		&models.PostLike{},
		&models.PostFavorite{},
		&models.TrendingTicker{},
		&models.TrendingTopic{},
		&models.WatchlistEntry{},
	)
	if err != nil {
		logger.Log.Fatal("failed to auto migrate models", zap.Error(err))
	}

	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database("stockbuzz"))
	seeder := seed.NewSeeder(db.Postgres, postRepo)

	if *clean {
		logger.Log.Info("Cleaning existing seed data...")
		if err := seeder.Clean(); err != nil {
			logger.Log.Fatal("failed to clean seed data", zap.Error(err))
		}
	}

	if err := seeder.SeedDev(context.Background()); err != nil {
		logger.Log.Fatal("failed to seed databases", zap.Error(err))
	}

	logger.Log.Info("Seeding complete")
}
