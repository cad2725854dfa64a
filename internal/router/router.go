package router

import (
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/quantlake/stockbuzz/backend/internal/handlers"
	"github.com/quantlake/stockbuzz/backend/internal/market"
	"github.com/quantlake/stockbuzz/backend/internal/middleware"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"github.com/quantlake/stockbuzz/backend/internal/social"
	"github.com/quantlake/stockbuzz/backend/pkg/cache"
	"github.com/quantlake/stockbuzz/backend/pkg/config"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error body shape
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestID())
	e.HTTPErrorHandler = httpErrorHandler
	logger.Log.Info("global middleware configured")
}

// httpErrorHandler renders every error as an {"error": message} body so
// clients parse one shape regardless of where the failure happened
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal Server Error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprintf("%v", he.Message)
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if jsonErr := c.JSON(code, echo.Map{"error": message}); jsonErr != nil {
		logger.Log.Error("failed to write error response", zap.Error(jsonErr))
	}
}

// SetupRoutes migrates the PostgreSQL schema, wires repositories into
// handlers, and registers every route group
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, redisClient *cache.RedisClient, cfg *config.Config) error {
	err := pgdb.AutoMigrate(
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
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logger.Log.Info("postgresql auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	creatorRepo := repositories.NewPostgresCreatorRepository(pgdb)
	subscriptionRepo := repositories.NewPostgresSubscriptionRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(pgdb)
	trendingRepo := repositories.NewPostgresTrendingRepository(pgdb)
	watchlistRepo := repositories.NewPostgresWatchlistRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("stockbuzz"))

	// --- External data clients ---
	marketClient := market.NewClient(market.Options{
		AlphaVantageKey: cfg.AlphaVantageKey,
		FinnhubKey:      cfg.FinnhubKey,
	})
	feedClient := social.NewFeedClient(cfg.IngestBaseURL, redisClient)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Public routes, personalized when a valid token is present ---
	public := e.Group("/api")
	public.Use(middleware.OptionalFirebaseAuthMiddleware(firebaseAuthClient))

	creatorHandler := handlers.NewCreatorHandler(creatorRepo, subscriptionRepo, userRepo)
	creatorHandler.RegisterCreatorRoutes(public)

	postHandler := handlers.NewPostHandler(postRepo, likeRepo, favoriteRepo, userRepo)
	postHandler.RegisterPostRoutes(public)

	trendingHandler := handlers.NewTrendingHandler(trendingRepo)
	trendingHandler.RegisterTrendingRoutes(public)

	stockHandler := handlers.NewStockHandler(marketClient)
	stockHandler.RegisterStockRoutes(public)

	socialFeedHandler := handlers.NewSocialFeedHandler(feedClient)
	socialFeedHandler.RegisterSocialFeedRoutes(public)

	// --- Protected routes (require Firebase authentication) ---
	protected := e.Group("/api")
	protected.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))

	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionRepo, userRepo, postRepo, likeRepo, favoriteRepo)
	subscriptionHandler.RegisterSubscriptionRoutes(protected)

	likeHandler := handlers.NewLikeHandler(likeRepo, favoriteRepo, postRepo, userRepo)
	likeHandler.RegisterLikeRoutes(protected)

	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, likeRepo, postRepo, userRepo)
	favoriteHandler.RegisterFavoriteRoutes(protected)

	watchlistHandler := handlers.NewWatchlistHandler(watchlistRepo, userRepo)
	watchlistHandler.RegisterWatchlistRoutes(protected)

	// --- Ingestion callback (shared-secret JWT, not browser identity) ---
	ingest := e.Group("/api")
	ingest.Use(middleware.IngestAuthMiddleware(cfg.IngestJWTSecret))

	ingestHandler := handlers.NewIngestHandler(postRepo, creatorRepo)
	ingestHandler.RegisterIngestRoutes(ingest)

	logger.Log.Info("all routes configured")
	return nil
}
