package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/enrich"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"gorm.io/gorm"
)

// SubscriptionHandler handles KOL subscription HTTP requests
type SubscriptionHandler struct {
	subscriptionRepository repositories.SubscriptionRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
	likeRepository         repositories.LikeRepository
	favoriteRepository     repositories.FavoriteRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(
	subRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	favoriteRepo repositories.FavoriteRepository,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionRepository: subRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
		likeRepository:         likeRepo,
		favoriteRepository:     favoriteRepo,
	}
}

// RegisterSubscriptionRoutes registers subscription-related routes
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group) {
	g.GET("/kol-subscriptions", h.ListSubscriptions)
	g.POST("/kol-subscriptions", h.CreateSubscription)
	g.PATCH("/kol-subscriptions", h.UpdateSubscription)
	g.DELETE("/kol-subscriptions", h.DeleteSubscription)
	g.GET("/kol-subscriptions/posts", h.GetSubscribedPosts)
}

// ListSubscriptions returns the user's subscriptions, newest activity first
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	subs, err := h.subscriptionRepository.ListByUser(user.ID, c.QueryParam("platform"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(subs),
		"subscriptions": subs,
	})
}

// CreateSubscription subscribes the user to a KOL. Subscribing twice to the
// same (platform, kol_id) returns 409 with the existing row attached.
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	sub := &models.KolSubscription{
		UserID:   user.ID,
		Platform: req.Platform,
		KolID:    req.KolID,
		Notify:   notify,
	}

	if err := h.subscriptionRepository.CreateSubscription(sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, getErr := h.subscriptionRepository.GetSubscription(user.ID, req.Platform, req.KolID)
			if getErr != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, getErr.Error())
			}
			return c.JSON(http.StatusConflict, echo.Map{
				"error":        "Already subscribed to this KOL",
				"subscription": existing,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, sub)
}

// UpdateSubscription toggles the notify flag on an existing subscription
func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.subscriptionRepository.UpdateNotify(user.ID, req.Platform, req.KolID, *req.Notify)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subscription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, sub)
}

// DeleteSubscription unsubscribes from a KOL. Deleting an absent subscription
// succeeds; affected rows are not checked.
func (h *SubscriptionHandler) DeleteSubscription(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	platform := c.QueryParam("platform")
	kolID := c.QueryParam("kol_id")
	if platform == "" || kolID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "platform and kol_id are required")
	}
	if !models.IsValidPlatform(platform) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown platform")
	}

	if err := h.subscriptionRepository.DeleteSubscription(user.ID, platform, kolID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// GetSubscribedPosts returns the enriched posts published by the user's
// subscribed KOLs
func (h *SubscriptionHandler) GetSubscribedPosts(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	platform := c.QueryParam("platform")
	kolIDs, err := h.subscriptionRepository.KolIDsByUser(user.ID, platform)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	subsCount, err := h.subscriptionRepository.CountByUser(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(kolIDs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"count":               0,
			"posts":               []models.EnrichedPost{},
			"subscriptions_count": subsCount,
			"kol_ids":             []string{},
		})
	}

	filter := models.PostFilter{
		Platform:      platform,
		Sentiment:     c.QueryParam("sentiment"),
		MarketRelated: boolQueryParam(c, "market_related"),
		CreatorIDs:    kolIDs,
		Skip:          int64(intQueryParam(c, "offset", 0)),
		Limit:         int64(intQueryParam(c, "limit", 50)),
	}

	posts, total, err := h.postRepository.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	inter, err := enrich.LoadInteractions(h.likeRepository, h.favoriteRepository, user.ID, enrich.CollectPostIDs(posts))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":               total,
		"posts":               enrich.Posts(posts, inter),
		"subscriptions_count": subsCount,
		"kol_ids":             kolIDs,
	})
}
