package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/enrich"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
)

// CreatorHandler handles HTTP requests for the tracked-creator directory
type CreatorHandler struct {
	creatorRepository      repositories.CreatorRepository
	subscriptionRepository repositories.SubscriptionRepository
	userRepository         repositories.UserRepository
}

// NewCreatorHandler creates a new CreatorHandler
func NewCreatorHandler(creatorRepo repositories.CreatorRepository, subRepo repositories.SubscriptionRepository, userRepo repositories.UserRepository) *CreatorHandler {
	return &CreatorHandler{
		creatorRepository:      creatorRepo,
		subscriptionRepository: subRepo,
		userRepository:         userRepo,
	}
}

// RegisterCreatorRoutes registers creator-related routes
func (h *CreatorHandler) RegisterCreatorRoutes(g *echo.Group) {
	g.GET("/creators", h.ListCreators)
}

// ListCreators returns a filtered, sorted page of creators with the
// per-request user_tracked flag attached
func (h *CreatorHandler) ListCreators(c echo.Context) error {
	opts := repositories.CreatorListOptions{
		Limit:         intQueryParam(c, "limit", 20),
		Offset:        intQueryParam(c, "offset", 0),
		Platform:      c.QueryParam("platform"),
		Category:      c.QueryParam("category"),
		Verified:      boolQueryParam(c, "verified"),
		SortBy:        c.QueryParam("sort_by"),
		SortDirection: c.QueryParam("sort_direction"),
	}

	creators, total, err := h.creatorRepository.ListCreators(opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Anonymous requests get user_tracked=false across the page
	tracked := map[string]bool{}
	if user := optionalUser(c, h.userRepository); user != nil {
		subs, err := h.subscriptionRepository.ListByUser(user.ID, "")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		tracked = enrich.TrackedSet(subs)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    total,
		"creators": enrich.Creators(creators, tracked),
	})
}
