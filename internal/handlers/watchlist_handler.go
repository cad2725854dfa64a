package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"gorm.io/gorm"
)

// WatchlistHandler handles tracked-stock HTTP requests
type WatchlistHandler struct {
	watchlistRepository repositories.WatchlistRepository
	userRepository      repositories.UserRepository
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistRepo repositories.WatchlistRepository, userRepo repositories.UserRepository) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistRepository: watchlistRepo,
		userRepository:      userRepo,
	}
}

// RegisterWatchlistRoutes registers watchlist-related routes
func (h *WatchlistHandler) RegisterWatchlistRoutes(g *echo.Group) {
	g.GET("/watchlist", h.ListWatchlist)
	g.POST("/watchlist", h.TrackStock)
	g.DELETE("/watchlist", h.UntrackStock)
}

// ListWatchlist returns the user's tracked stocks, newest first
func (h *WatchlistHandler) ListWatchlist(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	entries, err := h.watchlistRepository.ListByUser(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":     len(entries),
		"watchlist": entries,
	})
}

// TrackStock adds a symbol to the user's watchlist. Tracking an
// already-tracked symbol returns 409.
func (h *WatchlistHandler) TrackStock(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.WatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry := &models.WatchlistEntry{
		UserID: user.ID,
		Symbol: strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Notes:  req.Notes,
	}
	if err := h.watchlistRepository.CreateEntry(entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Symbol already tracked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, entry)
}

// UntrackStock removes a symbol from the watchlist. Removing an absent symbol
// succeeds.
func (h *WatchlistHandler) UntrackStock(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "symbol is required")
	}

	if err := h.watchlistRepository.DeleteEntry(user.ID, strings.ToUpper(strings.TrimSpace(symbol))); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"tracked": false})
}
