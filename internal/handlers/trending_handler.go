package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
)

// TrendingHandler handles trending ticker and topic listings
type TrendingHandler struct {
	trendingRepository repositories.TrendingRepository
}

// NewTrendingHandler creates a new TrendingHandler
func NewTrendingHandler(trendingRepo repositories.TrendingRepository) *TrendingHandler {
	return &TrendingHandler{trendingRepository: trendingRepo}
}

// RegisterTrendingRoutes registers trending-related routes
func (h *TrendingHandler) RegisterTrendingRoutes(g *echo.Group) {
	g.GET("/trending-tickers", h.ListTickers)
	g.GET("/trending-topics", h.ListTopics)
}

func trendingOptions(c echo.Context) repositories.TrendingListOptions {
	return repositories.TrendingListOptions{
		Limit:         intQueryParam(c, "limit", 20),
		Offset:        intQueryParam(c, "offset", 0),
		Platform:      c.QueryParam("platform"),
		TopicType:     c.QueryParam("topic_type"),
		SortBy:        c.QueryParam("sort_by"),
		SortDirection: c.QueryParam("sort_direction"),
	}
}

// ListTickers returns a sorted page of trending stock tickers
func (h *TrendingHandler) ListTickers(c echo.Context) error {
	tickers, total, err := h.trendingRepository.ListTickers(trendingOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   total,
		"tickers": tickers,
	})
}

// ListTopics returns a sorted page of trending discussion topics
func (h *TrendingHandler) ListTopics(c echo.Context) error {
	topics, total, err := h.trendingRepository.ListTopics(trendingOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":  total,
		"topics": topics,
	})
}
