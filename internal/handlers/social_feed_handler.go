package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/social"
)

// SocialFeedHandler proxies the per-platform feeds from the ingestion pipeline
type SocialFeedHandler struct {
	feeds *social.FeedClient
}

// NewSocialFeedHandler creates a new SocialFeedHandler
func NewSocialFeedHandler(feeds *social.FeedClient) *SocialFeedHandler {
	return &SocialFeedHandler{feeds: feeds}
}

// RegisterSocialFeedRoutes registers one proxy route per platform
func (h *SocialFeedHandler) RegisterSocialFeedRoutes(g *echo.Group) {
	g.GET("/tweets", h.feedFor(models.PlatformTwitter))
	g.GET("/reddit", h.feedFor(models.PlatformReddit))
	g.GET("/youtube", h.feedFor(models.PlatformYouTube))
	g.GET("/xiaohongshu", h.feedFor(models.PlatformRednote))
}

// feedFor returns a handler serving one platform's feed verbatim. The upstream
// body is passed through unchanged so clients see the pipeline's own shape.
func (h *SocialFeedHandler) feedFor(platform string) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := h.feeds.FetchFeed(c.Request().Context(), platform)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSONBlob(http.StatusOK, body)
	}
}
