package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"go.uber.org/zap"
)

// IngestHandler receives tagged post batches from the ingestion pipeline
type IngestHandler struct {
	postRepository    repositories.PostRepository
	creatorRepository repositories.CreatorRepository
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(postRepo repositories.PostRepository, creatorRepo repositories.CreatorRepository) *IngestHandler {
	return &IngestHandler{
		postRepository:    postRepo,
		creatorRepository: creatorRepo,
	}
}

// RegisterIngestRoutes registers the ingestion callback route
func (h *IngestHandler) RegisterIngestRoutes(g *echo.Group) {
	g.POST("/ingest/posts", h.IngestPosts)
}

// IngestPosts upserts a batch of tagged posts and refreshes the posting
// creators' last-seen timestamps. The whole batch is validated before any
// write happens.
func (h *IngestHandler) IngestPosts(c echo.Context) error {
	var req models.IngestPostsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	inserted := 0
	for _, p := range req.Posts {
		publishedAt := p.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now()
		}

		post := &models.SocialPost{
			Platform:      p.Platform,
			PostID:        p.PostID,
			CreatorID:     p.CreatorID,
			CreatorName:   p.CreatorName,
			Content:       p.Content,
			URL:           p.URL,
			PublishedAt:   publishedAt,
			Summary:       p.Summary,
			Sentiment:     p.Sentiment,
			Tags:          p.Tags,
			MarketRelated: p.MarketRelated,
			Tickers:       p.Tickers,
		}
		if err := h.postRepository.UpsertPost(ctx, post); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		inserted++

		creator := &models.Creator{
			Platform:     p.Platform,
			CreatorID:    p.CreatorID,
			DisplayName:  p.CreatorName,
			LastPostedAt: &publishedAt,
		}
		if err := h.creatorRepository.UpsertCreator(creator); err != nil {
			// Creator bookkeeping must not lose the post batch
			logger.Log.Warn("failed to upsert creator during ingest",
				zap.String("platform", p.Platform),
				zap.String("creator_id", p.CreatorID),
				zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"inserted": inserted})
}
