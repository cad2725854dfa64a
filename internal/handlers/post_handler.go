package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/enrich"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
)

// PostHandler handles the public social-post listing
type PostHandler struct {
	postRepository     repositories.PostRepository
	likeRepository     repositories.LikeRepository
	favoriteRepository repositories.FavoriteRepository
	userRepository     repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository, favoriteRepo repositories.FavoriteRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository:     postRepo,
		likeRepository:     likeRepo,
		favoriteRepository: favoriteRepo,
		userRepository:     userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
}

// ListPosts returns a filtered page of ingested posts. Authenticated requests
// get personalized like/favorite flags; anonymous ones get them false.
func (h *PostHandler) ListPosts(c echo.Context) error {
	filter := models.PostFilter{
		Platform:      c.QueryParam("platform"),
		Sentiment:     c.QueryParam("sentiment"),
		MarketRelated: boolQueryParam(c, "market_related"),
		Skip:          int64(intQueryParam(c, "offset", 0)),
		Limit:         int64(intQueryParam(c, "limit", 50)),
	}

	posts, total, err := h.postRepository.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var userID uint
	if user := optionalUser(c, h.userRepository); user != nil {
		userID = user.ID
	}

	inter, err := enrich.LoadInteractions(h.likeRepository, h.favoriteRepository, userID, enrich.CollectPostIDs(posts))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": total,
		"posts": enrich.Posts(posts, inter),
	})
}
