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

// FavoriteHandler handles HTTP requests related to post favorites
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	likeRepository     repositories.LikeRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		likeRepository:     likeRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
	}
}

// RegisterFavoriteRoutes registers favorite-related routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.GET("/posts/favorite", h.GetFavorites)
	g.POST("/posts/favorite", h.FavoritePost)
	g.DELETE("/posts/favorite", h.UnfavoritePost)
}

// GetFavorites reports favorite state for a specific post, or lists every
// favorited post joined with post details and notes when no postId is given
func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if postID := c.QueryParam("postId"); postID != "" {
		favorited, err := h.favoriteRepository.HasUserFavoritedPost(user.ID, postID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"favorited": favorited})
	}

	favorites, err := h.favoriteRepository.GetFavoritesByUser(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]string, len(favorites))
	for i, f := range favorites {
		postIDs[i] = f.PostID
	}
	posts, err := h.postRepository.GetPostsByIDs(c.Request().Context(), postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	inter, err := enrich.LoadInteractions(h.likeRepository, h.favoriteRepository, user.ID, enrich.CollectPostIDs(posts))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(posts),
		"posts": enrich.Posts(posts, inter),
	})
}

// FavoritePost favorites a post with optional notes. Favoriting an
// already-favorited post is an idempotent success.
func (h *FavoriteHandler) FavoritePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify post exists before touching the interaction table
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	favorite := &models.PostFavorite{
		UserID: user.ID,
		PostID: req.PostID,
		Notes:  req.Notes,
	}
	if err := h.favoriteRepository.CreateFavorite(favorite); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"favorited": true, "data": favorite})
}

// UnfavoritePost removes a favorite. Removing an absent favorite is a no-op.
func (h *FavoriteHandler) UnfavoritePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	postID := c.QueryParam("postId")
	if postID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "postId is required")
	}

	if err := h.favoriteRepository.DeleteFavorite(user.ID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"favorited": false})
}
