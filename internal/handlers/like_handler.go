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

// LikeHandler handles HTTP requests related to post likes
type LikeHandler struct {
	likeRepository     repositories.LikeRepository
	favoriteRepository repositories.FavoriteRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, favoriteRepo repositories.FavoriteRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:     likeRepo,
		favoriteRepository: favoriteRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.GET("/posts/like", h.GetLikes)
	g.POST("/posts/like", h.LikePost)
	g.DELETE("/posts/like", h.UnlikePost)
}

// GetLikes reports like state for a specific post, or lists every liked post
// joined with post details when no postId is given
func (h *LikeHandler) GetLikes(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if postID := c.QueryParam("postId"); postID != "" {
		liked, err := h.likeRepository.HasUserLikedPost(user.ID, postID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": liked})
	}

	likes, err := h.likeRepository.GetLikesByUser(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]string, len(likes))
	for i, l := range likes {
		postIDs[i] = l.PostID
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

// LikePost likes a post. Liking an already-liked post is an idempotent
// success; the unique-constraint violation is absorbed, not surfaced.
func (h *LikeHandler) LikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.LikeRequest
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

	like := &models.PostLike{
		UserID: user.ID,
		PostID: req.PostID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": true, "data": like})
}

// UnlikePost removes a like. Unliking a non-liked post is a no-op.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	postID := c.QueryParam("postId")
	if postID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "postId is required")
	}

	if err := h.likeRepository.DeleteLike(user.ID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": false})
}
