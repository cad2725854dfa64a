package repositories

import (
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for post favorite operations
type FavoriteRepository interface {
	CreateFavorite(fav *models.PostFavorite) error
	DeleteFavorite(userID uint, postID string) error
	HasUserFavoritedPost(userID uint, postID string) (bool, error)
	GetFavoritesByUser(userID uint) ([]models.PostFavorite, error)
	GetFavoritesForPosts(postIDs []string) ([]models.PostFavorite, error)
	GetFavoritedPostIDs(userID uint, postIDs []string) (map[string]bool, error)
}

// PostgresFavoriteRepository implements FavoriteRepository for PostgreSQL
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

// NewPostgresFavoriteRepository creates a new PostgresFavoriteRepository
func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// CreateFavorite inserts a favorite; duplicates surface as gorm.ErrDuplicatedKey
func (r *PostgresFavoriteRepository) CreateFavorite(fav *models.PostFavorite) error {
	return r.db.Create(fav).Error
}

// DeleteFavorite removes a favorite. Removing an absent favorite is a no-op.
func (r *PostgresFavoriteRepository) DeleteFavorite(userID uint, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostFavorite{}).Error
}

// HasUserFavoritedPost checks if a user has favorited a specific post
func (r *PostgresFavoriteRepository) HasUserFavoritedPost(userID uint, postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PostFavorite{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFavoritesByUser retrieves a user's favorites with notes, newest first
func (r *PostgresFavoriteRepository) GetFavoritesByUser(userID uint) ([]models.PostFavorite, error) {
	var favs []models.PostFavorite
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favs).Error
	return favs, err
}

// GetFavoritesForPosts retrieves every favorite row touching the given posts
func (r *PostgresFavoriteRepository) GetFavoritesForPosts(postIDs []string) ([]models.PostFavorite, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var favs []models.PostFavorite
	err := r.db.Where("post_id IN ?", postIDs).Find(&favs).Error
	return favs, err
}

// GetFavoritedPostIDs returns which of the given posts the user has favorited
func (r *PostgresFavoriteRepository) GetFavoritedPostIDs(userID uint, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var favs []models.PostFavorite
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&favs).Error
	if err != nil {
		return nil, err
	}
	for _, f := range favs {
		result[f.PostID] = true
	}
	return result, nil
}
