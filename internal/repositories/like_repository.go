package repositories

import (
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for post like operations
type LikeRepository interface {
	CreateLike(like *models.PostLike) error
	DeleteLike(userID uint, postID string) error
	HasUserLikedPost(userID uint, postID string) (bool, error)
	GetLikesByUser(userID uint) ([]models.PostLike, error)
	GetLikesForPosts(postIDs []string) ([]models.PostLike, error)
	GetLikedPostIDs(userID uint, postIDs []string) (map[string]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like; duplicates surface as gorm.ErrDuplicatedKey via
// the (user_id, post_id) unique index
func (r *PostgresLikeRepository) CreateLike(like *models.PostLike) error {
	return r.db.Create(like).Error
}

// DeleteLike removes a like. Removing an absent like is a no-op.
func (r *PostgresLikeRepository) DeleteLike(userID uint, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostLike{}).Error
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(userID uint, postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PostLike{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesByUser retrieves all likes held by a user, newest first
func (r *PostgresLikeRepository) GetLikesByUser(userID uint) ([]models.PostLike, error) {
	var likes []models.PostLike
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&likes).Error
	return likes, err
}

// GetLikesForPosts retrieves every like row touching the given posts. Callers
// count these in memory to build per-post totals.
func (r *PostgresLikeRepository) GetLikesForPosts(postIDs []string) ([]models.PostLike, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likes []models.PostLike
	err := r.db.Where("post_id IN ?", postIDs).Find(&likes).Error
	return likes, err
}

// GetLikedPostIDs returns which of the given posts the user has liked
func (r *PostgresLikeRepository) GetLikedPostIDs(userID uint, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.PostLike
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}
