package models

import "time"

// PostLike represents a like on a social post (post IDs are MongoDB ObjectIDs as strings)
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`
}

// PostFavorite represents a bookmarked post with optional user notes
type PostFavorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_favorite"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_favorite"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeRequest defines the request body for liking a post
type LikeRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// FavoriteRequest defines the request body for favoriting a post
type FavoriteRequest struct {
	PostID string `json:"postId" validate:"required"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
