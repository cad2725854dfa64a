package models

import "time"

// WatchlistEntry represents a stock symbol tracked by a user
type WatchlistEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_symbol"`
	Symbol    string    `json:"symbol" gorm:"size:12;uniqueIndex:idx_user_symbol"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WatchlistRequest defines the request body for tracking a stock
type WatchlistRequest struct {
	Symbol string `json:"symbol" validate:"required,min=1,max=12"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
