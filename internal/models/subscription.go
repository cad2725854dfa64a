package models

import "time"

// KolSubscription represents a user's subscription to a key opinion leader
type KolSubscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_platform_kol"`
	Platform  string    `json:"platform" gorm:"size:20;uniqueIndex:idx_user_platform_kol"`
	KolID     string    `json:"kol_id" gorm:"uniqueIndex:idx_user_platform_kol"`
	Notify    bool      `json:"notify" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name the ingestion pipeline expects
func (KolSubscription) TableName() string {
	return "user_kol_entries"
}

// CreateSubscriptionRequest defines the request body for subscribing to a KOL
type CreateSubscriptionRequest struct {
	Platform string `json:"platform" validate:"required,oneof=TWITTER YOUTUBE REDNOTE REDDIT"`
	KolID    string `json:"kol_id" validate:"required"`
	Notify   *bool  `json:"notify,omitempty"`
}

// UpdateSubscriptionRequest defines the request body for toggling notifications
type UpdateSubscriptionRequest struct {
	Platform string `json:"platform" validate:"required,oneof=TWITTER YOUTUBE REDNOTE REDDIT"`
	KolID    string `json:"kol_id" validate:"required"`
	Notify   *bool  `json:"notify" validate:"required"`
}
