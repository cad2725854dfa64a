package models

import "time"

// Creator represents a tracked key opinion leader on a social platform.
// Rows are produced by the external ingestion pipeline; the API only reads them.
type Creator struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Platform        string     `json:"platform" gorm:"size:20;index;uniqueIndex:idx_platform_creator"`
	CreatorID       string     `json:"creator_id" gorm:"uniqueIndex:idx_platform_creator"`
	DisplayName     string     `json:"display_name"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	Category        string     `json:"category,omitempty" gorm:"size:50;index"`
	FollowerCount   int64      `json:"follower_count"`
	EngagementScore float64    `json:"engagement_score"`
	InfluenceScore  float64    `json:"influence_score"`
	TrendingScore   float64    `json:"trending_score"`
	Verified        bool       `json:"verified" gorm:"index"`
	LastPostedAt    *time.Time `json:"last_posted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// EnrichedCreator is a creator with the per-request user_tracked flag attached
type EnrichedCreator struct {
	Creator
	UserTracked bool `json:"user_tracked"`
}
