package models

import "time"

// TrendingTicker is a platform-scoped aggregate row scoring a stock symbol by
// recent social mention volume and sentiment. Written by the ingestion pipeline.
type TrendingTicker struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Symbol          string    `json:"symbol" gorm:"size:12;index;uniqueIndex:idx_ticker_platform"`
	Platform        string    `json:"platform" gorm:"size:20;index;uniqueIndex:idx_ticker_platform"`
	Name            string    `json:"name"`
	MentionCount    int64     `json:"mention_count"`
	SentimentScore  float64   `json:"sentiment_score"`
	EngagementScore float64   `json:"engagement_score"`
	TrendingScore   float64   `json:"trending_score"`
	PriceChange     float64   `json:"price_change"`
	LastSeenAt      time.Time `json:"last_seen_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TrendingTopic is a platform-scoped aggregate row scoring a discussion theme
type TrendingTopic struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Topic           string    `json:"topic" gorm:"index;uniqueIndex:idx_topic_platform"`
	Platform        string    `json:"platform" gorm:"size:20;index;uniqueIndex:idx_topic_platform"`
	TopicType       string    `json:"topic_type" gorm:"size:30;index"` // sector, event, meme, macro
	MentionCount    int64     `json:"mention_count"`
	SentimentScore  float64   `json:"sentiment_score"`
	EngagementScore float64   `json:"engagement_score"`
	TrendingScore   float64   `json:"trending_score"`
	RelatedTickers  string    `json:"related_tickers,omitempty"` // comma-separated symbols
	LastSeenAt      time.Time `json:"last_seen_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
