package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialPost represents an ingested social media post stored in MongoDB.
// The AI-derived fields (summary, sentiment, tags, market_related, tickers)
// are populated by the external ingestion pipeline before the post arrives here.
type SocialPost struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Platform      string             `json:"platform" bson:"platform"`
	PostID        string             `json:"post_id" bson:"post_id"` // platform-native post identifier
	CreatorID     string             `json:"creator_id" bson:"creator_id"`
	CreatorName   string             `json:"creator_name,omitempty" bson:"creator_name,omitempty"`
	Content       string             `json:"content" bson:"content"`
	URL           string             `json:"url,omitempty" bson:"url,omitempty"`
	PublishedAt   time.Time          `json:"published_at" bson:"published_at"`
	Summary       string             `json:"summary,omitempty" bson:"summary,omitempty"`
	Sentiment     string             `json:"sentiment,omitempty" bson:"sentiment,omitempty"` // positive, negative, neutral
	Tags          []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	MarketRelated bool               `json:"market_related" bson:"market_related"`
	Tickers       []string           `json:"tickers,omitempty" bson:"tickers,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// EnrichedPost is a post with per-user flags and aggregate counts attached at read time
type EnrichedPost struct {
	SocialPost
	UserLiked      bool   `json:"user_liked"`
	UserFavorited  bool   `json:"user_favorited"`
	TotalLikes     int64  `json:"total_likes"`
	TotalFavorites int64  `json:"total_favorites"`
	FavoriteNotes  string `json:"favorite_notes,omitempty"`
}

// PostFilter narrows post listings. Nil/zero fields are not applied.
type PostFilter struct {
	Platform      string
	Sentiment     string
	MarketRelated *bool
	CreatorIDs    []string
	Skip          int64
	Limit         int64
}

// IngestPost is a single tagged post pushed by the ingestion pipeline
type IngestPost struct {
	Platform      string    `json:"platform" validate:"required,oneof=TWITTER YOUTUBE REDNOTE REDDIT"`
	PostID        string    `json:"post_id" validate:"required"`
	CreatorID     string    `json:"creator_id" validate:"required"`
	CreatorName   string    `json:"creator_name,omitempty"`
	Content       string    `json:"content" validate:"required"`
	URL           string    `json:"url,omitempty" validate:"omitempty,url"`
	PublishedAt   time.Time `json:"published_at"`
	Summary       string    `json:"summary,omitempty"`
	Sentiment     string    `json:"sentiment,omitempty" validate:"omitempty,oneof=positive negative neutral"`
	Tags          []string  `json:"tags,omitempty"`
	MarketRelated bool      `json:"market_related"`
	Tickers       []string  `json:"tickers,omitempty"`
}

// IngestPostsRequest defines the batch body accepted by the ingestion callback
type IngestPostsRequest struct {
	Posts []IngestPost `json:"posts" validate:"required,min=1,dive"`
}
