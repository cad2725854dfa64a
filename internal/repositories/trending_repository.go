package repositories

import (
	"fmt"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrendingListOptions are the query-string filters for trending lists
type TrendingListOptions struct {
	Limit         int
	Offset        int
	Platform      string
	TopicType     string
	SortBy        string
	SortDirection string
}

// TrendingRepository defines the interface for trending ticker/topic reads
type TrendingRepository interface {
	ListTickers(opts TrendingListOptions) ([]models.TrendingTicker, int64, error)
	ListTopics(opts TrendingListOptions) ([]models.TrendingTopic, int64, error)
	UpsertTicker(ticker *models.TrendingTicker) error
	UpsertTopic(topic *models.TrendingTopic) error
}

var trendingSortColumns = map[string]bool{
	"trending_score":   true,
	"mention_count":    true,
	"sentiment_score":  true,
	"engagement_score": true,
	"last_seen_at":     true,
}

// PostgresTrendingRepository implements TrendingRepository for PostgreSQL
type PostgresTrendingRepository struct {
	db *gorm.DB
}

// NewPostgresTrendingRepository creates a new PostgresTrendingRepository
func NewPostgresTrendingRepository(db *gorm.DB) *PostgresTrendingRepository {
	return &PostgresTrendingRepository{db: db}
}

func trendingOrder(opts TrendingListOptions) string {
	sortBy := opts.SortBy
	if !trendingSortColumns[sortBy] {
		sortBy = "trending_score"
	}
	direction := "DESC"
	if opts.SortDirection == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", sortBy, direction)
}

// ListTickers returns a bounded page of trending tickers plus the exact total
func (r *PostgresTrendingRepository) ListTickers(opts TrendingListOptions) ([]models.TrendingTicker, int64, error) {
	query := r.db.Model(&models.TrendingTicker{})
	if opts.Platform != "" {
		query = query.Where("platform = ?", opts.Platform)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickers []models.TrendingTicker
	err := query.Order(trendingOrder(opts)).Limit(opts.Limit).Offset(opts.Offset).Find(&tickers).Error
	if err != nil {
		return nil, 0, err
	}
	return tickers, total, nil
}

// ListTopics returns a bounded page of trending topics plus the exact total
func (r *PostgresTrendingRepository) ListTopics(opts TrendingListOptions) ([]models.TrendingTopic, int64, error) {
	query := r.db.Model(&models.TrendingTopic{})
	if opts.Platform != "" {
		query = query.Where("platform = ?", opts.Platform)
	}
	if opts.TopicType != "" {
		query = query.Where("topic_type = ?", opts.TopicType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var topics []models.TrendingTopic
	err := query.Order(trendingOrder(opts)).Limit(opts.Limit).Offset(opts.Offset).Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

// UpsertTicker inserts or refreshes a trending ticker keyed by (symbol, platform)
func (r *PostgresTrendingRepository) UpsertTicker(ticker *models.TrendingTicker) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "mention_count", "sentiment_score", "engagement_score",
			"trending_score", "price_change", "last_seen_at", "updated_at",
		}),
	}).Create(ticker).Error
}

// UpsertTopic inserts or refreshes a trending topic keyed by (topic, platform)
func (r *PostgresTrendingRepository) UpsertTopic(topic *models.TrendingTopic) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "topic"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"topic_type", "mention_count", "sentiment_score", "engagement_score",
			"trending_score", "related_tickers", "last_seen_at", "updated_at",
		}),
	}).Create(topic).Error
}
