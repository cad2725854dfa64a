package repositories

import (
	"fmt"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatorListOptions are the query-string filters for the creators list
type CreatorListOptions struct {
	Limit         int
	Offset        int
	Platform      string
	Category      string
	Verified      *bool
	SortBy        string
	SortDirection string
}

// CreatorRepository defines the interface for creator data operations
type CreatorRepository interface {
	ListCreators(opts CreatorListOptions) ([]models.Creator, int64, error)
	GetCreator(platform, creatorID string) (*models.Creator, error)
	UpsertCreator(creator *models.Creator) error
}

// Columns the creators list may sort by. Unknown sort_by values fall back
// to the default ranking column rather than reaching the SQL layer.
var creatorSortColumns = map[string]bool{
	"influence_score":  true,
	"follower_count":   true,
	"engagement_score": true,
	"trending_score":   true,
	"last_posted_at":   true,
}

// PostgresCreatorRepository implements CreatorRepository for PostgreSQL
type PostgresCreatorRepository struct {
	db *gorm.DB
}

// NewPostgresCreatorRepository creates a new PostgresCreatorRepository
func NewPostgresCreatorRepository(db *gorm.DB) *PostgresCreatorRepository {
	return &PostgresCreatorRepository{db: db}
}

// ListCreators returns a bounded page of creators plus the exact filtered total
func (r *PostgresCreatorRepository) ListCreators(opts CreatorListOptions) ([]models.Creator, int64, error) {
	query := r.db.Model(&models.Creator{})
	if opts.Platform != "" {
		query = query.Where("platform = ?", opts.Platform)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.Verified != nil {
		query = query.Where("verified = ?", *opts.Verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := opts.SortBy
	if !creatorSortColumns[sortBy] {
		sortBy = "influence_score"
	}
	direction := "DESC"
	if opts.SortDirection == "asc" {
		direction = "ASC"
	}

	var creators []models.Creator
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&creators).Error
	if err != nil {
		return nil, 0, err
	}
	return creators, total, nil
}

// GetCreator retrieves a creator by its composite platform identity
func (r *PostgresCreatorRepository) GetCreator(platform, creatorID string) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.Where("platform = ? AND creator_id = ?", platform, creatorID).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// UpsertCreator inserts or refreshes a creator row keyed by (platform, creator_id)
func (r *PostgresCreatorRepository) UpsertCreator(creator *models.Creator) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}, {Name: "creator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "avatar_url", "category", "follower_count",
			"engagement_score", "influence_score", "trending_score",
			"verified", "last_posted_at", "updated_at",
		}),
	}).Create(creator).Error
}
