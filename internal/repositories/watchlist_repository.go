package repositories

import (
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"gorm.io/gorm"
)

// WatchlistRepository defines the interface for tracked-stock operations
type WatchlistRepository interface {
	ListByUser(userID uint) ([]models.WatchlistEntry, error)
	CreateEntry(entry *models.WatchlistEntry) error
	DeleteEntry(userID uint, symbol string) error
	IsTracked(userID uint, symbol string) (bool, error)
}

// PostgresWatchlistRepository implements WatchlistRepository for PostgreSQL
type PostgresWatchlistRepository struct {
	db *gorm.DB
}

// NewPostgresWatchlistRepository creates a new PostgresWatchlistRepository
func NewPostgresWatchlistRepository(db *gorm.DB) *PostgresWatchlistRepository {
	return &PostgresWatchlistRepository{db: db}
}

// ListByUser retrieves a user's tracked stocks, newest first
func (r *PostgresWatchlistRepository) ListByUser(userID uint) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// CreateEntry inserts a watchlist row; duplicates surface as gorm.ErrDuplicatedKey
func (r *PostgresWatchlistRepository) CreateEntry(entry *models.WatchlistEntry) error {
	return r.db.Create(entry).Error
}

// DeleteEntry removes a tracked stock. Removing an absent entry is a no-op.
func (r *PostgresWatchlistRepository) DeleteEntry(userID uint, symbol string) error {
	return r.db.Where("user_id = ? AND symbol = ?", userID, symbol).Delete(&models.WatchlistEntry{}).Error
}

// IsTracked checks if a user already tracks a symbol
func (r *PostgresWatchlistRepository) IsTracked(userID uint, symbol string) (bool, error) {
	var count int64
	err := r.db.Model(&models.WatchlistEntry{}).Where("user_id = ? AND symbol = ?", userID, symbol).Count(&count).Error
	return count > 0, err
}
