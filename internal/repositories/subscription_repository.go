package repositories

import (
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for KOL subscription operations
type SubscriptionRepository interface {
	ListByUser(userID uint, platform string) ([]models.KolSubscription, error)
	GetSubscription(userID uint, platform, kolID string) (*models.KolSubscription, error)
	CreateSubscription(sub *models.KolSubscription) error
	UpdateNotify(userID uint, platform, kolID string, notify bool) (*models.KolSubscription, error)
	DeleteSubscription(userID uint, platform, kolID string) error
	CountByUser(userID uint) (int64, error)
	KolIDsByUser(userID uint, platform string) ([]string, error)
}

// PostgresSubscriptionRepository implements SubscriptionRepository for PostgreSQL
type PostgresSubscriptionRepository struct {
	db *gorm.DB
}

// NewPostgresSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewPostgresSubscriptionRepository(db *gorm.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// ListByUser retrieves a user's subscriptions, optionally platform-filtered,
// newest activity first
func (r *PostgresSubscriptionRepository) ListByUser(userID uint, platform string) ([]models.KolSubscription, error) {
	query := r.db.Where("user_id = ?", userID)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	var subs []models.KolSubscription
	err := query.Order("updated_at DESC").Find(&subs).Error
	return subs, err
}

// GetSubscription retrieves a single subscription by its composite key
func (r *PostgresSubscriptionRepository) GetSubscription(userID uint, platform, kolID string) (*models.KolSubscription, error) {
	var sub models.KolSubscription
	if err := r.db.Where("user_id = ? AND platform = ? AND kol_id = ?", userID, platform, kolID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription inserts a subscription; the unique index on
// (user_id, platform, kol_id) surfaces duplicates as gorm.ErrDuplicatedKey
func (r *PostgresSubscriptionRepository) CreateSubscription(sub *models.KolSubscription) error {
	return r.db.Create(sub).Error
}

// UpdateNotify updates the notify flag only and returns the refreshed row
func (r *PostgresSubscriptionRepository) UpdateNotify(userID uint, platform, kolID string, notify bool) (*models.KolSubscription, error) {
	var sub models.KolSubscription
	if err := r.db.Where("user_id = ? AND platform = ? AND kol_id = ?", userID, platform, kolID).First(&sub).Error; err != nil {
		return nil, err
	}
	sub.Notify = notify
	if err := r.db.Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription. Deleting an absent row is not an
// error; affected rows are deliberately not checked.
func (r *PostgresSubscriptionRepository) DeleteSubscription(userID uint, platform, kolID string) error {
	return r.db.Where("user_id = ? AND platform = ? AND kol_id = ?", userID, platform, kolID).
		Delete(&models.KolSubscription{}).Error
}

// CountByUser returns the total number of subscriptions held by a user
func (r *PostgresSubscriptionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.KolSubscription{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// KolIDsByUser returns the subscribed KOL identifiers, optionally platform-filtered
func (r *PostgresSubscriptionRepository) KolIDsByUser(userID uint, platform string) ([]string, error) {
	query := r.db.Model(&models.KolSubscription{}).Where("user_id = ?", userID)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	var ids []string
	err := query.Pluck("kol_id", &ids).Error
	return ids, err
}
