package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder populates the databases with realistic development data
type Seeder struct {
	db           *gorm.DB
	postRepo     repositories.PostRepository
	creatorRepo  repositories.CreatorRepository
	trendingRepo repositories.TrendingRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, postRepo repositories.PostRepository) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:           db,
		postRepo:     postRepo,
		creatorRepo:  repositories.NewPostgresCreatorRepository(db),
		trendingRepo: repositories.NewPostgresTrendingRepository(db),
	}
}

var seedTickers = []struct {
	symbol string
	name   string
}{
	{"AAPL", "Apple Inc."},
	{"TSLA", "Tesla, Inc."},
	{"NVDA", "NVIDIA Corporation"},
	{"MSFT", "Microsoft Corporation"},
	{"AMZN", "Amazon.com, Inc."},
	{"GOOGL", "Alphabet Inc."},
	{"META", "Meta Platforms, Inc."},
	{"AMD", "Advanced Micro Devices, Inc."},
	{"PLTR", "Palantir Technologies Inc."},
	{"GME", "GameStop Corp."},
}

var seedCategories = []string{"tech", "macro", "options", "crypto", "value", "momentum"}

var seedTopics = []struct {
	topic     string
	topicType string
}{
	{"AI capex cycle", "sector"},
	{"Fed rate path", "macro"},
	{"Earnings season", "event"},
	{"Semiconductor supply", "sector"},
	{"Short squeeze watch", "meme"},
	{"EV price war", "sector"},
	{"Dollar strength", "macro"},
	{"Buyback announcements", "event"},
}

// SeedDev seeds the development databases with realistic data
func (s *Seeder) SeedDev(ctx context.Context) error {
	logger.Log.Info("Creating creators...")
	creators, err := s.seedCreators(40)
	if err != nil {
		return fmt.Errorf("failed to seed creators: %w", err)
	}

	logger.Log.Info("Creating posts...")
	if err := s.seedPosts(ctx, creators, 300); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	logger.Log.Info("Creating trending tickers...")
	if err := s.seedTrendingTickers(); err != nil {
		return fmt.Errorf("failed to seed trending tickers: %w", err)
	}

	logger.Log.Info("Creating trending topics...")
	if err := s.seedTrendingTopics(); err != nil {
		return fmt.Errorf("failed to seed trending topics: %w", err)
	}

	return nil
}

// Clean removes all seed data from PostgreSQL (use with caution!)
func (s *Seeder) Clean() error {
	tables := []string{
		"post_likes", "post_favorites", "user_kol_entries",
		"watchlist_entries", "trending_tickers", "trending_topics", "creators",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

// seedCreators creates KOL rows across every platform
func (s *Seeder) seedCreators(count int) ([]models.Creator, error) {
	creators := make([]models.Creator, 0, count)

	for i := 0; i < count; i++ {
		platform := models.AllPlatforms[rand.Intn(len(models.AllPlatforms))]
		username := gofakeit.Username()
		lastPosted := gofakeit.DateRange(time.Now().AddDate(0, 0, -14), time.Now())

		creator := models.Creator{
			Platform:        platform,
			CreatorID:       fmt.Sprintf("%s_%d", strings.ToLower(username), i),
			DisplayName:     gofakeit.Name(),
			AvatarURL:       fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", username),
			Category:        seedCategories[rand.Intn(len(seedCategories))],
			FollowerCount:   int64(rand.Intn(2_000_000)),
			EngagementScore: rand.Float64() * 100,
			InfluenceScore:  rand.Float64() * 100,
			TrendingScore:   rand.Float64() * 100,
			Verified:        rand.Float32() < 0.3,
			LastPostedAt:    &lastPosted,
		}
		if err := s.creatorRepo.UpsertCreator(&creator); err != nil {
			return nil, fmt.Errorf("failed to create creator: %w", err)
		}
		creators = append(creators, creator)
	}

	logger.Log.Info("Created creators", zap.Int("count", len(creators)))
	return creators, nil
}

// seedPosts creates tagged posts attributed to the seeded creators
func (s *Seeder) seedPosts(ctx context.Context, creators []models.Creator, count int) error {
	if len(creators) == 0 {
		return nil
	}

	sentiments := []string{"positive", "negative", "neutral"}
	tagPool := []string{"earnings", "fed", "ai", "semis", "ev", "dividends", "short-interest", "guidance"}

	for i := 0; i < count; i++ {
		creator := creators[rand.Intn(len(creators))]
		publishedAt := gofakeit.DateRange(time.Now().AddDate(0, 0, -14), time.Now())

		tickerCount := rand.Intn(3)
		tickers := make([]string, 0, tickerCount)
		seen := map[string]bool{}
		for len(tickers) < tickerCount {
			t := seedTickers[rand.Intn(len(seedTickers))].symbol
			if !seen[t] {
				seen[t] = true
				tickers = append(tickers, t)
			}
		}

		tagCount := rand.Intn(3) + 1
		tags := make([]string, 0, tagCount)
		seenTags := map[string]bool{}
		for len(tags) < tagCount {
			t := tagPool[rand.Intn(len(tagPool))]
			if !seenTags[t] {
				seenTags[t] = true
				tags = append(tags, t)
			}
		}

		post := models.SocialPost{
			Platform:      creator.Platform,
			PostID:        gofakeit.UUID(),
			CreatorID:     creator.CreatorID,
			CreatorName:   creator.DisplayName,
			Content:       gofakeit.Paragraph(1, 3, 12, " "),
			URL:           gofakeit.URL(),
			PublishedAt:   publishedAt,
			Summary:       gofakeit.Sentence(10),
			Sentiment:     sentiments[rand.Intn(len(sentiments))],
			Tags:          tags,
			MarketRelated: len(tickers) > 0 || rand.Float32() < 0.5,
			Tickers:       tickers,
		}
		if err := s.postRepo.UpsertPost(ctx, &post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
	}

	logger.Log.Info("Created posts", zap.Int("count", count))
	return nil
}

// seedTrendingTickers creates one trending row per (ticker, platform) pair
func (s *Seeder) seedTrendingTickers() error {
	created := 0
	for _, t := range seedTickers {
		for _, platform := range models.AllPlatforms {
			if rand.Float32() < 0.4 {
				continue
			}
			ticker := models.TrendingTicker{
				Symbol:          t.symbol,
				Platform:        platform,
				Name:            t.name,
				MentionCount:    int64(rand.Intn(5000)),
				SentimentScore:  rand.Float64()*2 - 1,
				EngagementScore: rand.Float64() * 100,
				TrendingScore:   rand.Float64() * 100,
				PriceChange:     rand.Float64()*10 - 5,
				LastSeenAt:      gofakeit.DateRange(time.Now().AddDate(0, 0, -1), time.Now()),
			}
			if err := s.trendingRepo.UpsertTicker(&ticker); err != nil {
				return fmt.Errorf("failed to create trending ticker: %w", err)
			}
			created++
		}
	}
	logger.Log.Info("Created trending tickers", zap.Int("count", created))
	return nil
}

// seedTrendingTopics creates one trending row per (topic, platform) pair
func (s *Seeder) seedTrendingTopics() error {
	created := 0
	relatedPool := make([]string, len(seedTickers))
	for i, t := range seedTickers {
		relatedPool[i] = t.symbol
	}

	for _, t := range seedTopics {
		for _, platform := range models.AllPlatforms {
			if rand.Float32() < 0.5 {
				continue
			}
			related := relatedPool[rand.Intn(len(relatedPool))]
			topic := models.TrendingTopic{
				Topic:           t.topic,
				Platform:        platform,
				TopicType:       t.topicType,
				MentionCount:    int64(rand.Intn(3000)),
				SentimentScore:  rand.Float64()*2 - 1,
				EngagementScore: rand.Float64() * 100,
				TrendingScore:   rand.Float64() * 100,
				RelatedTickers:  related,
				LastSeenAt:      gofakeit.DateRange(time.Now().AddDate(0, 0, -1), time.Now()),
			}
			if err := s.trendingRepo.UpsertTopic(&topic); err != nil {
				return fmt.Errorf("failed to create trending topic: %w", err)
			}
			created++
		}
	}
	logger.Log.Info("Created trending topics", zap.Int("count", created))
	return nil
}
