package repositories

import (
	"testing"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the same error
// translation the production config uses, so duplicate-key detection behaves
// identically in tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Creator{},
		&models.KolSubscription{},
		&models.PostLike{},
		&models.PostFavorite{},
		&models.TrendingTicker{},
		&models.TrendingTopic{},
		&models.WatchlistEntry{},
	))
	return db
}

type RepositoriesTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *RepositoriesTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
}

func TestRepositoriesTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoriesTestSuite))
}

func (s *RepositoriesTestSuite) TestSubscriptionDuplicateKey() {
	repo := NewPostgresSubscriptionRepository(s.db)

	sub := &models.KolSubscription{UserID: 1, Platform: models.PlatformTwitter, KolID: "elonmusk", Notify: true}
	s.Require().NoError(repo.CreateSubscription(sub))

	dup := &models.KolSubscription{UserID: 1, Platform: models.PlatformTwitter, KolID: "elonmusk"}
	err := repo.CreateSubscription(dup)
	s.Require().ErrorIs(err, gorm.ErrDuplicatedKey)

	// Same KOL on another platform is a distinct subscription
	other := &models.KolSubscription{UserID: 1, Platform: models.PlatformYouTube, KolID: "elonmusk"}
	s.Require().NoError(repo.CreateSubscription(other))

	count, err := repo.CountByUser(1)
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *RepositoriesTestSuite) TestSubscriptionUpdateNotify() {
	repo := NewPostgresSubscriptionRepository(s.db)

	sub := &models.KolSubscription{UserID: 1, Platform: models.PlatformReddit, KolID: "deepvalue", Notify: true}
	s.Require().NoError(repo.CreateSubscription(sub))

	updated, err := repo.UpdateNotify(1, models.PlatformReddit, "deepvalue", false)
	s.Require().NoError(err)
	s.False(updated.Notify)

	_, err = repo.UpdateNotify(1, models.PlatformReddit, "missing", false)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoriesTestSuite) TestSubscriptionDeleteIsIdempotent() {
	repo := NewPostgresSubscriptionRepository(s.db)

	sub := &models.KolSubscription{UserID: 1, Platform: models.PlatformTwitter, KolID: "chamath"}
	s.Require().NoError(repo.CreateSubscription(sub))

	s.Require().NoError(repo.DeleteSubscription(1, models.PlatformTwitter, "chamath"))
	s.Require().NoError(repo.DeleteSubscription(1, models.PlatformTwitter, "chamath"))

	count, err := repo.CountByUser(1)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

func (s *RepositoriesTestSuite) TestSubscriptionListAndKolIDs() {
	repo := NewPostgresSubscriptionRepository(s.db)

	s.Require().NoError(repo.CreateSubscription(&models.KolSubscription{UserID: 1, Platform: models.PlatformTwitter, KolID: "a"}))
	s.Require().NoError(repo.CreateSubscription(&models.KolSubscription{UserID: 1, Platform: models.PlatformReddit, KolID: "b"}))
	s.Require().NoError(repo.CreateSubscription(&models.KolSubscription{UserID: 2, Platform: models.PlatformTwitter, KolID: "c"}))

	subs, err := repo.ListByUser(1, "")
	s.Require().NoError(err)
	s.Len(subs, 2)

	subs, err = repo.ListByUser(1, models.PlatformReddit)
	s.Require().NoError(err)
	s.Len(subs, 1)
	s.Equal("b", subs[0].KolID)

	ids, err := repo.KolIDsByUser(1, models.PlatformTwitter)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, ids)
}

func (s *RepositoriesTestSuite) TestCreatorListPagination() {
	repo := NewPostgresCreatorRepository(s.db)

	scores := []float64{10, 50, 30, 90, 20}
	for i, score := range scores {
		s.Require().NoError(repo.UpsertCreator(&models.Creator{
			Platform:       models.PlatformTwitter,
			CreatorID:      string(rune('a' + i)),
			DisplayName:    "Creator",
			InfluenceScore: score,
		}))
	}

	creators, total, err := repo.ListCreators(CreatorListOptions{Limit: 2, Offset: 0})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(creators, 2)
	s.Equal(90.0, creators[0].InfluenceScore)
	s.Equal(50.0, creators[1].InfluenceScore)
}

func (s *RepositoriesTestSuite) TestCreatorListRejectsUnknownSortColumn() {
	repo := NewPostgresCreatorRepository(s.db)

	s.Require().NoError(repo.UpsertCreator(&models.Creator{Platform: models.PlatformTwitter, CreatorID: "x", InfluenceScore: 10}))
	s.Require().NoError(repo.UpsertCreator(&models.Creator{Platform: models.PlatformTwitter, CreatorID: "y", InfluenceScore: 20}))

	// Hostile sort_by values silently fall back to the default ranking
	creators, _, err := repo.ListCreators(CreatorListOptions{Limit: 10, SortBy: "influence_score; DROP TABLE creators"})
	s.Require().NoError(err)
	s.Require().Len(creators, 2)
	s.Equal(20.0, creators[0].InfluenceScore)
}

func (s *RepositoriesTestSuite) TestCreatorUpsertRefreshesRow() {
	repo := NewPostgresCreatorRepository(s.db)

	s.Require().NoError(repo.UpsertCreator(&models.Creator{
		Platform: models.PlatformYouTube, CreatorID: "mmi", DisplayName: "Meet Kevin", FollowerCount: 100,
	}))
	s.Require().NoError(repo.UpsertCreator(&models.Creator{
		Platform: models.PlatformYouTube, CreatorID: "mmi", DisplayName: "Meet Kevin", FollowerCount: 250,
	}))

	creator, err := repo.GetCreator(models.PlatformYouTube, "mmi")
	s.Require().NoError(err)
	s.Equal(int64(250), creator.FollowerCount)

	var count int64
	s.db.Model(&models.Creator{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *RepositoriesTestSuite) TestLikeIdempotency() {
	repo := NewPostgresLikeRepository(s.db)

	s.Require().NoError(repo.CreateLike(&models.PostLike{UserID: 1, PostID: "p1"}))

	err := repo.CreateLike(&models.PostLike{UserID: 1, PostID: "p1"})
	s.Require().ErrorIs(err, gorm.ErrDuplicatedKey)

	liked, err := repo.HasUserLikedPost(1, "p1")
	s.Require().NoError(err)
	s.True(liked)

	// Deleting twice is fine either time
	s.Require().NoError(repo.DeleteLike(1, "p1"))
	s.Require().NoError(repo.DeleteLike(1, "p1"))

	liked, err = repo.HasUserLikedPost(1, "p1")
	s.Require().NoError(err)
	s.False(liked)
}

func (s *RepositoriesTestSuite) TestLikeLookups() {
	repo := NewPostgresLikeRepository(s.db)

	s.Require().NoError(repo.CreateLike(&models.PostLike{UserID: 1, PostID: "p1"}))
	s.Require().NoError(repo.CreateLike(&models.PostLike{UserID: 2, PostID: "p1"}))
	s.Require().NoError(repo.CreateLike(&models.PostLike{UserID: 1, PostID: "p2"}))

	likes, err := repo.GetLikesForPosts([]string{"p1", "p2"})
	s.Require().NoError(err)
	s.Len(likes, 3)

	liked, err := repo.GetLikedPostIDs(2, []string{"p1", "p2"})
	s.Require().NoError(err)
	s.True(liked["p1"])
	s.False(liked["p2"])

	mine, err := repo.GetLikesByUser(1)
	s.Require().NoError(err)
	s.Len(mine, 2)
}

func (s *RepositoriesTestSuite) TestFavoriteNotes() {
	repo := NewPostgresFavoriteRepository(s.db)

	s.Require().NoError(repo.CreateFavorite(&models.PostFavorite{UserID: 1, PostID: "p1", Notes: "watch earnings"}))

	err := repo.CreateFavorite(&models.PostFavorite{UserID: 1, PostID: "p1"})
	s.Require().ErrorIs(err, gorm.ErrDuplicatedKey)

	favs, err := repo.GetFavoritesByUser(1)
	s.Require().NoError(err)
	s.Require().Len(favs, 1)
	s.Equal("watch earnings", favs[0].Notes)

	favorited, err := repo.GetFavoritedPostIDs(1, []string{"p1"})
	s.Require().NoError(err)
	s.True(favorited["p1"])
}

func (s *RepositoriesTestSuite) TestTrendingTickerListSortedByScore() {
	repo := NewPostgresTrendingRepository(s.db)

	s.Require().NoError(repo.UpsertTicker(&models.TrendingTicker{Symbol: "AAPL", Platform: models.PlatformTwitter, TrendingScore: 40}))
	s.Require().NoError(repo.UpsertTicker(&models.TrendingTicker{Symbol: "TSLA", Platform: models.PlatformTwitter, TrendingScore: 80}))
	s.Require().NoError(repo.UpsertTicker(&models.TrendingTicker{Symbol: "AAPL", Platform: models.PlatformReddit, TrendingScore: 60}))

	tickers, total, err := repo.ListTickers(TrendingListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(tickers, 3)
	s.Equal("TSLA", tickers[0].Symbol)

	tickers, total, err = repo.ListTickers(TrendingListOptions{Limit: 10, Platform: models.PlatformReddit})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("AAPL", tickers[0].Symbol)
}

func (s *RepositoriesTestSuite) TestTrendingTopicTypeFilter() {
	repo := NewPostgresTrendingRepository(s.db)

	s.Require().NoError(repo.UpsertTopic(&models.TrendingTopic{Topic: "Fed rate path", Platform: models.PlatformTwitter, TopicType: "macro", TrendingScore: 70}))
	s.Require().NoError(repo.UpsertTopic(&models.TrendingTopic{Topic: "AI capex cycle", Platform: models.PlatformTwitter, TopicType: "sector", TrendingScore: 90}))

	topics, total, err := repo.ListTopics(TrendingListOptions{Limit: 10, TopicType: "macro"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("Fed rate path", topics[0].Topic)
}

func (s *RepositoriesTestSuite) TestTrendingUpsertRefreshes() {
	repo := NewPostgresTrendingRepository(s.db)

	s.Require().NoError(repo.UpsertTicker(&models.TrendingTicker{Symbol: "NVDA", Platform: models.PlatformTwitter, MentionCount: 10}))
	s.Require().NoError(repo.UpsertTicker(&models.TrendingTicker{Symbol: "NVDA", Platform: models.PlatformTwitter, MentionCount: 99}))

	tickers, total, err := repo.ListTickers(TrendingListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(int64(99), tickers[0].MentionCount)
}

func (s *RepositoriesTestSuite) TestWatchlist() {
	repo := NewPostgresWatchlistRepository(s.db)

	s.Require().NoError(repo.CreateEntry(&models.WatchlistEntry{UserID: 1, Symbol: "AAPL", Notes: "core holding"}))

	err := repo.CreateEntry(&models.WatchlistEntry{UserID: 1, Symbol: "AAPL"})
	s.Require().ErrorIs(err, gorm.ErrDuplicatedKey)

	// A different user may track the same symbol
	s.Require().NoError(repo.CreateEntry(&models.WatchlistEntry{UserID: 2, Symbol: "AAPL"}))

	tracked, err := repo.IsTracked(1, "AAPL")
	s.Require().NoError(err)
	s.True(tracked)

	s.Require().NoError(repo.DeleteEntry(1, "AAPL"))
	s.Require().NoError(repo.DeleteEntry(1, "AAPL"))

	entries, err := repo.ListByUser(1)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *RepositoriesTestSuite) TestUserLookups() {
	repo := NewPostgresUserRepository(s.db)

	user := &models.User{Name: "Dana", Email: "dana@example.com", FirebaseUID: "fb-123"}
	s.Require().NoError(repo.CreateUser(user))

	byUID, err := repo.GetUserByFirebaseUID("fb-123")
	s.Require().NoError(err)
	s.Equal(user.ID, byUID.ID)

	byEmail, err := repo.GetUserByEmail("dana@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)

	_, err = repo.GetUserByFirebaseUID("nope")
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}
