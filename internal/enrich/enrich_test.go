package enrich

import (
	"testing"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepos(t *testing.T) (repositories.LikeRepository, repositories.FavoriteRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PostLike{}, &models.PostFavorite{}))
	return repositories.NewPostgresLikeRepository(db), repositories.NewPostgresFavoriteRepository(db)
}

func TestLoadInteractions(t *testing.T) {
	likeRepo, favRepo := setupRepos(t)

	posts := []models.SocialPost{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}
	p0, p1 := posts[0].ID.Hex(), posts[1].ID.Hex()

	require.NoError(t, likeRepo.CreateLike(&models.PostLike{UserID: 1, PostID: p0}))
	require.NoError(t, likeRepo.CreateLike(&models.PostLike{UserID: 2, PostID: p0}))
	require.NoError(t, likeRepo.CreateLike(&models.PostLike{UserID: 2, PostID: p1}))
	require.NoError(t, favRepo.CreateFavorite(&models.PostFavorite{UserID: 1, PostID: p1, Notes: "revisit after earnings"}))

	inter, err := LoadInteractions(likeRepo, favRepo, 1, CollectPostIDs(posts))
	require.NoError(t, err)

	assert.Equal(t, int64(2), inter.LikeCounts[p0])
	assert.Equal(t, int64(1), inter.LikeCounts[p1])
	assert.Equal(t, int64(1), inter.FavoriteCounts[p1])
	assert.True(t, inter.LikedSet[p0])
	assert.False(t, inter.LikedSet[p1])
	assert.True(t, inter.FavoritedSet[p1])
	assert.Equal(t, "revisit after earnings", inter.FavoriteNotes[p1])

	enriched := Posts(posts, inter)
	require.Len(t, enriched, 3)
	assert.True(t, enriched[0].UserLiked)
	assert.Equal(t, int64(2), enriched[0].TotalLikes)
	assert.True(t, enriched[1].UserFavorited)
	assert.Equal(t, "revisit after earnings", enriched[1].FavoriteNotes)
	assert.False(t, enriched[2].UserLiked)
	assert.Zero(t, enriched[2].TotalLikes)
}

func TestLoadInteractionsAnonymous(t *testing.T) {
	likeRepo, favRepo := setupRepos(t)

	posts := []models.SocialPost{{ID: primitive.NewObjectID()}}
	p0 := posts[0].ID.Hex()
	require.NoError(t, likeRepo.CreateLike(&models.PostLike{UserID: 7, PostID: p0}))

	inter, err := LoadInteractions(likeRepo, favRepo, 0, CollectPostIDs(posts))
	require.NoError(t, err)

	// Aggregate counts are public; membership stays empty for anonymous reads
	assert.Equal(t, int64(1), inter.LikeCounts[p0])
	assert.Empty(t, inter.LikedSet)
	assert.Empty(t, inter.FavoritedSet)
}

func TestLoadInteractionsEmptyPage(t *testing.T) {
	likeRepo, favRepo := setupRepos(t)

	inter, err := LoadInteractions(likeRepo, favRepo, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, inter.LikeCounts)

	assert.Empty(t, Posts(nil, inter))
}

func TestPostsNilInteractions(t *testing.T) {
	posts := []models.SocialPost{{ID: primitive.NewObjectID()}}

	enriched := Posts(posts, nil)
	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].UserLiked)
	assert.False(t, enriched[0].UserFavorited)
	assert.Zero(t, enriched[0].TotalLikes)
	assert.Zero(t, enriched[0].TotalFavorites)
}

func TestCreators(t *testing.T) {
	creators := []models.Creator{
		{Platform: models.PlatformTwitter, CreatorID: "elonmusk"},
		{Platform: models.PlatformYouTube, CreatorID: "elonmusk"},
	}
	subs := []models.KolSubscription{
		{Platform: models.PlatformTwitter, KolID: "elonmusk"},
	}

	enriched := Creators(creators, TrackedSet(subs))
	require.Len(t, enriched, 2)
	assert.True(t, enriched[0].UserTracked)
	assert.False(t, enriched[1].UserTracked)

	// nil tracked set means anonymous
	for _, c := range Creators(creators, nil) {
		assert.False(t, c.UserTracked)
	}
}
