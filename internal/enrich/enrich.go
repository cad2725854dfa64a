// Package enrich attaches per-user flags and aggregate counts to pages of
// primary rows without N+1 queries: ids are collected once, each auxiliary
// table is hit with a single IN query, and results merge through in-memory
// sets and count maps.
package enrich

import (
	"sync"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
)

// Interactions holds the auxiliary lookups for one page of posts
type Interactions struct {
	LikeCounts     map[string]int64
	FavoriteCounts map[string]int64
	LikedSet       map[string]bool
	FavoritedSet   map[string]bool
	FavoriteNotes  map[string]string
}

// CollectPostIDs extracts the ObjectID hexes from a page of posts
func CollectPostIDs(posts []models.SocialPost) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID.Hex()
	}
	return ids
}

// LoadInteractions gathers like/favorite counts for the given posts, plus the
// current user's membership when userID is non-zero. The four lookups run
// concurrently and fail all-or-nothing: any error aborts the whole load.
// Counts are built by fetching the matching interaction rows and tallying them
// in memory rather than asking the database to aggregate.
func LoadInteractions(likeRepo repositories.LikeRepository, favRepo repositories.FavoriteRepository, userID uint, postIDs []string) (*Interactions, error) {
	inter := &Interactions{
		LikeCounts:     make(map[string]int64),
		FavoriteCounts: make(map[string]int64),
		LikedSet:       make(map[string]bool),
		FavoritedSet:   make(map[string]bool),
		FavoriteNotes:  make(map[string]string),
	}
	if len(postIDs) == 0 {
		return inter, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		likes, err := likeRepo.GetLikesForPosts(postIDs)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		for _, l := range likes {
			inter.LikeCounts[l.PostID]++
		}
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		favs, err := favRepo.GetFavoritesForPosts(postIDs)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		for _, f := range favs {
			inter.FavoriteCounts[f.PostID]++
		}
		mu.Unlock()
	}()

	if userID > 0 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			liked, err := likeRepo.GetLikedPostIDs(userID, postIDs)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			inter.LikedSet = liked
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			favs, err := favRepo.GetFavoritesByUser(userID)
			if err != nil {
				fail(err)
				return
			}
			wanted := make(map[string]bool, len(postIDs))
			for _, id := range postIDs {
				wanted[id] = true
			}
			mu.Lock()
			for _, f := range favs {
				if wanted[f.PostID] {
					inter.FavoritedSet[f.PostID] = true
					inter.FavoriteNotes[f.PostID] = f.Notes
				}
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return inter, nil
}

// Posts merges the auxiliary lookups into each post row. A nil or empty
// Interactions (anonymous user) leaves every flag false and count zero.
func Posts(posts []models.SocialPost, inter *Interactions) []models.EnrichedPost {
	if inter == nil {
		inter = &Interactions{}
	}
	enriched := make([]models.EnrichedPost, len(posts))
	for i, p := range posts {
		id := p.ID.Hex()
		enriched[i] = models.EnrichedPost{
			SocialPost:     p,
			UserLiked:      inter.LikedSet[id],
			UserFavorited:  inter.FavoritedSet[id],
			TotalLikes:     inter.LikeCounts[id],
			TotalFavorites: inter.FavoriteCounts[id],
			FavoriteNotes:  inter.FavoriteNotes[id],
		}
	}
	return enriched
}

// Creators merges subscription membership into each creator row. tracked is
// keyed "PLATFORM:kol_id"; nil means anonymous and every flag stays false.
func Creators(creators []models.Creator, tracked map[string]bool) []models.EnrichedCreator {
	enriched := make([]models.EnrichedCreator, len(creators))
	for i, c := range creators {
		enriched[i] = models.EnrichedCreator{
			Creator:     c,
			UserTracked: tracked[TrackedKey(c.Platform, c.CreatorID)],
		}
	}
	return enriched
}

// TrackedKey builds the membership-set key for a creator identity
func TrackedKey(platform, kolID string) string {
	return platform + ":" + kolID
}

// TrackedSet builds the membership set from a user's subscriptions
func TrackedSet(subs []models.KolSubscription) map[string]bool {
	set := make(map[string]bool, len(subs))
	for _, s := range subs {
		set[TrackedKey(s.Platform, s.KolID)] = true
	}
	return set
}
