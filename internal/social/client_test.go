package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/pkg/cache"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newFeedRedis(t *testing.T) *cache.RedisClient {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisClient(mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestFetchFeedCachesUpstreamResponse(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		assert.Equal(t, "/tweets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"items":[{"id":"t1"}]}`))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, newFeedRedis(t))

	first, err := c.FetchFeed(context.Background(), models.PlatformTwitter)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":1,"items":[{"id":"t1"}]}`, string(first))

	// Second fetch within the TTL is served from Redis
	second, err := c.FetchFeed(context.Background(), models.PlatformTwitter)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestFetchFeedWithoutRedis(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte(`{"count":0,"items":[]}`))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, nil)

	for i := 0; i < 2; i++ {
		body, err := c.FetchFeed(context.Background(), models.PlatformReddit)
		require.NoError(t, err)
		assert.True(t, json.Valid(body))
	}
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestFetchFeedPlatformPaths(t *testing.T) {
	var lastPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		_, _ = w.Write([]byte(`{"count":0,"items":[]}`))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, nil)
	expected := map[string]string{
		models.PlatformTwitter: "/tweets",
		models.PlatformReddit:  "/reddit",
		models.PlatformYouTube: "/youtube",
		models.PlatformRednote: "/xiaohongshu",
	}
	for platform, path := range expected {
		_, err := c.FetchFeed(context.Background(), platform)
		require.NoError(t, err)
		assert.Equal(t, path, lastPath)
	}
}

func TestFetchFeedUnsupportedPlatform(t *testing.T) {
	c := NewFeedClient("http://localhost:0", nil)
	_, err := c.FetchFeed(context.Background(), "MYSPACE")
	assert.Error(t, err)
}

func TestFetchFeedUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, nil)
	_, err := c.FetchFeed(context.Background(), models.PlatformYouTube)
	assert.Error(t, err)
}

func TestFetchFeedRejectsInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, nil)
	_, err := c.FetchFeed(context.Background(), models.PlatformRednote)
	assert.Error(t, err)
}

func TestFetchFeedExpiredCacheRefetches(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte(`{"count":0,"items":[]}`))
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisClient(mr.Addr(), "")
	require.NoError(t, err)
	defer rc.Close()

	c := NewFeedClient(srv.URL, rc)

	_, err = c.FetchFeed(context.Background(), models.PlatformTwitter)
	require.NoError(t, err)

	mr.FastForward(FeedCacheTTL + 1)

	_, err = c.FetchFeed(context.Background(), models.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}
