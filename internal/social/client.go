// Package social proxies the per-platform feeds served by the external
// ingestion pipeline. Responses are passed through untouched and cached in
// Redis for five minutes; a broken cache degrades to a direct fetch rather
// than failing the request.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/pkg/cache"
	"github.com/quantlake/stockbuzz/backend/pkg/logger"
	"go.uber.org/zap"
)

// FeedCacheTTL is how long a platform feed response is served from Redis
const FeedCacheTTL = 5 * time.Minute

// Ingestion endpoint paths per platform
var platformPaths = map[string]string{
	models.PlatformTwitter: "/tweets",
	models.PlatformReddit:  "/reddit",
	models.PlatformYouTube: "/youtube",
	models.PlatformRednote: "/xiaohongshu",
}

// FeedClient fetches per-platform social feeds from the ingestion endpoints
type FeedClient struct {
	baseURL    string
	httpClient *http.Client
	redis      *cache.RedisClient
}

// NewFeedClient creates a feed client. redis may be nil, in which case every
// request goes straight to the ingestion endpoint.
func NewFeedClient(baseURL string, redis *cache.RedisClient) *FeedClient {
	return &FeedClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		redis:      redis,
	}
}

// FetchFeed returns the raw `{count, items[]}` JSON body for a platform,
// serving from Redis within the TTL window
func (c *FeedClient) FetchFeed(ctx context.Context, platform string) (json.RawMessage, error) {
	path, ok := platformPaths[platform]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}

	key := "social:feed:" + platform
	if c.redis != nil {
		if cached, err := c.redis.Get(ctx, key); err == nil {
			return json.RawMessage(cached), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ingestion endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ingestion endpoint error (%d): %s", resp.StatusCode, string(body))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("ingestion endpoint returned invalid JSON")
	}

	if c.redis != nil {
		if err := c.redis.SetEx(ctx, key, string(body), FeedCacheTTL); err != nil {
			logger.Log.Warn("failed to cache social feed", zap.String("platform", platform), zap.Error(err))
		}
	}
	return json.RawMessage(body), nil
}
