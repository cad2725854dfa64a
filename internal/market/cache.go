package market

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/quantlake/stockbuzz/backend/internal/models"
)

type cachedQuote struct {
	quote     models.StockQuote
	expiresAt time.Time
}

// quoteCache is a small in-process TTL cache that absorbs polling clients
// hitting the same symbols every few seconds
type quoteCache struct {
	lruCache *lru.Cache[string, cachedQuote]
	ttl      time.Duration
}

func newQuoteCache(size int, ttl time.Duration) *quoteCache {
	l, err := lru.New[string, cachedQuote](size)
	if err != nil {
		// lru.New only fails on a non-positive size
		panic(err)
	}
	return &quoteCache{lruCache: l, ttl: ttl}
}

func (c *quoteCache) get(symbol string) (models.StockQuote, bool) {
	entry, ok := c.lruCache.Get(symbol)
	if !ok {
		return models.StockQuote{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.lruCache.Remove(symbol)
		return models.StockQuote{}, false
	}
	return entry.quote, true
}

func (c *quoteCache) set(symbol string, quote models.StockQuote) {
	c.lruCache.Add(symbol, cachedQuote{quote: quote, expiresAt: time.Now().Add(c.ttl)})
}
