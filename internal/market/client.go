// Package market fetches stock quotes, indices, chart series, and earnings
// calendars from third-party providers. Quotes go through a strictly
// sequential fallback chain: Yahoo Finance (no key) first, then Alpha Vantage
// and Finnhub when keys are configured, with a deterministic mock as the last
// resort so the API never returns an empty quote.
package market

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/quantlake/stockbuzz/backend/internal/models"
)

const (
	defaultYahooBaseURL        = "https://query1.finance.yahoo.com"
	defaultAlphaVantageBaseURL = "https://www.alphavantage.co"
	defaultFinnhubBaseURL      = "https://finnhub.io/api/v1"

	quoteCacheSize = 256
	quoteCacheTTL  = time.Minute
)

// IndexSymbols are the market indices reported by the indices action
var IndexSymbols = []string{"^GSPC", "^DJI", "^IXIC"}

// Options configures a market data Client
type Options struct {
	AlphaVantageKey     string
	FinnhubKey          string
	YahooBaseURL        string
	AlphaVantageBaseURL string
	FinnhubBaseURL      string
	Timeout             time.Duration
}

// Client fetches market data from external providers
type Client struct {
	httpClient *http.Client
	opts       Options
	quotes     *quoteCache
}

// NewClient creates a market data client. Provider keys left empty silently
// disable that provider in the fallback chain.
func NewClient(opts Options) *Client {
	if opts.YahooBaseURL == "" {
		opts.YahooBaseURL = defaultYahooBaseURL
	}
	if opts.AlphaVantageBaseURL == "" {
		opts.AlphaVantageBaseURL = defaultAlphaVantageBaseURL
	}
	if opts.FinnhubBaseURL == "" {
		opts.FinnhubBaseURL = defaultFinnhubBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		quotes:     newQuoteCache(quoteCacheSize, quoteCacheTTL),
	}
}

// FetchQuote tries providers in priority order and returns the first
// structured quote. Providers run strictly sequentially, short-circuiting on
// the first success; the mock never fails, so neither does FetchQuote.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if cached, ok := c.quotes.get(symbol); ok {
		return &cached, nil
	}

	quote, err := c.fetchYahooQuote(ctx, symbol)
	if quote == nil && c.opts.AlphaVantageKey != "" {
		quote, err = c.fetchAlphaVantageQuote(ctx, symbol)
	}
	if quote == nil && c.opts.FinnhubKey != "" {
		quote, err = c.fetchFinnhubQuote(ctx, symbol)
	}
	if quote == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		_ = err // provider errors are absorbed by the mock fallback
		quote = MockQuote(symbol)
	}

	c.quotes.set(symbol, *quote)
	return quote, nil
}

// FetchMultipleQuotes fans out independent per-symbol fetches concurrently and
// returns quotes in input order
func (c *Client) FetchMultipleQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error) {
	quotes := make([]models.StockQuote, len(symbols))
	errs := make([]error, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			q, err := c.FetchQuote(ctx, symbol)
			if err != nil {
				errs[i] = err
				return
			}
			quotes[i] = *q
		}(i, symbol)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return quotes, nil
}

// FetchIndices returns quotes for the fixed major-index symbol set
func (c *Client) FetchIndices(ctx context.Context) ([]models.StockQuote, error) {
	return c.FetchMultipleQuotes(ctx, IndexSymbols)
}
