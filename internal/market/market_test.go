package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockQuoteDeterministic(t *testing.T) {
	first := MockQuote("AAPL")
	second := MockQuote("aapl")

	assert.Equal(t, first, second)
	assert.Equal(t, "AAPL", first.Symbol)
	assert.Greater(t, first.Price, 0.0)
	assert.GreaterOrEqual(t, first.High, first.Low)
	assert.Greater(t, first.Volume, int64(0))
}

func TestMockQuoteVariesBySymbol(t *testing.T) {
	assert.NotEqual(t, MockQuote("AAPL").Price, MockQuote("TSLA").Price)
}

func TestFetchQuoteFallsBackToMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{YahooBaseURL: srv.URL})
	quote, err := c.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, MockQuote("AAPL"), quote)
}

func TestFetchQuoteYahoo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{
			"symbol":"AAPL","shortName":"Apple Inc.",
			"regularMarketPrice":200.5,"chartPreviousClose":200.0,
			"regularMarketDayHigh":202.0,"regularMarketDayLow":199.0,
			"regularMarketVolume":123456}}]}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{YahooBaseURL: srv.URL})
	quote, err := c.FetchQuote(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "Apple Inc.", quote.Name)
	assert.Equal(t, 200.5, quote.Price)
	assert.Equal(t, 0.5, quote.Change)
	assert.Equal(t, 0.25, quote.ChangePercent)
	assert.Equal(t, int64(123456), quote.Volume)
}

func TestFetchQuoteServedFromCache(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"TSLA","regularMarketPrice":300.0,"chartPreviousClose":290.0}}]}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{YahooBaseURL: srv.URL})
	_, err := c.FetchQuote(context.Background(), "TSLA")
	require.NoError(t, err)
	_, err = c.FetchQuote(context.Background(), "TSLA")
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestFetchQuoteFallsThroughToFinnhub(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	finnhub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c":150.0,"d":1.5,"dp":1.0,"h":151.0,"l":148.0,"pc":148.5}`))
	}))
	defer finnhub.Close()

	c := NewClient(Options{
		YahooBaseURL:        broken.URL,
		AlphaVantageBaseURL: broken.URL,
		AlphaVantageKey:     "demo",
		FinnhubBaseURL:      finnhub.URL,
		FinnhubKey:          "demo",
	})
	quote, err := c.FetchQuote(context.Background(), "NVDA")
	require.NoError(t, err)

	assert.Equal(t, "NVDA", quote.Symbol)
	assert.Equal(t, 150.0, quote.Price)
	assert.Equal(t, 1.0, quote.ChangePercent)
}

func TestFetchMultipleQuotesPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{YahooBaseURL: srv.URL})
	symbols := []string{"AAPL", "TSLA", "NVDA", "MSFT"}
	quotes, err := c.FetchMultipleQuotes(context.Background(), symbols)
	require.NoError(t, err)
	require.Len(t, quotes, len(symbols))

	for i, symbol := range symbols {
		assert.Equal(t, symbol, quotes[i].Symbol)
	}
}

func TestFetchIndices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{YahooBaseURL: srv.URL})
	quotes, err := c.FetchIndices(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, len(IndexSymbols))

	for i, symbol := range IndexSymbols {
		assert.Equal(t, symbol, quotes[i].Symbol)
	}
}

func TestFetchChart(t *testing.T) {
	c := NewClient(Options{})

	points, err := c.FetchChart(context.Background(), "AAPL", "1d")
	require.NoError(t, err)
	require.Len(t, points, chartPoints)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.High, p.Open)
		assert.GreaterOrEqual(t, p.High, p.Close)
		assert.LessOrEqual(t, p.Low, p.Open)
		assert.LessOrEqual(t, p.Low, p.Close)
		assert.Greater(t, p.Volume, int64(0))
	}

	again, err := c.FetchChart(context.Background(), "AAPL", "1d")
	require.NoError(t, err)
	for i := range points {
		assert.Equal(t, points[i].Close, again[i].Close)
	}
}

func TestFetchChartUnknownIntervalDefaultsToDaily(t *testing.T) {
	c := NewClient(Options{})

	daily, err := c.FetchChart(context.Background(), "TSLA", "1d")
	require.NoError(t, err)
	unknown, err := c.FetchChart(context.Background(), "TSLA", "bogus")
	require.NoError(t, err)

	require.Len(t, unknown, chartPoints)
	assert.Equal(t, daily[0].Close, unknown[0].Close)
}

func TestFetchEarningsCalendarWithoutKey(t *testing.T) {
	c := NewClient(Options{})

	entries, err := c.FetchEarningsCalendar(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchEarningsCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"earningsCalendar":[{"symbol":"AAPL","date":"2026-01-28","epsEstimate":2.1,"hour":"amc"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{FinnhubBaseURL: srv.URL, FinnhubKey: "demo"})
	entries, err := c.FetchEarningsCalendar(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "AAPL", entries[0].Symbol)
	assert.Equal(t, "2026-01-28", entries[0].Date)
	assert.Equal(t, "amc", entries[0].Hour)
}

func TestQuoteCacheExpiry(t *testing.T) {
	cache := newQuoteCache(4, 10*time.Millisecond)
	cache.set("AAPL", *MockQuote("AAPL"))

	_, ok := cache.get("AAPL")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.get("AAPL")
	assert.False(t, ok)
}
