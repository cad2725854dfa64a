package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/quantlake/stockbuzz/backend/internal/models"
)

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("provider error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse provider response: %w", err)
	}
	return nil
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				ShortName            string  `json:"shortName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

func (c *Client) fetchYahooQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.opts.YahooBaseURL, url.PathEscape(symbol))

	var parsed yahooChartResponse
	if err := c.getJSON(ctx, u, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no result for %s", symbol)
	}

	meta := parsed.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo: empty quote for %s", symbol)
	}

	name := meta.ShortName
	if name == "" {
		name = symbol
	}
	change := meta.RegularMarketPrice - meta.ChartPreviousClose
	changePercent := 0.0
	if meta.ChartPreviousClose != 0 {
		changePercent = change / meta.ChartPreviousClose * 100
	}
	return &models.StockQuote{
		Symbol:        symbol,
		Name:          name,
		Price:         meta.RegularMarketPrice,
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		Volume:        meta.RegularMarketVolume,
		High:          meta.RegularMarketDayHigh,
		Low:           meta.RegularMarketDayLow,
		PreviousClose: meta.ChartPreviousClose,
	}, nil
}

type alphaVantageResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

func (c *Client) fetchAlphaVantageQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	u := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.opts.AlphaVantageBaseURL, url.QueryEscape(symbol), url.QueryEscape(c.opts.AlphaVantageKey))

	var parsed alphaVantageResponse
	if err := c.getJSON(ctx, u, &parsed); err != nil {
		return nil, err
	}
	q := parsed.GlobalQuote
	if len(q) == 0 || q["05. price"] == "" {
		return nil, fmt.Errorf("alphavantage: empty quote for %s", symbol)
	}

	price, _ := strconv.ParseFloat(q["05. price"], 64)
	if price == 0 {
		return nil, fmt.Errorf("alphavantage: zero price for %s", symbol)
	}
	change, _ := strconv.ParseFloat(q["09. change"], 64)
	changePercent, _ := strconv.ParseFloat(strings.TrimSuffix(q["10. change percent"], "%"), 64)
	volume, _ := strconv.ParseInt(q["06. volume"], 10, 64)
	high, _ := strconv.ParseFloat(q["03. high"], 64)
	low, _ := strconv.ParseFloat(q["04. low"], 64)
	previousClose, _ := strconv.ParseFloat(q["08. previous close"], 64)

	return &models.StockQuote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		High:          high,
		Low:           low,
		PreviousClose: previousClose,
	}, nil
}

type finnhubQuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	PreviousClose float64 `json:"pc"`
}

func (c *Client) fetchFinnhubQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	u := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.opts.FinnhubBaseURL, url.QueryEscape(symbol), url.QueryEscape(c.opts.FinnhubKey))

	var parsed finnhubQuoteResponse
	if err := c.getJSON(ctx, u, &parsed); err != nil {
		return nil, err
	}
	if parsed.Current == 0 {
		return nil, fmt.Errorf("finnhub: empty quote for %s", symbol)
	}

	return &models.StockQuote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         parsed.Current,
		Change:        parsed.Change,
		ChangePercent: parsed.ChangePercent,
		High:          parsed.High,
		Low:           parsed.Low,
		PreviousClose: parsed.PreviousClose,
	}, nil
}

type finnhubEarningsResponse struct {
	EarningsCalendar []struct {
		Symbol          string  `json:"symbol"`
		Date            string  `json:"date"`
		EPSEstimate     float64 `json:"epsEstimate"`
		EPSActual       float64 `json:"epsActual"`
		RevenueEstimate int64   `json:"revenueEstimate"`
		Hour            string  `json:"hour"`
	} `json:"earningsCalendar"`
}

// FetchEarningsCalendar returns the earnings calendar between from and to
// (YYYY-MM-DD). Without a Finnhub key the calendar is empty, not an error.
func (c *Client) FetchEarningsCalendar(ctx context.Context, from, to string) ([]models.EarningsEntry, error) {
	if c.opts.FinnhubKey == "" {
		return []models.EarningsEntry{}, nil
	}
	u := fmt.Sprintf("%s/calendar/earnings?from=%s&to=%s&token=%s",
		c.opts.FinnhubBaseURL, url.QueryEscape(from), url.QueryEscape(to), url.QueryEscape(c.opts.FinnhubKey))

	var parsed finnhubEarningsResponse
	if err := c.getJSON(ctx, u, &parsed); err != nil {
		return nil, err
	}

	entries := make([]models.EarningsEntry, len(parsed.EarningsCalendar))
	for i, e := range parsed.EarningsCalendar {
		entries[i] = models.EarningsEntry{
			Symbol:      e.Symbol,
			Date:        e.Date,
			EPSEstimate: e.EPSEstimate,
			EPSActual:   e.EPSActual,
			Revenue:     e.RevenueEstimate,
			Hour:        e.Hour,
		}
	}
	return entries, nil
}
