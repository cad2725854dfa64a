package market

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/quantlake/stockbuzz/backend/internal/models"
)

var chartIntervals = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"1d":  24 * time.Hour,
	"1wk": 7 * 24 * time.Hour,
}

const chartPoints = 60

// FetchChart returns synthetic demonstration candles. This is a stub, not a
// real market-data integration: the series is a deterministic random walk
// seeded by (symbol, interval) around the symbol's mock base price.
func (c *Client) FetchChart(ctx context.Context, symbol, interval string) ([]models.ChartPoint, error) {
	step, ok := chartIntervals[interval]
	if !ok {
		step = 24 * time.Hour
		interval = "1d"
	}

	h := fnv.New64a()
	h.Write([]byte(symbol + "|" + interval))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	base := MockQuote(symbol).Price
	start := time.Now().Add(-time.Duration(chartPoints) * step).Truncate(step)

	points := make([]models.ChartPoint, chartPoints)
	price := base
	for i := range points {
		open := price
		drift := (rng.Float64() - 0.5) * base * 0.02
		closePrice := open + drift
		high := maxFloat(open, closePrice) * (1 + rng.Float64()*0.005)
		low := minFloat(open, closePrice) * (1 - rng.Float64()*0.005)

		points[i] = models.ChartPoint{
			Time:   start.Add(time.Duration(i) * step).Unix(),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: int64(500_000 + rng.Intn(5_000_000)),
		}
		price = closePrice
	}
	return points, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
