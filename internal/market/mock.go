package market

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"

	"github.com/quantlake/stockbuzz/backend/internal/models"
)

// MockQuote generates a deterministic pseudo-random quote for a symbol. It is
// the last resort of the provider chain so the dashboard always renders
// something; the same symbol always yields the same numbers.
func MockQuote(symbol string) *models.StockQuote {
	symbol = strings.ToUpper(symbol)
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := 10 + rng.Float64()*490
	changePercent := rng.Float64()*10 - 5
	change := price * changePercent / 100
	previousClose := price - change

	return &models.StockQuote{
		Symbol:        symbol,
		Name:          symbol + " Inc.",
		Price:         round2(price),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		Volume:        int64(1_000_000 + rng.Intn(50_000_000)),
		High:          round2(price * (1 + rng.Float64()*0.02)),
		Low:           round2(price * (1 - rng.Float64()*0.02)),
		PreviousClose: round2(previousClose),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
