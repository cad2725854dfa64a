package models

// StockQuote is the normalized quote shape returned regardless of provider
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume,omitempty"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	PreviousClose float64 `json:"previousClose,omitempty"`
}

// ChartPoint is a single candle in a chart series
type ChartPoint struct {
	Time   int64   `json:"time"` // unix seconds
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// EarningsEntry is a single row of the earnings calendar
type EarningsEntry struct {
	Symbol      string  `json:"symbol"`
	Date        string  `json:"date"`
	EPSEstimate float64 `json:"epsEstimate,omitempty"`
	EPSActual   float64 `json:"epsActual,omitempty"`
	Revenue     int64   `json:"revenueEstimate,omitempty"`
	Hour        string  `json:"hour,omitempty"` // bmo, amc, dmh
}
