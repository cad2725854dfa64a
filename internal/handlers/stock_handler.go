package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/market"
)

// StockHandler serves market data through a single action-dispatched endpoint
type StockHandler struct {
	market *market.Client
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(marketClient *market.Client) *StockHandler {
	return &StockHandler{market: marketClient}
}

// RegisterStockRoutes registers the stock data route
func (h *StockHandler) RegisterStockRoutes(g *echo.Group) {
	g.GET("/stocks", h.GetStocks)
}

// GetStocks dispatches on the action query param: quote, multiple, indices,
// chart, or earnings
func (h *StockHandler) GetStocks(c echo.Context) error {
	ctx := c.Request().Context()

	switch c.QueryParam("action") {
	case "quote":
		symbol := c.QueryParam("symbol")
		if symbol == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "symbol is required")
		}
		quote, err := h.market.FetchQuote(ctx, symbol)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, quote)

	case "multiple":
		raw := c.QueryParam("symbols")
		if raw == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "symbols is required")
		}
		symbols := make([]string, 0)
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
		if len(symbols) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "symbols is required")
		}
		quotes, err := h.market.FetchMultipleQuotes(ctx, symbols)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"quotes": quotes})

	case "indices":
		quotes, err := h.market.FetchIndices(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"indices": quotes})

	case "chart":
		symbol := c.QueryParam("symbol")
		if symbol == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "symbol is required")
		}
		points, err := h.market.FetchChart(ctx, symbol, c.QueryParam("interval"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"symbol": strings.ToUpper(symbol), "points": points})

	case "earnings":
		entries, err := h.market.FetchEarningsCalendar(ctx, c.QueryParam("from"), c.QueryParam("to"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"earnings": entries})

	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown action")
	}
}
