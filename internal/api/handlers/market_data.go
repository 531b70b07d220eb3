package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wonny/marketdesk/internal/api/response"
	"github.com/wonny/marketdesk/internal/domain/market"
)

// MarketDataService is the query surface used by MarketDataHandler
type MarketDataService interface {
	GetSymbolClass(ctx context.Context, symbol string) (*market.SymbolClass, error)
	GetPriceHistory(ctx context.Context, q market.HistoryQuery) ([]market.PriceBar, error)
	GetMarketData(ctx context.Context, symbol string, from, to *market.Date) (*market.MarketData, error)
	SearchSymbols(ctx context.Context, q string, class *market.AssetClass, limit int) ([]market.SymbolMeta, error)
}

// MarketDataHandler handles price history and symbol endpoints
type MarketDataHandler struct {
	svc MarketDataService
}

// NewMarketDataHandler creates a new MarketDataHandler
func NewMarketDataHandler(svc MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{svc: svc}
}

// HistoryResponse is returned by the class-specific endpoints
type HistoryResponse struct {
	Symbol       string            `json:"symbol"`
	CryptoSymbol string            `json:"crypto_symbol,omitempty"`
	Data         []market.PriceBar `json:"data"`
}

// GetMarketData returns history for a symbol of any class
// GET /api/market-data/:symbol
func (h *MarketDataHandler) GetMarketData(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	data, err := h.svc.GetMarketData(c.Request.Context(), c.Param("symbol"), from, to)
	if err != nil {
		response.ServiceError(c, err)
		return
	}
	response.JSON(c, data)
}

// GetStockData returns history for a stock
// GET /api/stock-data/:symbol
func (h *MarketDataHandler) GetStockData(c *gin.Context) {
	h.classHistory(c, market.AssetClassStock)
}

// GetETFData returns history for an ETF
// GET /api/etf-data/:symbol
func (h *MarketDataHandler) GetETFData(c *gin.Context) {
	h.classHistory(c, market.AssetClassETF)
}

// GetCryptoData returns history for a cryptocurrency pair
// GET /api/crypto-data/:symbol
func (h *MarketDataHandler) GetCryptoData(c *gin.Context) {
	h.classHistory(c, market.AssetClassCrypto)
}

func (h *MarketDataHandler) classHistory(c *gin.Context, class market.AssetClass) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	q := market.HistoryQuery{
		Symbol: c.Param("symbol"),
		Class:  &class,
		From:   from,
		To:     to,
	}

	bars, err := h.svc.GetPriceHistory(c.Request.Context(), q)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	symbol := market.NormalizeSymbol(q.Symbol)
	resp := HistoryResponse{Symbol: symbol, Data: bars}
	if class == market.AssetClassCrypto {
		resp.CryptoSymbol = market.CryptoBase(symbol)
	}
	response.JSON(c, resp)
}

// GetSymbolClass reports a symbol's asset class
// GET /api/symbols/:symbol
func (h *MarketDataHandler) GetSymbolClass(c *gin.Context) {
	class, err := h.svc.GetSymbolClass(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		response.ServiceError(c, err)
		return
	}
	response.JSON(c, class)
}

// SearchSymbols searches symbols by ticker or name
// GET /api/search/symbols?q=apple&class=stock&limit=10
func (h *MarketDataHandler) SearchSymbols(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	var class *market.AssetClass
	if raw := c.Query("class"); raw != "" {
		parsed, err := market.ParseAssetClass(raw)
		if err != nil {
			response.BadRequest(c, "Invalid asset class")
			return
		}
		class = &parsed
	}

	results, err := h.svc.SearchSymbols(c.Request.Context(), c.Query("q"), class, limit)
	if err != nil {
		response.ServiceError(c, err)
		return
	}
	response.List(c, results)
}

// parseRange reads optional ?from=&to= dates, writing a 400 on malformed input
func parseRange(c *gin.Context) (from, to *market.Date, ok bool) {
	for _, p := range []struct {
		name string
		dst  **market.Date
	}{{"from", &from}, {"to", &to}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		d, err := market.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, "Invalid "+p.name+" date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		*p.dst = &d
	}
	return from, to, true
}
