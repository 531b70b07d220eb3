package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wonny/marketdesk/internal/api/handlers"
)

// RegisterMarketRoutes registers price history and symbol routes
func RegisterMarketRoutes(api *gin.RouterGroup, h *handlers.MarketDataHandler) {
	api.GET("/market-data/:symbol", h.GetMarketData)
	api.GET("/stock-data/:symbol", h.GetStockData)
	api.GET("/etf-data/:symbol", h.GetETFData)
	api.GET("/crypto-data/:symbol", h.GetCryptoData)

	api.GET("/symbols/:symbol", h.GetSymbolClass)
	api.GET("/search/symbols", h.SearchSymbols)
}
