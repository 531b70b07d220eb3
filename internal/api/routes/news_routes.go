package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wonny/marketdesk/internal/api/handlers"
)

// RegisterNewsRoutes registers analyst rating, headline and stream routes
func RegisterNewsRoutes(api *gin.RouterGroup, h *handlers.NewsHandler, stream *handlers.StreamHandler) {
	api.GET("/analyst-ratings", h.GetAnalystRatings)
	api.GET("/analyst-ratings/:limit", h.GetAnalystRatings)
	api.GET("/headlines", h.GetHeadlines)
	api.GET("/headlines/:limit", h.GetHeadlines)

	if stream != nil {
		api.GET("/stream/headlines", stream.StreamHeadlines)
	}
}
