package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/wonny/marketdesk/internal/api/response"
	"github.com/wonny/marketdesk/internal/domain/news"
)

// NewsService samples news feeds
type NewsService interface {
	GetRandomSample(ctx context.Context, feed news.Feed, limit int) ([]news.Item, error)
}

// NewsHandler handles analyst rating and headline endpoints
type NewsHandler struct {
	svc NewsService
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(svc NewsService) *NewsHandler {
	return &NewsHandler{svc: svc}
}

// GetAnalystRatings returns random analyst ratings
// GET /api/analyst-ratings[/:limit]
func (h *NewsHandler) GetAnalystRatings(c *gin.Context) {
	h.sample(c, news.FeedAnalystRatings)
}

// GetHeadlines returns random partner headlines
// GET /api/headlines[/:limit]
func (h *NewsHandler) GetHeadlines(c *gin.Context) {
	h.sample(c, news.FeedHeadlines)
}

func (h *NewsHandler) sample(c *gin.Context, feed news.Feed) {
	raw := c.Param("limit")
	if raw == "" {
		raw = c.Query("limit")
	}

	limit, err := news.ParseLimit(raw)
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}

	items, err := h.svc.GetRandomSample(c.Request.Context(), feed, limit)
	if err != nil {
		response.ServiceError(c, err)
		return
	}
	response.List(c, items)
}
