package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/api/response"
	"github.com/wonny/marketdesk/internal/domain/news"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	minStreamPeriod = time.Second
)

// StreamHandler pushes periodic news samples over WebSocket
type StreamHandler struct {
	svc      NewsService
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler.
// interval is the default push period; clients may override it with ?interval=.
func NewStreamHandler(svc NewsService, interval time.Duration) *StreamHandler {
	return &StreamHandler{
		svc:      svc,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origin policy is enforced by the CORS middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// StreamHeadlines sends a sample immediately and then on every interval
// GET /api/stream/headlines?feed=partner_headlines&limit=5&interval=8s
func (h *StreamHandler) StreamHeadlines(c *gin.Context) {
	feed := news.FeedHeadlines
	if raw := c.Query("feed"); raw != "" {
		feed = news.Feed(raw)
		if !feed.IsValid() {
			response.BadRequest(c, "Invalid feed")
			return
		}
	}

	limit, err := news.ParseLimit(c.Query("limit"))
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}

	interval, err := parseInterval(c.Query("interval"), h.interval)
	if err != nil {
		response.BadRequest(c, "Invalid interval")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	log.Info().Str("remote", remote).Str("feed", string(feed)).Dur("interval", interval).Msg("Stream client connected")

	// Reader detects client close and keeps pong deadlines moving
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ping := time.NewTicker(pongWait * 9 / 10)
	defer ping.Stop()

	ctx := c.Request.Context()
	push := func() bool {
		items, err := h.svc.GetRandomSample(ctx, feed, limit)
		var msg any = response.ListResponse{Success: true, Data: items}
		if err != nil {
			log.Warn().Err(err).Str("remote", remote).Msg("Stream sample failed")
			msg = response.ErrorResponse{Error: "Failed to fetch " + feed.Label()}
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg) == nil
	}

	if !push() {
		return
	}

	for {
		select {
		case <-closed:
			log.Info().Str("remote", remote).Msg("Stream client disconnected")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !push() {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// parseInterval accepts a Go duration ("8s") or whole seconds ("8")
func parseInterval(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		secs, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return 0, err
		}
		d = time.Duration(secs) * time.Second
	}
	if d < minStreamPeriod {
		return 0, strconv.ErrRange
	}
	return d, nil
}
