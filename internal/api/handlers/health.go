package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wonny/marketdesk/internal/infra/database"
)

// Pinger is an optional dependency checked by readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        database.HealthChecker
	cache     Pinger // nil when caching is disabled
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.HealthChecker, cache Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		startTime: time.Now(),
		version:   version,
	}
}

// ReadyResponse represents a readiness check response
type ReadyResponse struct {
	Status        string                 `json:"status"`
	Version       string                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Timestamp     time.Time              `json:"timestamp"`
	Checks        map[string]string      `json:"checks"`
	Database      *database.HealthStatus `json:"database,omitempty"`
	Message       string                 `json:"message,omitempty"`
}

// Health returns the liveness check
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the datastore and cache
// GET /api/health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := make(map[string]string)
	allReady := true
	message := ""

	dbHealth := h.db.Health(ctx)
	if dbHealth.Status == database.StatusUnhealthy {
		checks["database"] = "error"
		allReady = false
		message = "Database connection failed"
	} else {
		checks["database"] = "ok"
	}

	// Cache failures are bypassed at query time, so they do not fail readiness
	if h.cache != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := h.cache.Ping(pingCtx); err != nil {
			checks["cache"] = "degraded"
		} else {
			checks["cache"] = "ok"
		}
		cancel()
	}

	status := "ready"
	statusCode := http.StatusOK
	if !allReady {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadyResponse{
		Status:        status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now(),
		Checks:        checks,
		Database:      dbHealth,
		Message:       message,
	})
}
