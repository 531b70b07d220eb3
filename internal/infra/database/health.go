package database

import (
	"context"
	"time"
)

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// pingTimeout bounds a health ping
const pingTimeout = 3 * time.Second

// HealthStatus is the datastore section of the readiness report
type HealthStatus struct {
	Driver       string    `json:"driver"`
	Status       string    `json:"status"`
	ResponseTime string    `json:"response_time"`
	ActiveConns  int32     `json:"active_conns"`
	IdleConns    int32     `json:"idle_conns"`
	TotalConns   int32     `json:"total_conns"`
	MaxConns     int32     `json:"max_conns"`
	CheckedAt    time.Time `json:"checked_at"`
	Error        string    `json:"error,omitempty"`
}

// HealthChecker is implemented by every datastore backend
type HealthChecker interface {
	Health(ctx context.Context) *HealthStatus
}

// PoolStats is a driver-neutral connection pool snapshot
type PoolStats struct {
	Active, Idle, Total, Max int32
}

// Check pings a datastore and fills in pool stats. A pool with at most one
// free slot left is reported as degraded.
func Check(ctx context.Context, driver string, ping func(context.Context) error, stats func() PoolStats) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{
		Driver:    driver,
		Status:    StatusHealthy,
		CheckedAt: start,
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	err := ping(pingCtx)

	s := stats()
	status.ActiveConns, status.IdleConns = s.Active, s.Idle
	status.TotalConns, status.MaxConns = s.Total, s.Max
	status.ResponseTime = time.Since(start).String()

	switch {
	case err != nil:
		status.Status = StatusUnhealthy
		status.Error = "ping failed: " + err.Error()
	case s.Max > 1 && s.Active >= s.Max-1:
		status.Status = StatusDegraded
		status.Error = "connection pool nearly exhausted"
	}
	return status
}
