package postgres

import (
	"context"

	"github.com/wonny/marketdesk/internal/infra/database"
)

// Health pings the pool and reports its connection usage
func (p *Pool) Health(ctx context.Context) *database.HealthStatus {
	return database.Check(ctx, "postgres", p.Ping, func() database.PoolStats {
		s := p.Stat()
		return database.PoolStats{
			Active: s.AcquiredConns(),
			Idle:   s.IdleConns(),
			Total:  s.TotalConns(),
			Max:    s.MaxConns(),
		}
	})
}
