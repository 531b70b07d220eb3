package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
	"github.com/wonny/marketdesk/internal/infra/database"
	"github.com/wonny/marketdesk/internal/infra/database/postgres"
	"github.com/wonny/marketdesk/internal/pkg/config"
)

func newTestPool(t *testing.T) *postgres.Pool {
	t.Helper()

	// Skip if no database available
	t.Skip("Integration test - requires PostgreSQL")

	cfg, err := config.Load()
	require.NoError(t, err)

	pool, err := postgres.NewPool(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPool_Health(t *testing.T) {
	pool := newTestPool(t)

	health := pool.Health(context.Background())
	assert.Equal(t, database.StatusHealthy, health.Status)
	assert.Greater(t, health.MaxConns, int32(0))
}

func TestPriceRepository_Ascending(t *testing.T) {
	pool := newTestPool(t)
	repo := postgres.NewMarketRepository(pool)

	bars, err := repo.GetPriceHistory(context.Background(), "AAPL", nil, nil)
	require.NoError(t, err)
	assert.True(t, market.IsStrictlyAscending(bars))
}

func TestNewsRepository_RandomSample(t *testing.T) {
	pool := newTestPool(t)
	repo := postgres.NewNewsRepository(pool)

	items, err := repo.RandomSample(context.Background(), news.FeedHeadlines, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 5)
}
