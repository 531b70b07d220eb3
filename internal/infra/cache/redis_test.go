package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/marketdesk/internal/domain/market"
)

func TestHistoryKey(t *testing.T) {
	from, _ := market.ParseDate("2024-01-02")

	assert.Equal(t, "history:AAPL:-:-", HistoryKey("AAPL", nil, nil))
	assert.Equal(t, "history:AAPL:2024-01-02:-", HistoryKey("AAPL", &from, nil))
	assert.Equal(t, "history:AAPL:-:2024-01-02", HistoryKey("AAPL", nil, &from))
}

func TestHistoryCache_RoundTrip(t *testing.T) {
	// Skip if no redis available
	t.Skip("Integration test - requires Redis")

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	c := NewHistoryCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetHistory(ctx, "CACHE-TEST", nil, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	d, _ := market.ParseDate("2024-01-02")
	bars := []market.PriceBar{{Symbol: "CACHE-TEST", Date: d, Close: decimal.RequireFromString("1.2345")}}
	require.NoError(t, c.SetHistory(ctx, "CACHE-TEST", nil, nil, bars))

	got, ok, err := c.GetHistory(ctx, "CACHE-TEST", nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got[0].Close.Equal(bars[0].Close))
	assert.Equal(t, "CACHE-TEST", got[0].Symbol)
}
