package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/pkg/config"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr(), err)
	}

	log.Info().
		Str("addr", cfg.RedisAddr()).
		Int("db", cfg.Redis.DB).
		Dur("ttl", cfg.Redis.CacheTTL).
		Msg("Redis cache connected")

	return client, nil
}

// HistoryCache stores price histories as JSON
type HistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHistoryCache creates a new HistoryCache
func NewHistoryCache(client *redis.Client, ttl time.Duration) *HistoryCache {
	return &HistoryCache{client: client, ttl: ttl}
}

// HistoryKey builds the cache key for a range query
func HistoryKey(symbol string, from, to *market.Date) string {
	return fmt.Sprintf("history:%s:%s:%s", symbol, dateKey(from), dateKey(to))
}

func dateKey(d *market.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

// GetHistory returns cached bars; ok is false on a miss
func (c *HistoryCache) GetHistory(ctx context.Context, symbol string, from, to *market.Date) ([]market.PriceBar, bool, error) {
	data, err := c.client.Get(ctx, HistoryKey(symbol, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var bars []market.PriceBar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, false, fmt.Errorf("decode cached history: %w", err)
	}
	for i := range bars {
		bars[i].Symbol = symbol
	}
	return bars, true, nil
}

// SetHistory caches bars with the configured TTL
func (c *HistoryCache) SetHistory(ctx context.Context, symbol string, from, to *market.Date, bars []market.PriceBar) error {
	data, err := json.Marshal(bars)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return c.client.Set(ctx, HistoryKey(symbol, from, to), data, c.ttl).Err()
}

// Ping checks the Redis connection
func (c *HistoryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
