package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	stats := func(active int32) func() PoolStats {
		return func() PoolStats { return PoolStats{Active: active, Idle: 1, Total: active + 1, Max: 10} }
	}

	tests := []struct {
		name   string
		ping   func(context.Context) error
		active int32
		want   string
	}{
		{"healthy", ok, 2, StatusHealthy},
		{"pool nearly exhausted", ok, 9, StatusDegraded},
		{"ping fails", func(context.Context) error { return errors.New("refused") }, 0, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Check(context.Background(), "postgres", tt.ping, stats(tt.active))
			assert.Equal(t, tt.want, h.Status)
			assert.Equal(t, "postgres", h.Driver)
			assert.Equal(t, int32(10), h.MaxConns)
			assert.NotEmpty(t, h.ResponseTime)
		})
	}
}

func TestCheck_SingleConnectionPool(t *testing.T) {
	// SQLite in-memory runs with one connection, which is always "in use" during a query
	h := Check(context.Background(), "sqlite",
		func(context.Context) error { return nil },
		func() PoolStats { return PoolStats{Active: 1, Total: 1, Max: 1} },
	)
	assert.Equal(t, StatusHealthy, h.Status)
}
