package postgres

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	applogger "github.com/wonny/marketdesk/internal/pkg/logger"
)

func TestQueryLog(t *testing.T) {
	var buf bytes.Buffer
	q := queryLog{logger: zerolog.New(&buf)}

	ctx := applogger.WithRequestID(context.Background(), "req-1")
	q.Log(ctx, tracelog.LogLevelWarn, "Query", map[string]any{"sql": "SELECT 1"})

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)
	assert.Contains(t, out, `"message":"Query"`)
}

func TestNewQueryTracer_Level(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelInfo, newQueryTracer(zerolog.Nop(), "info").LogLevel)
	assert.Equal(t, tracelog.LogLevelError, newQueryTracer(zerolog.Nop(), "error").LogLevel)
	assert.Equal(t, tracelog.LogLevelDebug, newQueryTracer(zerolog.Nop(), "verbose").LogLevel)
}
