package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	applogger "github.com/wonny/marketdesk/internal/pkg/logger"
)

var traceLevels = map[tracelog.LogLevel]zerolog.Level{
	tracelog.LogLevelTrace: zerolog.TraceLevel,
	tracelog.LogLevelDebug: zerolog.DebugLevel,
	tracelog.LogLevelInfo:  zerolog.InfoLevel,
	tracelog.LogLevelWarn:  zerolog.WarnLevel,
	tracelog.LogLevelError: zerolog.ErrorLevel,
}

// queryLog writes pgx trace events to the query log, tagged with the HTTP
// request that issued them
type queryLog struct {
	logger zerolog.Logger
}

func (q queryLog) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	zl, ok := traceLevels[level]
	if !ok {
		zl = zerolog.InfoLevel
	}

	event := q.logger.WithLevel(zl).Fields(data)
	if id, ok := applogger.RequestIDFromContext(ctx); ok {
		event = event.Str("request_id", id)
	}
	event.Msg(msg)
}

// newQueryTracer traces queries at or above the application log level
func newQueryTracer(logger zerolog.Logger, appLevel string) *tracelog.TraceLog {
	level, err := tracelog.LogLevelFromString(appLevel)
	if err != nil {
		level = tracelog.LogLevelDebug
	}
	return &tracelog.TraceLog{
		Logger:   queryLog{logger: logger},
		LogLevel: level,
	}
}
