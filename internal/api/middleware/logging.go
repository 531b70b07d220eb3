package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggingConfig holds configuration for the access log
type LoggingConfig struct {
	AccessLogger *zerolog.Logger // defaults to the global logger
	SkipPaths    []string        // exact paths, e.g. health probes
	SlowRequest  time.Duration   // defaults to 1s
}

// Logging writes one access log line per request. Lines are keyed by the
// route template (/api/stock-data/:symbol) with the symbol as its own field.
func Logging(cfg LoggingConfig) gin.HandlerFunc {
	logger := log.Logger
	if cfg.AccessLogger != nil {
		logger = *cfg.AccessLogger
	}
	slow := cfg.SlowRequest
	if slow <= 0 {
		slow = time.Second
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		event := logger.WithLevel(accessLevel(status)).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("route", route).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("duration", elapsed).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP())
		if symbol := c.Param("symbol"); symbol != "" {
			event = event.Str("symbol", symbol)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}
		event.Msg("Request completed")

		if elapsed > slow {
			log.Warn().
				Str("request_id", GetRequestID(c)).
				Str("route", route).
				Dur("duration", elapsed).
				Msg("Slow request detected")
		}
	}
}

// accessLevel maps a status to a log level: 5xx error, 4xx warn
func accessLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// Recovery turns a handler panic into a 500 with the standard error body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		requestID := GetRequestID(c)
		log.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Interface("panic", recovered).
			Msg("Panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"code":       "INTERNAL_SERVER_ERROR",
			"request_id": requestID,
		})
	})
}
