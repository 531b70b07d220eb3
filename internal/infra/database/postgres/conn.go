package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/wonny/marketdesk/internal/pkg/config"
	applogger "github.com/wonny/marketdesk/internal/pkg/logger"
)

// connectTimeout bounds the startup ping
const connectTimeout = 5 * time.Second

// requiredTables are read by the query API
var requiredTables = []string{"symbol_meta", "price_bars", "analyst_ratings", "partner_headlines"}

// Pool wraps pgxpool.Pool
type Pool struct {
	*pgxpool.Pool
}

// NewPool connects to cfg.Database.URL and verifies the market tables are visible
func NewPool(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	conn := poolConfig.ConnConfig
	log.Info().
		Str("host", conn.Host).
		Uint16("port", conn.Port).
		Str("database", conn.Database).
		Str("user", conn.User).
		Int32("max_conns", cfg.Database.MaxConns).
		Msg("Connecting to PostgreSQL...")

	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	if cfg.Logging.FileEnabled {
		queryLogger := applogger.NewQueryLogger(cfg.Logging.FilePath, cfg.Logging.RotationSize, cfg.Logging.RetentionDays)
		conn.Tracer = newQueryTracer(queryLogger, cfg.Logging.Level)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	missing, err := missingTables(ctx, pool)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Table check failed, but continuing...")
	case len(missing) > 0:
		// Schema is loaded out of band; queries against these tables will fail
		log.Warn().Strs("tables", missing).Msg("Market tables not found")
	}

	log.Info().Msg("PostgreSQL connected")
	return &Pool{Pool: pool}, nil
}

// missingTables returns the required tables that do not exist
func missingTables(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx,
		`SELECT t FROM unnest($1::text[]) AS t WHERE to_regclass(t) IS NULL`, requiredTables)
	if err != nil {
		return nil, fmt.Errorf("failed to check tables: %w", err)
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		missing = append(missing, table)
	}
	return missing, rows.Err()
}

// Close closes the connection pool
func (p *Pool) Close() {
	log.Info().Msg("Closing PostgreSQL connection pool...")
	p.Pool.Close()
}
