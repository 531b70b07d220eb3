package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/infra/database"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// DB wraps a SQLite handle
type DB struct {
	*sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and applies the schema
func Open(ctx context.Context, path string) (*DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if path == MemoryPath {
		// Every new connection would get its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.EnsureSchema(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info().Str("path", path).Msg("SQLite database opened")
	return db, nil
}

// EnsureSchema creates the reference tables when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Health pings the database
func (db *DB) Health(ctx context.Context) *database.HealthStatus {
	return database.Check(ctx, "sqlite", db.PingContext, func() database.PoolStats {
		s := db.Stats()
		return database.PoolStats{
			Active: int32(s.InUse),
			Idle:   int32(s.Idle),
			Total:  int32(s.OpenConnections),
			Max:    int32(s.MaxOpenConnections),
		}
	})
}

// Close closes the database
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		log.Warn().Err(err).Str("path", db.path).Msg("Failed to close SQLite database")
		return
	}
	log.Info().Msg("SQLite database closed")
}
