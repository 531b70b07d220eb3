package main

import (
	"context"
	"fmt"

	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
	"github.com/wonny/marketdesk/internal/infra/database"
	"github.com/wonny/marketdesk/internal/infra/database/postgres"
	"github.com/wonny/marketdesk/internal/infra/database/sqlite"
	"github.com/wonny/marketdesk/internal/pkg/config"
)

// store bundles the repositories of the configured backend
type store struct {
	market market.Repository
	news   news.Repository
	health database.HealthChecker
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &store{
			market: postgres.NewMarketRepository(pool),
			news:   postgres.NewNewsRepository(pool),
			health: pool,
			close:  pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &store{
			market: sqlite.NewMarketRepository(db),
			news:   sqlite.NewNewsRepository(db),
			health: db,
			close:  db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
