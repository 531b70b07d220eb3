package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/api"
	"github.com/wonny/marketdesk/internal/api/handlers"
	"github.com/wonny/marketdesk/internal/infra/cache"
	"github.com/wonny/marketdesk/internal/infra/search"
	"github.com/wonny/marketdesk/internal/pkg/config"
	"github.com/wonny/marketdesk/internal/pkg/logger"
	"github.com/wonny/marketdesk/internal/service/marketdata"
	"github.com/wonny/marketdesk/internal/service/news"
)

const (
	serviceName    = "marketdesk-api"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("version", serviceVersion).
		Str("driver", cfg.Database.Driver).
		Msg("Starting marketdesk API server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, openStore); err != nil {
		log.Fatal().Err(err).Msg("marketdesk API server failed")
	}
	log.Info().Msg("marketdesk API server stopped")
}

// run serves the API until ctx is done. Everything it opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, open func(context.Context, *config.Config) (*store, error)) error {
	st, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.close()

	// Redis is optional, the API falls back to direct reads
	var historyCache marketdata.HistoryCache
	var cachePinger handlers.Pinger
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without history cache")
		} else {
			defer closeRedis(client)
			hc := cache.NewHistoryCache(client, cfg.Redis.CacheTTL)
			historyCache = hc
			cachePinger = hc
		}
	}

	metas, err := st.market.ListSymbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to load symbols for search index: %w", err)
	}
	index, err := search.NewSymbolIndex(metas)
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	defer index.Close()

	marketSvc := marketdata.NewService(st.market, historyCache, index)
	newsSvc := news.NewService(st.news)

	scheduler, err := scheduleIndexRefresh(ctx, cfg.Search.RefreshInterval, marketSvc)
	if err != nil {
		return fmt.Errorf("failed to schedule search index refresh: %w", err)
	}
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := api.NewRouter(cfg, api.Deps{
		MarketData: marketSvc,
		News:       newsSvc,
		Database:   st.health,
		Cache:      cachePinger,
		Version:    serviceVersion,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     router.Engine(),
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout is not set on hijacked WebSocket connections
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Msg("API server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start API server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// scheduleIndexRefresh rebuilds the symbol index on a fixed interval. Returns nil when disabled.
func scheduleIndexRefresh(ctx context.Context, every time.Duration, svc *marketdata.Service) (*cron.Cron, error) {
	if every <= 0 {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", every), func() {
		if err := svc.RefreshSearchIndex(ctx); err != nil {
			log.Error().Err(err).Msg("Search index refresh failed")
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close Redis client")
	}
}
