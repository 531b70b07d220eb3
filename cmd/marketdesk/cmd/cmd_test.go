package cmd

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/marketdesk/internal/api"
	"github.com/wonny/marketdesk/internal/infra/database/sqlite"
	"github.com/wonny/marketdesk/internal/pkg/config"
	"github.com/wonny/marketdesk/internal/service/marketdata"
	newssvc "github.com/wonny/marketdesk/internal/service/news"
)

// execute runs the CLI with fresh flag values
func execute(t *testing.T, args ...string) error {
	t.Helper()
	cfgFile, apiURL, verbose = "", "", false
	quoteClass, quoteBars = "", 0
	feedAnalyst, feedLimit = false, 0
	searchLimit = 10
	seedPath, seedEnd = "data/marketdesk.db", ""

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

// seededServer seeds a SQLite file through the CLI and serves the API over it
func seededServer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.db")
	require.NoError(t, execute(t, "seed", "--sqlite", path, "--end", "2024-03-29"))

	ctx := context.Background()
	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, AllowedOrigins: []string{"*"}},
		News:   config.NewsConfig{StreamInterval: time.Second},
	}
	router := api.NewRouter(cfg, api.Deps{
		MarketData: marketdata.NewService(sqlite.NewMarketRepository(db), nil, nil),
		News:       newssvc.NewService(sqlite.NewNewsRepository(db)),
		Database:   db,
		Version:    "test",
	})

	srv := httptest.NewServer(router.Engine())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSeedAndQuote(t *testing.T) {
	url := seededServer(t)

	assert.NoError(t, execute(t, "quote", "AAPL", "--api-url", url))
	assert.NoError(t, execute(t, "quote", "spy", "--class", "etf", "--bars", "3", "--api-url", url))
	assert.NoError(t, execute(t, "quote", "btc", "--class", "crypto", "--api-url", url))

	err := execute(t, "quote", "AAPL", "--class", "etf", "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, "Symbol is not an ETF", err.Error())

	err = execute(t, "quote", "NOPE", "--api-url", url)
	require.Error(t, err)
	assert.Equal(t, "Symbol not found", err.Error())

	assert.Error(t, execute(t, "quote", "AAPL", "--class", "bond", "--api-url", url))
}

func TestFeedAndSearch(t *testing.T) {
	url := seededServer(t)

	assert.NoError(t, execute(t, "feed", "--api-url", url))
	assert.NoError(t, execute(t, "feed", "--analyst", "--limit", "3", "--api-url", url))
	assert.NoError(t, execute(t, "search", "apple", "--api-url", url))
}

func TestSeed_InvalidEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.db")
	assert.Error(t, execute(t, "seed", "--sqlite", path, "--end", "yesterday"))
}
