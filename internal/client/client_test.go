package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/marketdesk/internal/domain/market"
)

func newTestServer(t *testing.T) (*Client, *[]string) {
	t.Helper()
	var paths []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/etf-data/SPY", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"SPY","data":[{"date":"2024-01-02","open":"470.1","high":"472","low":"469","close":"471.5","adj_close":"471.5","volume":100}]}`))
	})
	mux.HandleFunc("/api/etf-data/AAPL", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Symbol is not an ETF","code":"INVALID_PARAMETER"}`))
	})
	mux.HandleFunc("/api/crypto-data/BTC-USD", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"BTC-USD","crypto_symbol":"BTC","data":[]}`))
	})
	mux.HandleFunc("/api/market-data/BROKEN", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})
	mux.HandleFunc("/api/headlines/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"headline":"a","date":"2024-01-02","stock":"AAPL"},{"id":2,"headline":"b","date":"2024-01-02","stock":"MSFT"}]}`))
	})
	mux.HandleFunc("/api/search/symbols", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"symbol":"AAPL","asset_class":"stock"}]}`))
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", 2*time.Second), &paths
}

func TestClient_History(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	h, err := c.History(ctx, market.AssetClassETF, "SPY")
	require.NoError(t, err)
	require.Len(t, h.Data, 1)
	assert.Equal(t, "471.5", h.Data[0].Close.String())
	assert.Equal(t, "2024-01-02", h.Data[0].Date.String())

	h, err = c.History(ctx, market.AssetClassCrypto, "BTC-USD")
	require.NoError(t, err)
	assert.Equal(t, "BTC", h.CryptoSymbol)
}

func TestClient_ErrorMessageIsVerbatim(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.History(context.Background(), market.AssetClassETF, "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Symbol is not an ETF", apiErr.Message)
	assert.Equal(t, "Symbol is not an ETF", Message(err))
}

func TestClient_FallbackMessage(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.MarketData(context.Background(), "BROKEN")
	assert.Equal(t, "Failed to fetch market data", Message(err))

	_, err = c.History(context.Background(), market.AssetClassETF, "NOPE")
	assert.Equal(t, "Failed to fetch ETF data", Message(err))

	unreachable := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err = unreachable.Headlines(context.Background(), 5)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.Equal(t, "Failed to fetch headlines", apiErr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClient_Feeds(t *testing.T) {
	c, paths := newTestServer(t)
	ctx := context.Background()

	items, err := c.Headlines(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Contains(t, *paths, "/api/headlines/3")

	metas, err := c.SearchSymbols(ctx, "apple", 5)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, market.AssetClassStock, metas[0].AssetClass)

	assert.NoError(t, c.Health(ctx))
}
