package dashboard

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/marketdesk/internal/client"
	"github.com/wonny/marketdesk/internal/domain/market"
)

type fakeFetcher struct {
	mu      sync.Mutex
	data    map[string]*client.History
	errs    map[string]error
	symbols []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		data: map[string]*client.History{},
		errs: map[string]error{},
	}
}

func (f *fakeFetcher) History(_ context.Context, _ market.AssetClass, symbol string) (*client.History, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.symbols = append(f.symbols, symbol)
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	if h, ok := f.data[symbol]; ok {
		return h, nil
	}
	return nil, &client.APIError{Status: http.StatusNotFound, Message: "Symbol not found"}
}

func bar(date string, open, high, low, close string) market.PriceBar {
	d, _ := market.ParseDate(date)
	return market.PriceBar{
		Date:  d,
		Open:  decimal.RequireFromString(open),
		High:  decimal.RequireFromString(high),
		Low:   decimal.RequireFromString(low),
		Close: decimal.RequireFromString(close),
	}
}

func history(symbol string, bars ...market.PriceBar) *client.History {
	return &client.History{Symbol: symbol, Data: bars}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		class market.AssetClass
		raw   string
		want  string
	}{
		{market.AssetClassStock, " aapl ", "AAPL"},
		{market.AssetClassETF, "spy", "SPY"},
		{market.AssetClassCrypto, "btc", "BTC-USD"},
		{market.AssetClassCrypto, "eth-usd", "ETH-USD"},
		{market.AssetClassStock, "   ", ""},
		{market.AssetClassCrypto, "", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.class)+"/"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInput(tt.class, tt.raw))
		})
	}
}

func TestChartWidget_EmptyInput(t *testing.T) {
	tests := []struct {
		class market.AssetClass
		want  string
	}{
		{market.AssetClassStock, "Please enter a stock symbol"},
		{market.AssetClassETF, "Please enter an ETF symbol"},
		{market.AssetClassCrypto, "Please enter a cryptocurrency symbol"},
	}
	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			fetcher := newFakeFetcher()
			w := NewChartWidget(tt.class, fetcher)

			state := w.Load(context.Background(), "  ")

			assert.Equal(t, StatusError, state.Status)
			assert.Equal(t, tt.want, state.Error)
			assert.Empty(t, fetcher.symbols, "blank input must not hit the API")
		})
	}
}

func TestChartWidget_Success(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.data["SPY"] = history("SPY", bar("2024-01-02", "470", "472", "469", "471"))
	w := NewChartWidget(market.AssetClassETF, fetcher)

	assert.Equal(t, StatusIdle, w.Snapshot().Status)

	state := w.Load(context.Background(), "spy")
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, "SPY", state.Symbol)
	assert.True(t, state.HasData())
	assert.Empty(t, state.Error)
}

func TestChartWidget_CryptoSuffix(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.data["BTC-USD"] = &client.History{Symbol: "BTC-USD", CryptoSymbol: "BTC"}
	w := NewChartWidget(market.AssetClassCrypto, fetcher)

	state := w.Load(context.Background(), "btc")
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, []string{"BTC-USD"}, fetcher.symbols)
}

func TestChartWidget_ErrorKeepsPriorData(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.data["SPY"] = history("SPY", bar("2024-01-02", "470", "472", "469", "471"))
	fetcher.errs["AAPL"] = &client.APIError{Status: http.StatusBadRequest, Message: "Symbol is not an ETF"}
	w := NewChartWidget(market.AssetClassETF, fetcher)
	ctx := context.Background()

	w.Load(ctx, "SPY")
	state := w.Load(ctx, "AAPL")

	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "Symbol is not an ETF", state.Error)
	require.True(t, state.HasData())
	assert.Equal(t, "SPY", state.Symbol)

	// Re-enterable after an error
	state = w.Load(ctx, "SPY")
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Empty(t, state.Error)
}

func TestChartWidget_TransportErrorMessage(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.errs["AAPL"] = errors.New("dial tcp: connection refused")
	w := NewChartWidget(market.AssetClassStock, fetcher)

	state := w.Load(context.Background(), "AAPL")
	assert.Equal(t, "dial tcp: connection refused", state.Error)
}

func TestChartWidget_LatestRequestWins(t *testing.T) {
	fetcher := newFakeFetcher()
	w := NewChartWidget(market.AssetClassStock, fetcher)

	first, ok := w.Begin("AAPL")
	require.True(t, ok)
	second, ok := w.Begin("MSFT")
	require.True(t, ok)
	assert.Equal(t, StatusLoading, w.Snapshot().Status)
	assert.Equal(t, "MSFT", w.Snapshot().Pending)

	assert.True(t, w.Complete(second, history("MSFT", bar("2024-01-02", "1", "1", "1", "1")), nil))
	assert.False(t, w.Complete(first, history("AAPL", bar("2024-01-02", "2", "2", "2", "2")), nil))

	state := w.Snapshot()
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, "MSFT", state.Symbol)
}

func TestChartWidget_BlankInputSupersedesPending(t *testing.T) {
	w := NewChartWidget(market.AssetClassStock, newFakeFetcher())

	req, ok := w.Begin("AAPL")
	require.True(t, ok)
	_, ok = w.Begin("")
	require.False(t, ok)

	assert.False(t, w.Complete(req, history("AAPL"), nil))
	assert.Equal(t, "Please enter a stock symbol", w.Snapshot().Error)
}
