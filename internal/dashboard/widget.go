package dashboard

import (
	"context"
	"strings"
	"sync"

	"github.com/wonny/marketdesk/internal/client"
	"github.com/wonny/marketdesk/internal/domain/market"
)

// Status is the lifecycle state of a chart widget
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// HistoryFetcher loads a class-specific price history
type HistoryFetcher interface {
	History(ctx context.Context, class market.AssetClass, symbol string) (*client.History, error)
}

// Request identifies one submission. Only the latest request's result is applied.
type Request struct {
	Token  uint64
	Class  market.AssetClass
	Symbol string
}

// ChartState is an immutable view of a widget
type ChartState struct {
	Status  Status
	Symbol  string // symbol of the displayed data
	Pending string // symbol being loaded
	Data    *client.History
	Error   string
}

// HasData reports whether there is something to chart
func (s ChartState) HasData() bool {
	return s.Data != nil && len(s.Data.Data) > 0
}

// ChartWidget holds the state of one asset-class chart form
type ChartWidget struct {
	mu      sync.Mutex
	class   market.AssetClass
	fetcher HistoryFetcher

	seq     uint64
	status  Status
	pending string
	data    *client.History
	errMsg  string
}

// NewChartWidget creates an idle widget for class
func NewChartWidget(class market.AssetClass, fetcher HistoryFetcher) *ChartWidget {
	return &ChartWidget{
		class:   class,
		fetcher: fetcher,
	}
}

// Class returns the widget's asset class
func (w *ChartWidget) Class() market.AssetClass {
	return w.class
}

// EmptyInputMessage is shown when the form is submitted without a symbol
func EmptyInputMessage(class market.AssetClass) string {
	switch class {
	case market.AssetClassETF:
		return "Please enter an ETF symbol"
	case market.AssetClassCrypto:
		return "Please enter a cryptocurrency symbol"
	default:
		return "Please enter a stock symbol"
	}
}

// NormalizeInput upper-cases raw input and, for crypto, adds the -USD quote
// when the user typed only the base asset. Returns "" for blank input.
func NormalizeInput(class market.AssetClass, raw string) string {
	symbol := market.NormalizeSymbol(raw)
	if symbol == "" {
		return ""
	}
	if class == market.AssetClassCrypto && !strings.Contains(symbol, "-USD") {
		symbol += "-USD"
	}
	return symbol
}

// Begin starts a new submission. Blank input moves the widget to the error
// state without a request; prior data is kept either way.
func (w *ChartWidget) Begin(raw string) (Request, bool) {
	symbol := NormalizeInput(w.class, raw)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	if symbol == "" {
		w.status = StatusError
		w.pending = ""
		w.errMsg = EmptyInputMessage(w.class)
		return Request{}, false
	}

	w.status = StatusLoading
	w.pending = symbol
	w.errMsg = ""
	return Request{Token: w.seq, Class: w.class, Symbol: symbol}, true
}

// Fetch performs the request without touching widget state
func (w *ChartWidget) Fetch(ctx context.Context, req Request) (*client.History, error) {
	return w.fetcher.History(ctx, req.Class, req.Symbol)
}

// Complete applies the result of req. Results of superseded requests are
// dropped and false is returned. On failure the server message is shown
// verbatim and the previous chart stays in place.
func (w *ChartWidget) Complete(req Request, hist *client.History, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if req.Token != w.seq {
		return false
	}

	w.pending = ""
	if err != nil {
		w.status = StatusError
		w.errMsg = client.Message(err)
		return true
	}

	w.status = StatusSuccess
	w.data = hist
	w.errMsg = ""
	return true
}

// Load runs a full submission synchronously
func (w *ChartWidget) Load(ctx context.Context, raw string) ChartState {
	req, ok := w.Begin(raw)
	if ok {
		hist, err := w.Fetch(ctx, req)
		w.Complete(req, hist, err)
	}
	return w.Snapshot()
}

// Snapshot returns the current state
func (w *ChartWidget) Snapshot() ChartState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := ChartState{
		Status:  w.status,
		Pending: w.pending,
		Data:    w.data,
		Error:   w.errMsg,
	}
	if w.data != nil {
		state.Symbol = w.data.Symbol
	}
	return state
}
