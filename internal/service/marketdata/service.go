package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/service"
	"golang.org/x/sync/singleflight"
)

// Search limits
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// historyLoadTimeout bounds a shared history load, which outlives the caller that started it
const historyLoadTimeout = 30 * time.Second

// HistoryCache is a read-through cache for price histories
type HistoryCache interface {
	GetHistory(ctx context.Context, symbol string, from, to *market.Date) ([]market.PriceBar, bool, error)
	SetHistory(ctx context.Context, symbol string, from, to *market.Date, bars []market.PriceBar) error
}

// SymbolSearcher is a full-text index over symbol metadata
type SymbolSearcher interface {
	Search(q string, class *market.AssetClass, limit int) ([]market.SymbolMeta, error)
	Rebuild(metas []market.SymbolMeta) error
}

// Service answers market data queries
type Service struct {
	repo   market.Repository
	cache  HistoryCache   // optional
	search SymbolSearcher // optional
	sf     singleflight.Group
}

// NewService creates a new Service. cache and search may be nil.
func NewService(repo market.Repository, cache HistoryCache, search SymbolSearcher) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		search: search,
	}
}

// GetSymbolClass reports the asset class of a symbol
func (s *Service) GetSymbolClass(ctx context.Context, symbol string) (*market.SymbolClass, error) {
	symbol = market.NormalizeSymbol(symbol)
	if !market.ValidateSymbol(symbol) {
		return nil, service.InvalidRequest("Invalid symbol", market.ErrInvalidSymbol)
	}

	meta, err := s.repo.GetSymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, market.ErrSymbolNotFound) {
			return nil, service.NotFound("Symbol not found", err)
		}
		return nil, err
	}

	class := market.NewSymbolClass(*meta)
	return &class, nil
}

// GetPriceHistory returns the bars of one symbol ordered by date ascending.
// With a class filter the symbol must exist and belong to that class.
func (s *Service) GetPriceHistory(ctx context.Context, q market.HistoryQuery) ([]market.PriceBar, error) {
	if err := q.Normalize(); err != nil {
		return nil, invalidQuery(err)
	}

	if q.Class != nil {
		meta, err := s.repo.GetSymbol(ctx, q.Symbol)
		if err != nil && !errors.Is(err, market.ErrSymbolNotFound) {
			return nil, err
		}
		if meta == nil || meta.AssetClass != *q.Class {
			return nil, service.InvalidRequest(notClassMessage(*q.Class), market.ErrAssetClassMismatch)
		}
	}

	bars, err := s.history(ctx, q.Symbol, q.From, q.To)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, service.NotFound(noDataMessage(q.Class), market.ErrNoPriceData)
	}
	return bars, nil
}

// GetMarketData looks up a symbol of any class with its price history
func (s *Service) GetMarketData(ctx context.Context, symbol string, from, to *market.Date) (*market.MarketData, error) {
	q := market.HistoryQuery{Symbol: symbol, From: from, To: to}
	if err := q.Normalize(); err != nil {
		// A malformed ticker cannot exist in the store
		if errors.Is(err, market.ErrInvalidSymbol) {
			return nil, service.NotFound("Symbol not found", err)
		}
		return nil, invalidQuery(err)
	}

	meta, err := s.repo.GetSymbol(ctx, q.Symbol)
	if err != nil {
		if errors.Is(err, market.ErrSymbolNotFound) {
			return nil, service.NotFound("Symbol not found", err)
		}
		return nil, err
	}

	bars, err := s.history(ctx, q.Symbol, q.From, q.To)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, service.NotFound(noDataMessage(nil), market.ErrNoPriceData)
	}

	return &market.MarketData{
		Symbol:       meta.Symbol,
		SecurityName: meta.SecurityName,
		IsETF:        meta.IsETF(),
		AssetClass:   meta.AssetClass,
		Data:         bars,
	}, nil
}

// SearchSymbols finds symbols by ticker or name
func (s *Service) SearchSymbols(ctx context.Context, q string, class *market.AssetClass, limit int) ([]market.SymbolMeta, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, service.InvalidRequest("Query is required", nil)
	}
	if class != nil && !class.IsValid() {
		return nil, service.InvalidRequest("Invalid asset class", market.ErrInvalidAssetClass)
	}
	switch {
	case limit < 0:
		return nil, service.InvalidRequest("Invalid limit", nil)
	case limit == 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	if s.search != nil {
		return s.search.Search(q, class, limit)
	}
	return s.scanSymbols(ctx, q, class, limit)
}

// RefreshSearchIndex rebuilds the search index from the symbol table
func (s *Service) RefreshSearchIndex(ctx context.Context) error {
	if s.search == nil {
		return nil
	}

	metas, err := s.repo.ListSymbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to list symbols: %w", err)
	}
	return s.search.Rebuild(metas)
}

// scanSymbols is the index-less fallback: case-insensitive substring match
func (s *Service) scanSymbols(ctx context.Context, q string, class *market.AssetClass, limit int) ([]market.SymbolMeta, error) {
	metas, err := s.repo.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(q)
	out := []market.SymbolMeta{}
	for _, m := range metas {
		if class != nil && m.AssetClass != *class {
			continue
		}
		if strings.Contains(strings.ToLower(m.Symbol), needle) || strings.Contains(strings.ToLower(m.Name()), needle) {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// history reads through the cache and collapses concurrent loads of the same range
func (s *Service) history(ctx context.Context, symbol string, from, to *market.Date) ([]market.PriceBar, error) {
	if s.cache != nil {
		bars, ok, err := s.cache.GetHistory(ctx, symbol, from, to)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("History cache read failed, querying database")
		} else if ok {
			return bars, nil
		}
	}

	key := fmt.Sprintf("%s|%s|%s", symbol, dateKey(from), dateKey(to))
	ch := s.sf.DoChan(key, func() (any, error) {
		// Joined callers must not fail when the first caller goes away
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyLoadTimeout)
		defer cancel()

		bars, err := s.repo.GetPriceHistory(loadCtx, symbol, from, to)
		if err != nil {
			return nil, err
		}

		if s.cache != nil && len(bars) > 0 {
			if err := s.cache.SetHistory(loadCtx, symbol, from, to, bars); err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("History cache write failed")
			}
		}
		return bars, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to load price history for %s: %w", symbol, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("failed to load price history for %s: %w", symbol, res.Err)
		}
		return res.Val.([]market.PriceBar), nil
	}
}

func dateKey(d *market.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func invalidQuery(err error) error {
	switch {
	case errors.Is(err, market.ErrInvalidSymbol):
		return service.InvalidRequest("Invalid symbol", err)
	case errors.Is(err, market.ErrInvalidDateRange):
		return service.InvalidRequest("Invalid date range: from is after to", err)
	case errors.Is(err, market.ErrInvalidAssetClass):
		return service.InvalidRequest("Invalid asset class", err)
	default:
		return service.InvalidRequest(err.Error(), err)
	}
}

func notClassMessage(class market.AssetClass) string {
	switch class {
	case market.AssetClassETF:
		return "Symbol is not an ETF"
	case market.AssetClassCrypto:
		return "Symbol is not a cryptocurrency"
	default:
		return "Symbol is not a stock"
	}
}

func noDataMessage(class *market.AssetClass) string {
	if class == nil {
		return "No market data found for this symbol"
	}
	return "No data found for this " + class.Label()
}
