package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
)

const symbolColumns = `
	symbol, security_name, listing_exchange, market_category, asset_class,
	round_lot_size, test_issue, financial_status, nasdaq_traded
`

// MarketRepository implements market.Repository on SQLite
type MarketRepository struct {
	db *DB
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// GetSymbol returns metadata for a symbol
func (r *MarketRepository) GetSymbol(ctx context.Context, symbol string) (*market.SymbolMeta, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+symbolColumns+` FROM symbol_meta WHERE symbol = ?`, symbol)

	m, err := scanSymbol(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, market.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("failed to get symbol: %w", err)
	}
	return m, nil
}

// ListSymbols returns all symbol metadata ordered by symbol
func (r *MarketRepository) ListSymbols(ctx context.Context) ([]market.SymbolMeta, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+symbolColumns+` FROM symbol_meta ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	symbols := []market.SymbolMeta{}
	for rows.Next() {
		m, err := scanSymbol(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, *m)
	}
	return symbols, rows.Err()
}

// GetPriceHistory returns daily bars ordered by trade_date ascending
func (r *MarketRepository) GetPriceHistory(ctx context.Context, symbol string, from, to *market.Date) ([]market.PriceBar, error) {
	query := `
		SELECT trade_date, open, high, low, close, COALESCE(adj_close, close), COALESCE(volume, 0)
		FROM price_bars
		WHERE symbol = ?1
			AND (?2 IS NULL OR trade_date >= ?2)
			AND (?3 IS NULL OR trade_date <= ?3)
		ORDER BY trade_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, symbol, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query price bars: %w", err)
	}
	defer rows.Close()

	bars := []market.PriceBar{}
	for rows.Next() {
		b := market.PriceBar{Symbol: symbol}
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.AdjClose, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan price bar: %w", err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// NewsRepository implements news.Repository on SQLite
type NewsRepository struct {
	db *DB
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// RandomSample returns up to limit random rows from the feed's table
func (r *NewsRepository) RandomSample(ctx context.Context, feed news.Feed, limit int) ([]news.Item, error) {
	if !feed.IsValid() {
		return nil, news.ErrInvalidFeed
	}

	query := fmt.Sprintf(`SELECT id, headline, url, publisher, date, stock FROM %s ORDER BY random() LIMIT ?`, feed.Table())

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", feed.Table(), err)
	}
	defer rows.Close()

	items := []news.Item{}
	for rows.Next() {
		var it news.Item
		if err := rows.Scan(&it.ID, &it.Headline, &it.URL, &it.Publisher, &it.Date, &it.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", feed.Table(), err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSymbol(row scanner) (*market.SymbolMeta, error) {
	var m market.SymbolMeta
	var assetClass sql.NullString

	err := row.Scan(
		&m.Symbol, &m.SecurityName, &m.ListingExchange, &m.MarketCategory, &assetClass,
		&m.RoundLotSize, &m.TestIssue, &m.FinancialStatus, &m.NasdaqTraded,
	)
	if err != nil {
		return nil, err
	}

	var stored *string
	if assetClass.Valid {
		stored = &assetClass.String
	}
	m.AssetClass = market.AssetClassFromStored(stored)
	return &m, nil
}

func dateArg(d *market.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
