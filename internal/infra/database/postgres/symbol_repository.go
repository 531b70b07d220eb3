package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wonny/marketdesk/internal/domain/market"
)

const symbolColumns = `
	symbol, security_name, listing_exchange, market_category, asset_class,
	round_lot_size, COALESCE(test_issue, false), financial_status, COALESCE(nasdaq_traded, false)
`

// SymbolRepository implements market.SymbolRepository using PostgreSQL
type SymbolRepository struct {
	pool *Pool
}

// NewSymbolRepository creates a new SymbolRepository
func NewSymbolRepository(pool *Pool) *SymbolRepository {
	return &SymbolRepository{pool: pool}
}

// GetSymbol returns metadata for a symbol
func (r *SymbolRepository) GetSymbol(ctx context.Context, symbol string) (*market.SymbolMeta, error) {
	query := `SELECT ` + symbolColumns + ` FROM symbol_meta WHERE symbol = $1`

	m, err := scanSymbol(r.pool.QueryRow(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, market.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("failed to get symbol: %w", err)
	}
	return m, nil
}

// ListSymbols returns all symbol metadata ordered by symbol
func (r *SymbolRepository) ListSymbols(ctx context.Context) ([]market.SymbolMeta, error) {
	query := `SELECT ` + symbolColumns + ` FROM symbol_meta ORDER BY symbol`

	rows, err := r.pool.Query(ctx, query)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}
	return symbols, nil
}

func scanSymbol(row pgx.Row) (*market.SymbolMeta, error) {
	var m market.SymbolMeta
	var assetClass *string

	err := row.Scan(
		&m.Symbol, &m.SecurityName, &m.ListingExchange, &m.MarketCategory, &assetClass,
		&m.RoundLotSize, &m.TestIssue, &m.FinancialStatus, &m.NasdaqTraded,
	)
	if err != nil {
		return nil, err
	}

	m.AssetClass = market.AssetClassFromStored(assetClass)
	return &m, nil
}
