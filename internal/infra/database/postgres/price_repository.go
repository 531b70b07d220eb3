package postgres

import (
	"context"
	"fmt"

	"github.com/wonny/marketdesk/internal/domain/market"
)

// PriceRepository implements market.PriceRepository using PostgreSQL
type PriceRepository struct {
	pool *Pool
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetPriceHistory returns daily bars ordered by trade_date ascending
func (r *PriceRepository) GetPriceHistory(ctx context.Context, symbol string, from, to *market.Date) ([]market.PriceBar, error) {
	query := `
		SELECT
			trade_date,
			open,
			high,
			low,
			close,
			COALESCE(adj_close, close) AS adj_close,
			COALESCE(volume, 0) AS volume
		FROM price_bars
		WHERE symbol = $1
			AND ($2::date IS NULL OR trade_date >= $2::date)
			AND ($3::date IS NULL OR trade_date <= $3::date)
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query price bars: %w", err)
	}
	defer rows.Close()

	bars := []market.PriceBar{}
	for rows.Next() {
		b := market.PriceBar{Symbol: symbol}
		err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.AdjClose, &b.Volume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price bar: %w", err)
		}
		bars = append(bars, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price bars: %w", err)
	}
	return bars, nil
}

// dateArg converts an optional date into a query argument (nil -> NULL)
func dateArg(d *market.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
