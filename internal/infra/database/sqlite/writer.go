package sqlite

import (
	"context"
	"fmt"

	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
)

// UpsertSymbol inserts or replaces symbol metadata
func (db *DB) UpsertSymbol(ctx context.Context, m market.SymbolMeta) error {
	var class any
	if m.AssetClass != "" {
		class = string(m.AssetClass)
	}

	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO symbol_meta (`+symbolColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.Symbol, m.SecurityName, m.ListingExchange, m.MarketCategory, class,
		m.RoundLotSize, m.TestIssue, m.FinancialStatus, m.NasdaqTraded)
	if err != nil {
		return fmt.Errorf("failed to upsert symbol %s: %w", m.Symbol, err)
	}
	return nil
}

// UpsertPriceBars writes bars in one transaction, replacing existing (symbol, trade_date) rows
func (db *DB) UpsertPriceBars(ctx context.Context, bars []market.PriceBar) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO price_bars (symbol, trade_date, open, high, low, close, adj_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		_, err := stmt.ExecContext(ctx, b.Symbol, b.Date.String(),
			b.Open.String(), b.High.String(), b.Low.String(), b.Close.String(), b.AdjClose.String(), b.Volume)
		if err != nil {
			return fmt.Errorf("failed to insert bar %s %s: %w", b.Symbol, b.Date, err)
		}
	}

	return tx.Commit()
}

// InsertNewsItems appends rows to the feed's table
func (db *DB) InsertNewsItems(ctx context.Context, feed news.Feed, items []news.Item) error {
	if !feed.IsValid() {
		return news.ErrInvalidFeed
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, headline, url, publisher, date, stock) VALUES (?, ?, ?, ?, ?, ?)`, feed.Table())
	for _, it := range items {
		var id any
		if it.ID != 0 {
			id = it.ID
		}
		if _, err := db.ExecContext(ctx, query, id, it.Headline, it.URL, it.Publisher, it.Date.String(), it.Stock); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", feed.Table(), err)
		}
	}
	return nil
}
