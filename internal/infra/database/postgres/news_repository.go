package postgres

import (
	"context"
	"fmt"

	"github.com/wonny/marketdesk/internal/domain/news"
)

// NewsRepository implements news.Repository using PostgreSQL
type NewsRepository struct {
	pool *Pool
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(pool *Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

// RandomSample returns up to limit random rows from the feed's table
func (r *NewsRepository) RandomSample(ctx context.Context, feed news.Feed, limit int) ([]news.Item, error) {
	if !feed.IsValid() {
		return nil, news.ErrInvalidFeed
	}

	// Table name comes from the Feed whitelist, never from user input
	query := fmt.Sprintf(`
		SELECT id, headline, url, publisher, date, stock
		FROM %s
		ORDER BY random()
		LIMIT $1
	`, feed.Table())

	rows, err := r.pool.Query(ctx, query, limit)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", feed.Table(), err)
	}
	return items, nil
}
