package news

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/marketdesk/internal/domain/news"
	"github.com/wonny/marketdesk/internal/service"
)

type fakeRepo struct {
	rows      int
	err       error
	lastLimit int
	lastFeed  news.Feed
}

func (r *fakeRepo) RandomSample(_ context.Context, feed news.Feed, limit int) ([]news.Item, error) {
	r.lastLimit = limit
	r.lastFeed = feed
	if r.err != nil {
		return nil, r.err
	}

	n := min(limit, r.rows)
	items := make([]news.Item, n)
	for i := range items {
		items[i] = news.Item{ID: int64(i + 1), Headline: "headline", Stock: "AAPL"}
	}
	return items, nil
}

func TestService_GetRandomSample(t *testing.T) {
	ctx := context.Background()

	t.Run("default limit", func(t *testing.T) {
		repo := &fakeRepo{rows: 100}
		items, err := NewService(repo).GetRandomSample(ctx, news.FeedHeadlines, 0)
		require.NoError(t, err)
		assert.Len(t, items, news.DefaultSampleLimit)
		assert.Equal(t, news.FeedHeadlines, repo.lastFeed)
	})

	t.Run("clamped", func(t *testing.T) {
		repo := &fakeRepo{rows: 100}
		items, err := NewService(repo).GetRandomSample(ctx, news.FeedAnalystRatings, 1000)
		require.NoError(t, err)
		assert.Len(t, items, news.MaxSampleLimit)
		assert.Equal(t, news.MaxSampleLimit, repo.lastLimit)
	})

	t.Run("fewer rows than limit", func(t *testing.T) {
		items, err := NewService(&fakeRepo{rows: 2}).GetRandomSample(ctx, news.FeedHeadlines, 5)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("invalid feed", func(t *testing.T) {
		_, err := NewService(&fakeRepo{}).GetRandomSample(ctx, news.Feed("users"), 5)
		assert.Equal(t, service.KindInvalidRequest, service.KindOf(err))
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := NewService(&fakeRepo{}).GetRandomSample(ctx, news.FeedHeadlines, -1)
		assert.Equal(t, service.KindInvalidRequest, service.KindOf(err))
	})

	t.Run("repository error", func(t *testing.T) {
		_, err := NewService(&fakeRepo{err: errors.New("db down")}).GetRandomSample(ctx, news.FeedHeadlines, 5)
		require.Error(t, err)
		assert.Equal(t, service.KindInternal, service.KindOf(err))
	})
}
