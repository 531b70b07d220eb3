package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/marketdesk/internal/client"
	"github.com/wonny/marketdesk/internal/domain/news"
)

// FeedFetcher loads a random sample of a news feed
type FeedFetcher interface {
	Feed(ctx context.Context, feed news.Feed, limit int) ([]news.Item, error)
}

// FeedState is an immutable view of a live feed pane
type FeedState struct {
	Feed    news.Feed
	Loading bool // true until the first response
	Items   []news.Item
	Error   string
}

// LiveFeed keeps the latest sample of one feed
type LiveFeed struct {
	mu      sync.Mutex
	feed    news.Feed
	limit   int
	loading bool
	items   []news.Item
	errMsg  string
}

// NewLiveFeed creates a feed pane in the loading state
func NewLiveFeed(feed news.Feed, limit int) *LiveFeed {
	return &LiveFeed{
		feed:    feed,
		limit:   news.ClampLimit(limit),
		loading: true,
	}
}

// Fetch loads one sample
func (f *LiveFeed) Fetch(ctx context.Context, fetcher FeedFetcher) ([]news.Item, error) {
	return fetcher.Feed(ctx, f.feed, f.limit)
}

// Apply records a response. A failure keeps the last good items.
func (f *LiveFeed) Apply(items []news.Item, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loading = false
	if err != nil {
		f.errMsg = client.Message(err)
		return
	}
	f.items = items
	f.errMsg = ""
}

// Snapshot returns the current state
func (f *LiveFeed) Snapshot() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return FeedState{
		Feed:    f.feed,
		Loading: f.loading,
		Items:   f.items,
		Error:   f.errMsg,
	}
}

// NewFeedPoller wires a LiveFeed to a Poller. notify runs after each applied
// response while the poller is locked and must not block.
func NewFeedPoller(f *LiveFeed, fetcher FeedFetcher, interval time.Duration, notify func(FeedState)) (*Poller[[]news.Item], error) {
	return NewPoller(interval,
		func(ctx context.Context) ([]news.Item, error) {
			return f.Fetch(ctx, fetcher)
		},
		func(items []news.Item, err error) {
			f.Apply(items, err)
			if notify != nil {
				notify(f.Snapshot())
			}
		},
	)
}
