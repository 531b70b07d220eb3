package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/marketdesk/internal/domain/news"
)

func TestNewPoller_RejectsSubSecond(t *testing.T) {
	_, err := NewPoller(500*time.Millisecond,
		func(context.Context) (int, error) { return 0, nil },
		func(int, error) {},
	)
	assert.Error(t, err)
}

func TestPoller_FiresImmediatelyThenOnTick(t *testing.T) {
	var calls atomic.Int32
	var delivered atomic.Int32

	p, err := NewPoller(time.Second,
		func(context.Context) (int32, error) { return calls.Add(1), nil },
		func(int32, error) { delivered.Add(1) },
	)
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	assert.Eventually(t, func() bool { return delivered.Load() >= 1 }, 500*time.Millisecond, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return delivered.Load() >= 2 }, 3*time.Second, 50*time.Millisecond)
}

func TestPoller_DeliversErrors(t *testing.T) {
	errc := make(chan error, 1)
	p, err := NewPoller(time.Minute,
		func(context.Context) (int, error) { return 0, errors.New("boom") },
		func(_ int, err error) {
			select {
			case errc <- err:
			default:
			}
		},
	)
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	select {
	case err := <-errc:
		assert.EqualError(t, err, "boom")
	case <-time.After(time.Second):
		t.Fatal("no delivery")
	}
}

func TestPoller_StopDiscardsInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	var delivered atomic.Bool
	var finished atomic.Bool

	p, err := NewPoller(time.Minute,
		func(ctx context.Context) (int, error) {
			once.Do(func() { close(started) })
			<-release
			finished.Store(true)
			return 1, ctx.Err()
		},
		func(int, error) { delivered.Store(true) },
	)
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))

	<-started
	p.Stop()
	close(release)

	assert.Eventually(t, finished.Load, time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.False(t, delivered.Load(), "result after Stop must be discarded")
	assert.True(t, p.Stopped())
}

func TestPoller_Lifecycle(t *testing.T) {
	p, err := NewPoller(time.Minute,
		func(context.Context) (int, error) { return 0, nil },
		func(int, error) {},
	)
	require.NoError(t, err)

	require.NoError(t, p.Start(context.Background()))
	assert.ErrorIs(t, p.Start(context.Background()), ErrPollerStarted)

	p.Stop()
	p.Stop()
	assert.ErrorIs(t, p.Start(context.Background()), ErrPollerStopped)
}

type fakeFeeds struct {
	items map[news.Feed][]news.Item
	err   error
}

func (f *fakeFeeds) Feed(_ context.Context, feed news.Feed, limit int) ([]news.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := f.items[feed]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func TestLiveFeed_Apply(t *testing.T) {
	f := NewLiveFeed(news.FeedHeadlines, 5)
	assert.True(t, f.Snapshot().Loading)

	f.Apply([]news.Item{{ID: 1, Headline: "a"}}, nil)
	state := f.Snapshot()
	assert.False(t, state.Loading)
	assert.Len(t, state.Items, 1)

	f.Apply(nil, errors.New("Failed to fetch headlines"))
	state = f.Snapshot()
	assert.Equal(t, "Failed to fetch headlines", state.Error)
	assert.Len(t, state.Items, 1, "last good items are kept")

	f.Apply([]news.Item{{ID: 2}, {ID: 3}}, nil)
	state = f.Snapshot()
	assert.Empty(t, state.Error)
	assert.Len(t, state.Items, 2)
}

func TestNewFeedPoller(t *testing.T) {
	fetcher := &fakeFeeds{items: map[news.Feed][]news.Item{
		news.FeedAnalystRatings: {{ID: 1}, {ID: 2}, {ID: 3}},
	}}
	f := NewLiveFeed(news.FeedAnalystRatings, 2)

	states := make(chan FeedState, 4)
	p, err := NewFeedPoller(f, fetcher, DefaultPollInterval, func(s FeedState) {
		select {
		case states <- s:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	select {
	case s := <-states:
		assert.Equal(t, news.FeedAnalystRatings, s.Feed)
		assert.Len(t, s.Items, 2)
	case <-time.After(time.Second):
		t.Fatal("no feed update")
	}
}
