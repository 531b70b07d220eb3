package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPollInterval matches the live feed refresh rate
const DefaultPollInterval = 8 * time.Second

var (
	ErrPollerStarted = errors.New("poller already started")
	ErrPollerStopped = errors.New("poller stopped")
)

// Poller runs fetch once on Start and then on every tick, handing each
// result to deliver. Ticks do not wait for earlier fetches, so requests may
// overlap and results are applied in arrival order. After Stop returns no
// further results are delivered; fetches already in flight run to completion
// and their results are dropped.
type Poller[T any] struct {
	interval time.Duration
	fetch    func(ctx context.Context) (T, error)
	deliver  func(T, error)

	mu      sync.Mutex
	cron    *cron.Cron
	ctx     context.Context
	stopped bool
}

// NewPoller creates a poller. Intervals below one second are rejected since
// the scheduler works in whole seconds.
func NewPoller[T any](interval time.Duration, fetch func(ctx context.Context) (T, error), deliver func(T, error)) (*Poller[T], error) {
	if interval < time.Second {
		return nil, fmt.Errorf("poll interval must be at least 1s, got %s", interval)
	}
	return &Poller[T]{
		interval: interval,
		fetch:    fetch,
		deliver:  deliver,
	}, nil
}

// Start fires the first fetch and schedules the rest. ctx is passed to every
// fetch; it is not cancelled by Stop.
func (p *Poller[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrPollerStopped
	}
	if p.cron != nil {
		return ErrPollerStarted
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), p.run); err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}

	p.cron = c
	p.ctx = ctx
	c.Start()
	go p.run()
	return nil
}

// Stop cancels the schedule. Safe to call more than once.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	if p.cron != nil {
		// Don't wait for running jobs, their results are discarded
		p.cron.Stop()
	}
}

// Stopped reports whether Stop has been called
func (p *Poller[T]) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Poller[T]) run() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	ctx := p.ctx
	p.mu.Unlock()

	result, err := p.fetch(ctx)

	// Holding the lock while delivering keeps Stop from racing a delivery
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.deliver(result, err)
}
