package news

import (
	"context"
	"fmt"

	"github.com/wonny/marketdesk/internal/domain/news"
	"github.com/wonny/marketdesk/internal/service"
)

// Service samples analyst ratings and headlines
type Service struct {
	repo news.Repository
}

// NewService creates a new Service
func NewService(repo news.Repository) *Service {
	return &Service{repo: repo}
}

// GetRandomSample returns at most limit random items from feed.
// limit is clamped to [1, news.MaxSampleLimit]; zero selects the default.
func (s *Service) GetRandomSample(ctx context.Context, feed news.Feed, limit int) ([]news.Item, error) {
	if !feed.IsValid() {
		return nil, service.InvalidRequest("Invalid feed", news.ErrInvalidFeed)
	}
	if limit < 0 {
		return nil, service.InvalidRequest("Invalid limit", news.ErrInvalidLimit)
	}

	items, err := s.repo.RandomSample(ctx, feed, news.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", feed.Label(), err)
	}
	return items, nil
}
