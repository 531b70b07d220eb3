package news

import "context"

// Repository defines the interface for news access
type Repository interface {
	// RandomSample returns up to limit randomly selected items from feed.
	// Fewer rows than limit is not an error.
	RandomSample(ctx context.Context, feed Feed, limit int) ([]Item, error)
}
