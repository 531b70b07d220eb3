package news

import (
	"strconv"
	"strings"

	"github.com/wonny/marketdesk/internal/domain/market"
)

// Feed identifies a news table
type Feed string

const (
	FeedAnalystRatings Feed = "analyst_ratings"
	FeedHeadlines      Feed = "partner_headlines"
)

// Sampling limits
const (
	DefaultSampleLimit = 5
	MaxSampleLimit     = 50
)

// IsValid checks if feed is known
func (f Feed) IsValid() bool {
	return f == FeedAnalystRatings || f == FeedHeadlines
}

// Table returns the backing table name
func (f Feed) Table() string {
	return string(f)
}

// Label returns the human-readable feed name
func (f Feed) Label() string {
	if f == FeedAnalystRatings {
		return "analyst ratings"
	}
	return "headlines"
}

// Item represents a headline or analyst rating
// Maps to analyst_ratings / partner_headlines tables
type Item struct {
	ID        int64       `json:"id" db:"id"`
	Headline  string      `json:"headline" db:"headline"`
	URL       *string     `json:"url" db:"url"`
	Publisher *string     `json:"publisher" db:"publisher"`
	Date      market.Date `json:"date" db:"date"`
	Stock     string      `json:"stock" db:"stock"`
}

// ParseLimit parses a sample limit.
// Empty input yields DefaultSampleLimit; values above MaxSampleLimit are clamped.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSampleLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidLimit
	}
	return ClampLimit(n), nil
}

// ClampLimit bounds n to [1, MaxSampleLimit], using the default for n < 1
func ClampLimit(n int) int {
	if n < 1 {
		return DefaultSampleLimit
	}
	if n > MaxSampleLimit {
		return MaxSampleLimit
	}
	return n
}
