package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/marketdesk/internal/client"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/pkg/config"
)

// summaryConcurrency bounds parallel requests per batch
const summaryConcurrency = 4

// Summary is one quick-select slot
type Summary struct {
	Preset config.Preset
	Stats  Stats
	Loaded bool
	Error  string
}

// PresetsFor returns the quick-select presets of class
func PresetsFor(cfg *config.DashboardConfig, class market.AssetClass) []config.Preset {
	switch class {
	case market.AssetClassETF:
		return cfg.Presets.ETF
	case market.AssetClassCrypto:
		return cfg.Presets.Crypto
	default:
		return cfg.Presets.Stock
	}
}

// LoadSummaries fetches every preset in parallel. Each preset fills its own
// slot; a failed fetch is recorded in that slot and never fails the batch.
func LoadSummaries(ctx context.Context, fetcher HistoryFetcher, class market.AssetClass, presets []config.Preset) []Summary {
	out := make([]Summary, len(presets))

	var g errgroup.Group
	g.SetLimit(summaryConcurrency)

	for i, preset := range presets {
		g.Go(func() error {
			out[i] = loadSummary(ctx, fetcher, class, preset)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func loadSummary(ctx context.Context, fetcher HistoryFetcher, class market.AssetClass, preset config.Preset) Summary {
	s := Summary{Preset: preset}

	hist, err := fetcher.History(ctx, class, preset.Symbol)
	if err != nil {
		s.Error = client.Message(err)
		return s
	}

	stats, ok := NewStats(hist.Data)
	if !ok {
		s.Error = "No data found for this " + class.Label()
		return s
	}
	s.Stats = stats
	s.Loaded = true
	return s
}
