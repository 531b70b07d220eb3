package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
)

// DemoDays is the number of daily bars SeedDemo writes per symbol
const DemoDays = 30

type demoSymbol struct {
	symbol string
	name   string
	class  *market.AssetClass // nil stores NULL
	base   float64
}

func classPtr(c market.AssetClass) *market.AssetClass { return &c }

var demoSymbols = []demoSymbol{
	{"AAPL", "Apple Inc. - Common Stock", nil, 180},
	{"MSFT", "Microsoft Corporation - Common Stock", classPtr(market.AssetClassStock), 410},
	{"TSLA", "Tesla, Inc. - Common Stock", classPtr(market.AssetClassStock), 240},
	{"SPY", "SPDR S&P 500 ETF Trust", classPtr(market.AssetClassETF), 520},
	{"QQQ", "Invesco QQQ Trust, Series 1", classPtr(market.AssetClassETF), 440},
	{"BTC-USD", "Bitcoin USD", classPtr(market.AssetClassCrypto), 64000},
	{"ETH-USD", "Ethereum USD", classPtr(market.AssetClassCrypto), 3100},
}

var demoPublishers = []string{"Benzinga Insights", "Zacks", "Lisa Levin", "Vick Meyer"}

// SeedDemo writes a small deterministic dataset ending at end.
// Used by the seed command and by tests.
func (db *DB) SeedDemo(ctx context.Context, end time.Time) error {
	for i, s := range demoSymbols {
		name := s.name
		meta := market.SymbolMeta{
			Symbol:       s.symbol,
			SecurityName: &name,
			NasdaqTraded: true,
		}
		if s.class != nil {
			meta.AssetClass = *s.class
		}
		if err := db.UpsertSymbol(ctx, meta); err != nil {
			return err
		}
		if err := db.UpsertPriceBars(ctx, demoBars(s.symbol, s.base, end, i)); err != nil {
			return err
		}
	}

	for _, feed := range []news.Feed{news.FeedAnalystRatings, news.FeedHeadlines} {
		if err := db.InsertNewsItems(ctx, feed, demoNews(feed, end)); err != nil {
			return err
		}
	}
	return nil
}

// demoBars walks back DemoDays calendar days from end with a small oscillating drift
func demoBars(symbol string, base float64, end time.Time, seed int) []market.PriceBar {
	bars := make([]market.PriceBar, 0, DemoDays)
	start := market.NewDate(end).AddDate(0, 0, -(DemoDays - 1))

	for i := 0; i < DemoDays; i++ {
		step := float64((i*7+seed*3)%11-5) / 100
		closePrice := decimal.NewFromFloat(base * (1 + step + float64(i)/500)).Round(4)
		open := closePrice.Mul(decimal.RequireFromString("0.995")).Round(4)

		bars = append(bars, market.PriceBar{
			Symbol:   symbol,
			Date:     market.NewDate(start.AddDate(0, 0, i)),
			Open:     open,
			High:     decimal.Max(open, closePrice).Mul(decimal.RequireFromString("1.01")).Round(4),
			Low:      decimal.Min(open, closePrice).Mul(decimal.RequireFromString("0.99")).Round(4),
			Close:    closePrice,
			AdjClose: closePrice,
			Volume:   int64(1_000_000 + i*25_000 + seed*1_000),
		})
	}
	return bars
}

func demoNews(feed news.Feed, end time.Time) []news.Item {
	items := make([]news.Item, 0, 12)
	for i := 0; i < 12; i++ {
		s := demoSymbols[i%len(demoSymbols)]
		publisher := demoPublishers[i%len(demoPublishers)]
		url := fmt.Sprintf("https://example.com/%s/%d", feed, i+1)

		items = append(items, news.Item{
			Headline:  fmt.Sprintf("%s: %s update #%d", s.symbol, feed.Label(), i+1),
			URL:       &url,
			Publisher: &publisher,
			Date:      market.NewDate(end.AddDate(0, 0, -i)),
			Stock:     s.symbol,
		})
	}
	return items
}
