package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/marketdesk/internal/domain/market"
)

// Series is chart-ready data, one point per bar in date order
type Series struct {
	Labels []string
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
}

// NewSeries converts bars to plottable values
func NewSeries(bars []market.PriceBar) Series {
	s := Series{
		Labels: make([]string, len(bars)),
		Open:   make([]float64, len(bars)),
		High:   make([]float64, len(bars)),
		Low:    make([]float64, len(bars)),
		Close:  make([]float64, len(bars)),
	}
	for i, b := range bars {
		s.Labels[i] = b.Date.String()
		s.Open[i] = b.Open.InexactFloat64()
		s.High[i] = b.High.InexactFloat64()
		s.Low[i] = b.Low.InexactFloat64()
		s.Close[i] = b.Close.InexactFloat64()
	}
	return s
}

// Len returns the number of points
func (s Series) Len() int {
	return len(s.Labels)
}

// Bounds returns the min and max over the open and close lines
func (s Series) Bounds() (lo, hi float64) {
	if s.Len() == 0 {
		return 0, 0
	}
	lo, hi = s.Close[0], s.Close[0]
	for i := range s.Labels {
		for _, v := range []float64{s.Open[i], s.Close[i]} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

// Change is a formatted price change
type Change struct {
	Positive bool
	Amount   string // absolute, 2 decimals
	Percent  string // signed, 2 decimals
}

// String renders the change as "↑ $1.23 (0.45%)"
func (c Change) String() string {
	arrow := "↓"
	if c.Positive {
		arrow = "↑"
	}
	return arrow + " $" + c.Amount + " (" + c.Percent + "%)"
}

// Stats summarizes the latest bar of a series
type Stats struct {
	Date   string
	Open   string
	Close  string
	High   string
	Low    string
	Volume int64
	Change *Change // nil with fewer than two bars
}

// NewStats builds the stats card. Returns false when bars is empty.
func NewStats(bars []market.PriceBar) (Stats, bool) {
	if len(bars) == 0 {
		return Stats{}, false
	}

	latest := bars[len(bars)-1]
	stats := Stats{
		Date:   latest.Date.String(),
		Open:   money(latest.Open),
		Close:  money(latest.Close),
		High:   money(latest.High),
		Low:    money(latest.Low),
		Volume: latest.Volume,
	}

	if len(bars) >= 2 {
		if pc, ok := market.CalculatePriceChange(bars); ok {
			stats.Change = &Change{
				Positive: pc.IsPositive,
				Amount:   pc.Change.Abs().StringFixed(2),
				Percent:  pc.PercentChange.StringFixed(2),
			}
		}
	}
	return stats, true
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
