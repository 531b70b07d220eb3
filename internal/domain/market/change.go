package market

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PriceChange summarizes the move between the first and latest close
type PriceChange struct {
	First         decimal.Decimal `json:"first"`
	Latest        decimal.Decimal `json:"latest"`
	Change        decimal.Decimal `json:"change"`
	PercentChange decimal.Decimal `json:"percent_change"`
	IsPositive    bool            `json:"is_positive"`
}

// CalculatePriceChange computes the change over an ascending series.
// Returns false when bars is empty.
func CalculatePriceChange(bars []PriceBar) (PriceChange, bool) {
	if len(bars) == 0 {
		return PriceChange{}, false
	}

	first := bars[0].Close
	latest := bars[len(bars)-1].Close
	change := latest.Sub(first)

	// Zero base has no meaningful percentage
	percent := decimal.Zero
	if !first.IsZero() {
		percent = change.Div(first).Mul(hundred)
	}

	return PriceChange{
		First:         first,
		Latest:        latest,
		Change:        change,
		PercentChange: percent,
		IsPositive:    change.Sign() >= 0,
	}, true
}
