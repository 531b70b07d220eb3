package market

import "errors"

var (
	// Validation errors
	ErrInvalidSymbol     = errors.New("invalid symbol format")
	ErrInvalidAssetClass = errors.New("invalid asset class")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("invalid date range: from is after to")

	// Data errors
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrAssetClassMismatch = errors.New("symbol asset class mismatch")
	ErrNoPriceData        = errors.New("no price data found")
)
