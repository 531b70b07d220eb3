package market

import "context"

// SymbolRepository defines the interface for symbol metadata access
type SymbolRepository interface {
	// GetSymbol returns metadata for a symbol (ErrSymbolNotFound if absent)
	GetSymbol(ctx context.Context, symbol string) (*SymbolMeta, error)

	// ListSymbols returns all symbol metadata ordered by symbol
	ListSymbols(ctx context.Context) ([]SymbolMeta, error)
}

// PriceRepository defines the interface for price bar access
type PriceRepository interface {
	// GetPriceHistory returns bars ordered by date ascending.
	// An empty slice (not an error) is returned when nothing matches.
	GetPriceHistory(ctx context.Context, symbol string, from, to *Date) ([]PriceBar, error)
}

// Repository combines symbol and price access
type Repository interface {
	SymbolRepository
	PriceRepository
}
