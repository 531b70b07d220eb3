package postgres

// MarketRepository combines symbol and price access for the market service
type MarketRepository struct {
	*SymbolRepository
	*PriceRepository
}

// NewMarketRepository creates a market.Repository backed by pool
func NewMarketRepository(pool *Pool) *MarketRepository {
	return &MarketRepository{
		SymbolRepository: NewSymbolRepository(pool),
		PriceRepository:  NewPriceRepository(pool),
	}
}
