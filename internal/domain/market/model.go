package market

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetClass categorizes a symbol as a stock, an ETF or a cryptocurrency
type AssetClass string

const (
	AssetClassStock  AssetClass = "stock"
	AssetClassETF    AssetClass = "etf"
	AssetClassCrypto AssetClass = "crypto"
)

// DefaultAssetClass is used when symbol_meta.asset_class is NULL or empty
const DefaultAssetClass = AssetClassStock

// ParseAssetClass parses a class name (case-insensitive)
func ParseAssetClass(s string) (AssetClass, error) {
	switch AssetClass(strings.ToLower(strings.TrimSpace(s))) {
	case AssetClassStock:
		return AssetClassStock, nil
	case AssetClassETF:
		return AssetClassETF, nil
	case AssetClassCrypto:
		return AssetClassCrypto, nil
	default:
		return "", ErrInvalidAssetClass
	}
}

// AssetClassFromStored maps a nullable stored value to an AssetClass.
// NULL and empty values resolve to DefaultAssetClass.
func AssetClassFromStored(s *string) AssetClass {
	if s == nil || strings.TrimSpace(*s) == "" {
		return DefaultAssetClass
	}
	class, err := ParseAssetClass(*s)
	if err != nil {
		return DefaultAssetClass
	}
	return class
}

// IsValid checks if class is one of the known variants
func (c AssetClass) IsValid() bool {
	switch c {
	case AssetClassStock, AssetClassETF, AssetClassCrypto:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name used in error messages
func (c AssetClass) Label() string {
	switch c {
	case AssetClassETF:
		return "ETF"
	case AssetClassCrypto:
		return "cryptocurrency"
	default:
		return "stock"
	}
}

// SymbolMeta represents a tradable instrument
// Maps to symbol_meta table
type SymbolMeta struct {
	Symbol          string     `json:"symbol" db:"symbol"`
	SecurityName    *string    `json:"security_name" db:"security_name"`
	ListingExchange *string    `json:"listing_exchange" db:"listing_exchange"`
	MarketCategory  *string    `json:"market_category" db:"market_category"`
	AssetClass      AssetClass `json:"asset_class" db:"asset_class"`
	RoundLotSize    *int       `json:"round_lot_size" db:"round_lot_size"`
	TestIssue       bool       `json:"test_issue" db:"test_issue"`
	FinancialStatus *string    `json:"financial_status" db:"financial_status"`
	NasdaqTraded    bool       `json:"nasdaq_traded" db:"nasdaq_traded"`
}

// IsETF reports whether the symbol is an ETF
func (m SymbolMeta) IsETF() bool { return m.AssetClass == AssetClassETF }

// IsStock reports whether the symbol is a stock
func (m SymbolMeta) IsStock() bool { return m.AssetClass == AssetClassStock }

// IsCrypto reports whether the symbol is a cryptocurrency
func (m SymbolMeta) IsCrypto() bool { return m.AssetClass == AssetClassCrypto }

// Name returns the security name or an empty string
func (m SymbolMeta) Name() string {
	if m.SecurityName == nil {
		return ""
	}
	return *m.SecurityName
}

// SymbolClass is the result of a class lookup
type SymbolClass struct {
	Symbol     string     `json:"symbol"`
	IsETF      bool       `json:"is_etf"`
	IsStock    bool       `json:"is_stock"`
	IsCrypto   bool       `json:"is_crypto"`
	AssetClass AssetClass `json:"asset_class"`
	Meta       SymbolMeta `json:"meta"`
}

// NewSymbolClass builds a SymbolClass from metadata
func NewSymbolClass(meta SymbolMeta) SymbolClass {
	return SymbolClass{
		Symbol:     meta.Symbol,
		IsETF:      meta.IsETF(),
		IsStock:    meta.IsStock(),
		IsCrypto:   meta.IsCrypto(),
		AssetClass: meta.AssetClass,
		Meta:       meta,
	}
}

// PriceBar represents one day's OHLCV record for a symbol
// Maps to price_bars table
type PriceBar struct {
	Symbol   string          `json:"-" db:"symbol"`
	Date     Date            `json:"date" db:"trade_date"`
	Open     decimal.Decimal `json:"open" db:"open"`
	High     decimal.Decimal `json:"high" db:"high"`
	Low      decimal.Decimal `json:"low" db:"low"`
	Close    decimal.Decimal `json:"close" db:"close"`
	AdjClose decimal.Decimal `json:"adj_close" db:"adj_close"`
	Volume   int64           `json:"volume" db:"volume"`
}

// HistoryQuery describes a price history range scan
type HistoryQuery struct {
	Symbol string
	Class  *AssetClass // optional class filter
	From   *Date
	To     *Date
}

// Normalize normalizes and validates HistoryQuery
func (q *HistoryQuery) Normalize() error {
	q.Symbol = NormalizeSymbol(q.Symbol)
	if !ValidateSymbol(q.Symbol) {
		return ErrInvalidSymbol
	}
	if q.Class != nil && !q.Class.IsValid() {
		return ErrInvalidAssetClass
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// MarketData is the payload of the general market-data lookup
type MarketData struct {
	Symbol       string     `json:"symbol"`
	SecurityName *string    `json:"security_name"`
	IsETF        bool       `json:"is_etf"`
	AssetClass   AssetClass `json:"asset_class"`
	Data         []PriceBar `json:"data"`
}

// NormalizeSymbol trims and upper-cases a ticker
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol validates ticker format: 1-16 chars of A-Z, 0-9, '.', '-', '^', '='
func ValidateSymbol(symbol string) bool {
	if len(symbol) == 0 || len(symbol) > 16 {
		return false
	}
	for _, c := range symbol {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '^' || c == '=':
		default:
			return false
		}
	}
	return true
}

// CryptoBase returns the base asset of a crypto pair (BTC for BTC-USD)
func CryptoBase(symbol string) string {
	base, _, _ := strings.Cut(symbol, "-")
	return base
}

// IsStrictlyAscending reports whether bars are ordered by date with no duplicates
func IsStrictlyAscending(bars []PriceBar) bool {
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			return false
		}
	}
	return true
}

// dateLayout is the ISO date format used on the wire
const dateLayout = time.DateOnly
