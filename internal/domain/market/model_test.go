package market

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssetClass(t *testing.T) {
	class, err := ParseAssetClass(" ETF ")
	require.NoError(t, err)
	assert.Equal(t, AssetClassETF, class)

	_, err = ParseAssetClass("bond")
	assert.ErrorIs(t, err, ErrInvalidAssetClass)
}

func TestAssetClassFromStored(t *testing.T) {
	empty := ""
	crypto := "CRYPTO"
	junk := "warrant"

	assert.Equal(t, AssetClassStock, AssetClassFromStored(nil), "NULL defaults to stock")
	assert.Equal(t, AssetClassStock, AssetClassFromStored(&empty))
	assert.Equal(t, AssetClassCrypto, AssetClassFromStored(&crypto))
	assert.Equal(t, AssetClassStock, AssetClassFromStored(&junk))
}

func TestValidateSymbol(t *testing.T) {
	assert.True(t, ValidateSymbol("AAPL"))
	assert.True(t, ValidateSymbol("BTC-USD"))
	assert.True(t, ValidateSymbol("BRK.B"))
	assert.False(t, ValidateSymbol(""))
	assert.False(t, ValidateSymbol("aapl"))
	assert.False(t, ValidateSymbol("AAPL;DROP"))
	assert.False(t, ValidateSymbol("ABCDEFGHIJKLMNOPQ"))
}

func TestHistoryQuery_Normalize(t *testing.T) {
	t.Run("normalizes symbol", func(t *testing.T) {
		q := HistoryQuery{Symbol: " aapl "}
		require.NoError(t, q.Normalize())
		assert.Equal(t, "AAPL", q.Symbol)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		from, _ := ParseDate("2024-02-01")
		to, _ := ParseDate("2024-01-01")
		q := HistoryQuery{Symbol: "AAPL", From: &from, To: &to}
		assert.ErrorIs(t, q.Normalize(), ErrInvalidDateRange)
	})

	t.Run("rejects bad symbol", func(t *testing.T) {
		q := HistoryQuery{Symbol: "A A"}
		assert.ErrorIs(t, q.Normalize(), ErrInvalidSymbol)
	})
}

func TestCryptoBase(t *testing.T) {
	assert.Equal(t, "BTC", CryptoBase("BTC-USD"))
	assert.Equal(t, "ETH", CryptoBase("ETH"))
}

func TestPriceBar_JSONRoundTrip(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	require.NoError(t, err)

	bar := PriceBar{
		Symbol:   "AAPL",
		Date:     date,
		Open:     decimal.RequireFromString("171.1234"),
		High:     decimal.RequireFromString("173.5"),
		Low:      decimal.RequireFromString("170.01"),
		Close:    decimal.RequireFromString("172.62"),
		AdjClose: decimal.RequireFromString("172.415678"),
		Volume:   71106600,
	}

	raw, err := json.Marshal(bar)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date":"2024-03-15"`)

	var decoded PriceBar
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "2024-03-15", decoded.Date.String())
	assert.True(t, bar.Open.Equal(decoded.Open))
	assert.True(t, bar.Close.Equal(decoded.Close))
	assert.Equal(t, bar.AdjClose.StringFixed(2), decoded.AdjClose.StringFixed(2))
	assert.Equal(t, bar.Volume, decoded.Volume)
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-01-05"))
	assert.Equal(t, "2024-01-05", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-06T00:00:00Z")))
	assert.Equal(t, "2024-01-06", d.String())

	assert.Error(t, d.Scan(42))
}

func TestIsStrictlyAscending(t *testing.T) {
	d1, _ := ParseDate("2024-01-01")
	d2, _ := ParseDate("2024-01-02")

	assert.True(t, IsStrictlyAscending([]PriceBar{{Date: d1}, {Date: d2}}))
	assert.False(t, IsStrictlyAscending([]PriceBar{{Date: d2}, {Date: d1}}))
	assert.False(t, IsStrictlyAscending([]PriceBar{{Date: d1}, {Date: d1}}), "duplicates are not ascending")
}
