package sqlite

// schema mirrors the PostgreSQL tables. Prices are TEXT to keep decimal precision.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS symbol_meta (
		symbol           TEXT PRIMARY KEY,
		security_name    TEXT,
		listing_exchange TEXT,
		market_category  TEXT,
		asset_class      TEXT,
		round_lot_size   INTEGER,
		test_issue       INTEGER NOT NULL DEFAULT 0,
		financial_status TEXT,
		nasdaq_traded    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS price_bars (
		symbol     TEXT NOT NULL,
		trade_date TEXT NOT NULL,
		open       TEXT NOT NULL,
		high       TEXT NOT NULL,
		low        TEXT NOT NULL,
		close      TEXT NOT NULL,
		adj_close  TEXT,
		volume     INTEGER,
		UNIQUE (symbol, trade_date)
	)`,

	`CREATE TABLE IF NOT EXISTS analyst_ratings (
		id        INTEGER PRIMARY KEY,
		headline  TEXT NOT NULL,
		url       TEXT,
		publisher TEXT,
		date      TEXT NOT NULL,
		stock     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS partner_headlines (
		id        INTEGER PRIMARY KEY,
		headline  TEXT NOT NULL,
		url       TEXT,
		publisher TEXT,
		date      TEXT NOT NULL,
		stock     TEXT NOT NULL
	)`,
}
