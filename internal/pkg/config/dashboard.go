package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Preset is a quick-select entry on the dashboard
type Preset struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// DashboardConfig holds terminal dashboard settings.
// Read from an optional YAML file, then overridden by environment variables.
type DashboardConfig struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	FeedLimit      int           `yaml:"feed_limit"`
	Theme          string        `yaml:"theme"`
	Presets        struct {
		Stock  []Preset `yaml:"stock"`
		ETF    []Preset `yaml:"etf"`
		Crypto []Preset `yaml:"crypto"`
	} `yaml:"presets"`
}

// LoadDashboard reads the dashboard config from path (a missing file is not an error)
func LoadDashboard(path string) (*DashboardConfig, error) {
	cfg := &DashboardConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read dashboard config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse dashboard config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKETDESK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("MARKETDESK_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("MARKETDESK_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MARKETDESK_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = d
	}

	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *DashboardConfig) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:8000"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.PollInterval == 0 {
		c.PollInterval = 8 * time.Second
	}
	if c.FeedLimit == 0 {
		c.FeedLimit = 5
	}
	if c.Theme == "" {
		c.Theme = "dark"
	}
	if len(c.Presets.Stock) == 0 {
		c.Presets.Stock = []Preset{
			{Symbol: "AAPL", Name: "Apple"},
			{Symbol: "MSFT", Name: "Microsoft"},
			{Symbol: "GOOGL", Name: "Google"},
			{Symbol: "AMZN", Name: "Amazon"},
			{Symbol: "TSLA", Name: "Tesla"},
		}
	}
	if len(c.Presets.ETF) == 0 {
		c.Presets.ETF = []Preset{
			{Symbol: "SPY", Name: "S&P 500"},
			{Symbol: "QQQ", Name: "Nasdaq 100"},
			{Symbol: "VTI", Name: "Total Market"},
			{Symbol: "IWM", Name: "Russell 2000"},
			{Symbol: "DIA", Name: "Dow Jones"},
		}
	}
	if len(c.Presets.Crypto) == 0 {
		c.Presets.Crypto = []Preset{
			{Symbol: "BTC-USD", Name: "Bitcoin"},
			{Symbol: "ETH-USD", Name: "Ethereum"},
			{Symbol: "XRP-USD", Name: "Ripple"},
			{Symbol: "LTC-USD", Name: "Litecoin"},
			{Symbol: "ADA-USD", Name: "Cardano"},
			{Symbol: "DOT-USD", Name: "Polkadot"},
			{Symbol: "DOGE-USD", Name: "Dogecoin"},
			{Symbol: "SOL-USD", Name: "Solana"},
			{Symbol: "MATIC-USD", Name: "Polygon"},
			{Symbol: "LINK-USD", Name: "Chainlink"},
		}
	}
}

// Validate checks that settings are usable
func (c *DashboardConfig) Validate() error {
	if c.PollInterval < time.Second {
		return fmt.Errorf("poll_interval must be at least 1s")
	}
	if c.FeedLimit < 1 {
		return fmt.Errorf("feed_limit must be positive")
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("theme must be dark or light")
	}
	return nil
}
