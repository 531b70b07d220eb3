package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
)

// APIError is returned for failed requests. Message is the server's "error"
// field verbatim, or a generic "Failed to fetch ..." when there is none.
type APIError struct {
	Status  int // 0 when the request never got a response
	Message string
	Err     error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// Message extracts the user-facing text of err
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// History is the payload of the class-specific endpoints
type History struct {
	Symbol       string            `json:"symbol"`
	CryptoSymbol string            `json:"crypto_symbol,omitempty"`
	Data         []market.PriceBar `json:"data"`
}

type listResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
}

// Client calls the marketdesk query API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new Client
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// History fetches a class-specific price history
func (c *Client) History(ctx context.Context, class market.AssetClass, symbol string) (*History, error) {
	var out History
	path := fmt.Sprintf("/api/%s-data/%s", class, url.PathEscape(symbol))
	if err := c.getJSON(ctx, path, nil, &out, class.Label()+" data"); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketData fetches history for a symbol of any class
func (c *Client) MarketData(ctx context.Context, symbol string) (*market.MarketData, error) {
	var out market.MarketData
	if err := c.getJSON(ctx, "/api/market-data/"+url.PathEscape(symbol), nil, &out, "market data"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SymbolClass fetches a symbol's asset class
func (c *Client) SymbolClass(ctx context.Context, symbol string) (*market.SymbolClass, error) {
	var out market.SymbolClass
	if err := c.getJSON(ctx, "/api/symbols/"+url.PathEscape(symbol), nil, &out, "symbol"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchSymbols searches symbols by ticker or name
func (c *Client) SearchSymbols(ctx context.Context, q string, limit int) ([]market.SymbolMeta, error) {
	query := url.Values{"q": {q}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out listResponse[market.SymbolMeta]
	if err := c.getJSON(ctx, "/api/search/symbols", query, &out, "symbols"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AnalystRatings fetches a random sample of analyst ratings
func (c *Client) AnalystRatings(ctx context.Context, limit int) ([]news.Item, error) {
	return c.feed(ctx, "/api/analyst-ratings", limit, "analyst ratings")
}

// Headlines fetches a random sample of partner headlines
func (c *Client) Headlines(ctx context.Context, limit int) ([]news.Item, error) {
	return c.feed(ctx, "/api/headlines", limit, "headlines")
}

// Feed fetches a sample of the given feed
func (c *Client) Feed(ctx context.Context, feed news.Feed, limit int) ([]news.Item, error) {
	if feed == news.FeedAnalystRatings {
		return c.AnalystRatings(ctx, limit)
	}
	return c.Headlines(ctx, limit)
}

func (c *Client) feed(ctx context.Context, path string, limit int, what string) ([]news.Item, error) {
	if limit > 0 {
		path = fmt.Sprintf("%s/%d", path, limit)
	}

	var out listResponse[news.Item]
	if err := c.getJSON(ctx, path, nil, &out, what); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Health checks the liveness endpoint
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/health", nil, &out, "health"); err != nil {
		return err
	}
	if out.Status != "ok" {
		return &APIError{Status: http.StatusOK, Message: "API is not healthy: " + out.Status}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, what string) error {
	fallback := "Failed to fetch " + what

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Message: fallback, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fallback, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		message := fallback
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	return nil
}
