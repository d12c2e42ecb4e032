// Package coingecko fetches live coin prices from the CoinGecko API.
package coingecko

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/symbols"
)

// Client calls the CoinGecko simple price endpoint.
type Client struct {
	logger     logger.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	dir        *symbols.Directory
}

// New creates a CoinGecko client. The directory resolves user symbols
// (BTC, ETH) to the coin ids the API expects.
func New(log logger.Logger, cfg *Config, dir *symbols.Directory) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if cfg.APIKey == "" {
		log.Warn("coingecko api key is not set, using public rate limits")
	}
	return &Client{
		logger:     log,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		dir:        dir,
	}
}

// Prices returns current USD price and 24h change for the given symbols,
// keyed by coin id. Unknown symbols are dropped; an empty id set
// short-circuits to an empty result without calling the API.
//
// The result is returned in the raw upstream shape (field name to number)
// because the API omits fields it has no data for; the dashboard filters
// incomplete entries before serving or caching them.
func (c *Client) Prices(ctx context.Context, syms []string) (map[string]map[string]float64, error) {
	ids := c.dir.Resolve(syms)
	if len(ids) == 0 {
		return map[string]map[string]float64{}, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, ErrRequest(err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("coingecko request failed", zap.Error(err))
		return nil, ErrRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("coingecko returned non-200", zap.Int("status", resp.StatusCode))
		return nil, ErrStatus(resp.StatusCode)
	}

	var prices map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, ErrDecode(err)
	}
	return prices, nil
}

// CoinList fetches the full symbol-to-id mapping, suitable as the symbol
// directory's sync source. The list carries duplicate symbols (squatter
// tokens reuse well-known tickers); the first id seen is kept here, and the
// directory lays its curated seed over the result on sync.
func (c *Client) CoinList(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/coins/list", nil)
	if err != nil {
		return nil, ErrRequest(err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrStatus(resp.StatusCode)
	}

	var coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, ErrDecode(err)
	}

	mapping := make(map[string]string, len(coins))
	for _, coin := range coins {
		sym := strings.ToUpper(coin.Symbol)
		if sym == "" || coin.ID == "" {
			continue
		}
		if _, exists := mapping[sym]; !exists {
			mapping[sym] = coin.ID
		}
	}
	return mapping, nil
}
