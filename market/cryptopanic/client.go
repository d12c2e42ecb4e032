// Package cryptopanic fetches crypto news from the CryptoPanic API.
package cryptopanic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// NewsItem is one headline in the shape the dashboard serves.
type NewsItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	CreatedAt string `json:"created_at"`
}

// Client calls the CryptoPanic posts endpoint.
type Client struct {
	logger     logger.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a CryptoPanic client.
func New(log logger.Logger, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	return &Client{
		logger:     log,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// rawPost mirrors the upstream response. The API has shipped the link under
// several field names over time, so both the flat and the nested source
// fields are read.
type rawPost struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	CreatedAt string `json:"created_at"`
	Source    struct {
		URL    string `json:"url"`
		Domain string `json:"domain"`
		Name   string `json:"name"`
	} `json:"source"`
}

// News returns the latest news, optionally filtered to the given currency
// symbols. A missing API key yields an empty list, not an error.
func (c *Client) News(ctx context.Context, currencies []string) ([]NewsItem, error) {
	if c.apiKey == "" {
		c.logger.Warn("cryptopanic api key is not set, returning empty news list")
		return []NewsItem{}, nil
	}

	q := url.Values{}
	q.Set("auth_token", c.apiKey)
	q.Set("public", "true")
	q.Set("kind", "news")
	if len(currencies) > 0 {
		q.Set("currencies", strings.Join(currencies, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, ErrRequest(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("cryptopanic request failed", zap.Error(err))
		return nil, ErrRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("cryptopanic returned non-200", zap.Int("status", resp.StatusCode))
		return nil, ErrStatus(resp.StatusCode)
	}

	var body struct {
		Results []rawPost `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, ErrDecode(err)
	}

	items := make([]NewsItem, 0, len(body.Results))
	for _, post := range body.Results {
		items = append(items, normalizePost(post))
	}
	return items, nil
}

func normalizePost(post rawPost) NewsItem {
	link := post.URL
	if link == "" {
		link = post.Source.URL
	}
	if link == "" {
		// fall back to the CryptoPanic news page for the post
		link = "https://cryptopanic.com/news/" + strconv.FormatInt(post.ID, 10) + "/"
	}

	domain := post.Domain
	if domain == "" {
		domain = post.Source.Domain
	}
	if domain == "" {
		domain = post.Source.Name
	}
	if domain == "" {
		domain = "Unknown"
	}

	return NewsItem{
		ID:        post.ID,
		Title:     post.Title,
		URL:       link,
		Domain:    domain,
		CreatedAt: post.CreatedAt,
	}
}
