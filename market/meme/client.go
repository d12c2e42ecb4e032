// Package meme fetches a crypto meme from Reddit, with a static fallback.
package meme

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// Meme is one meme post in the shape the dashboard serves.
type Meme struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	Permalink string `json:"permalink"`
}

// Fallback returns the static meme served whenever Reddit is unavailable
// or has nothing usable. It must never fail.
func Fallback() *Meme {
	return &Meme{
		Title:     "When you check your portfolio",
		URL:       "https://i.imgflip.com/2/1bij.jpg",
		Author:    "fallback",
		Permalink: "https://imgflip.com/memetemplates",
	}
}

// Client fetches meme posts from a subreddit's hot listing.
type Client struct {
	logger     logger.Logger
	httpClient *http.Client
	baseURL    string
	userAgent  string
	postLimit  int
	pick       func(n int) int
}

// New creates a meme client.
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
		userAgent:  cfg.UserAgent,
		postLimit:  cfg.PostLimit,
		pick:       rand.Intn,
	}
}

// Meme returns a random image post from the hot listing. Posts that are not
// plain images (videos, text posts) are skipped; when nothing usable remains
// the static fallback is returned. Transport failures are returned as errors
// so the caller can decide to fall back.
func (c *Client) Meme(ctx context.Context) (*Meme, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?limit="+strconv.Itoa(c.postLimit), nil)
	if err != nil {
		return nil, ErrRequest(err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("reddit request failed", zap.Error(err))
		return nil, ErrRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("reddit returned non-200", zap.Int("status", resp.StatusCode))
		return nil, ErrStatus(resp.StatusCode)
	}

	var body struct {
		Data struct {
			Children []struct {
				Data struct {
					Title     string `json:"title"`
					URL       string `json:"url"`
					Author    string `json:"author"`
					Permalink string `json:"permalink"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, ErrDecode(err)
	}

	var images []*Meme
	for _, child := range body.Data.Children {
		post := child.Data
		if !isImageURL(post.URL) {
			continue
		}
		images = append(images, &Meme{
			Title:     post.Title,
			URL:       post.URL,
			Author:    post.Author,
			Permalink: "https://www.reddit.com" + post.Permalink,
		})
	}

	if len(images) == 0 {
		return Fallback(), nil
	}
	return images[c.pick(len(images))], nil
}

func isImageURL(u string) bool {
	if u == "" {
		return false
	}
	return strings.HasSuffix(u, ".jpg") ||
		strings.HasSuffix(u, ".jpeg") ||
		strings.HasSuffix(u, ".png") ||
		strings.HasSuffix(u, ".gif") ||
		strings.Contains(u, "i.redd.it")
}
