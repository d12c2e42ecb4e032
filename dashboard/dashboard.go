// Package dashboard assembles the personalized dashboard: prices, news, a
// meme, and an AI insight, each served from the per-user cache when fresh
// and refetched from its producer when not.
package dashboard

import (
	"context"

	"github.com/dailyyoga/coinboard/market/cryptopanic"
	"github.com/dailyyoga/coinboard/market/insight"
	"github.com/dailyyoga/coinboard/market/meme"
	"github.com/dailyyoga/coinboard/user"
)

// PricePoint is one coin's price data as served to clients.
type PricePoint struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// Data is the full dashboard response for one user.
type Data struct {
	Prices    map[string]PricePoint  `json:"prices"`
	News      []cryptopanic.NewsItem `json:"news"`
	Meme      *meme.Meme             `json:"meme"`
	AIInsight string                 `json:"aiInsight"`
}

// PriceSource produces raw price data keyed by coin id. Each inner map holds
// the upstream fields (usd, usd_24h_change); entries may be incomplete and
// are filtered before serving.
type PriceSource interface {
	Prices(ctx context.Context, symbols []string) (map[string]map[string]float64, error)
}

// NewsSource produces news items for the given currency symbols.
type NewsSource interface {
	News(ctx context.Context, currencies []string) ([]cryptopanic.NewsItem, error)
}

// MemeSource produces a meme post.
type MemeSource interface {
	Meme(ctx context.Context) (*meme.Meme, error)
}

// InsightSource generates a personalized insight from the market summary.
type InsightSource interface {
	Generate(ctx context.Context, prefs insight.Preferences, sum insight.Summary) (string, error)
}

// PreferenceResolver returns a user's dashboard preferences. It must not
// fail; unresolvable users get defaults.
type PreferenceResolver interface {
	Resolve(ctx context.Context, userID string) user.Preferences
}
