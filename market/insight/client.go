// Package insight generates a short personalized market insight, either via
// an LLM behind the Hugging Face router API or through a deterministic local
// fallback that can never fail.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// Preferences is the slice of user settings the prompt embeds.
type Preferences struct {
	FavoriteCoins      []string
	InvestorType       string
	ContentPreferences []string
}

// PriceDelta is one coin's current price and 24h change.
type PriceDelta struct {
	USD    float64
	Change float64
}

// Summary is the market context the insight is generated from.
type Summary struct {
	Prices       map[string]PriceDelta
	NewsCount    int
	TopNewsTitle string
}

// Client generates insights through an OpenAI-compatible chat completions
// endpoint.
type Client struct {
	logger     logger.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string

	maxTokens   int
	temperature float64
	topP        float64
	maxLength   int
}

// New creates an insight client.
func New(log logger.Logger, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	return &Client{
		logger:      log,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		maxLength:   cfg.MaxLength,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate produces a personalized insight. Without an API key it serves the
// local fallback directly. Transport and API failures are returned as errors
// so the caller can fall back itself.
func (c *Client) Generate(ctx context.Context, prefs Preferences, sum Summary) (string, error) {
	if c.apiKey == "" {
		c.logger.Warn("insight api key is not set, using fallback insight")
		return Fallback(prefs, sum), nil
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(prefs, sum)}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	})
	if err != nil {
		return "", ErrRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", ErrRequest(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("insight request failed", zap.Error(err))
		return "", ErrRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("insight api returned non-200", zap.Int("status", resp.StatusCode))
		return "", ErrStatus(resp.StatusCode)
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", ErrDecode(err)
	}
	if len(body.Choices) == 0 || body.Choices[0].Message.Content == "" {
		c.logger.Warn("insight api returned no text, using fallback")
		return Fallback(prefs, sum), nil
	}

	return c.clean(body.Choices[0].Message.Content), nil
}

func buildPrompt(prefs Preferences, sum Summary) string {
	var prices strings.Builder
	for coinID, delta := range sum.Prices {
		sign := ""
		if delta.Change > 0 {
			sign = "+"
		}
		fmt.Fprintf(&prices, "%s: $%.2f (%s%.2f%%), ", coinID, delta.USD, sign, delta.Change)
	}

	topNews := sum.TopNewsTitle
	if topNews == "" {
		topNews = "No major news today"
	}

	return fmt.Sprintf(`You are a crypto market advisor. Generate a brief, personalized daily insight (2-3 sentences) for a %s investor.

User's favorite coins: %s
Current prices: %s
Latest news: %s
User interests: %s

Provide a concise insight about market trends or opportunities. Be professional but friendly.`,
		prefs.InvestorType,
		strings.Join(prefs.FavoriteCoins, ", "),
		prices.String(),
		topNews,
		strings.Join(prefs.ContentPreferences, ", "),
	)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// clean collapses whitespace and truncates overly long generations. The cap
// counts runes, not bytes, so a cut never splits a multi-byte character.
func (c *Client) clean(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if runes := []rune(text); len(runes) > c.maxLength {
		text = string(runes[:c.maxLength])
	}
	return text
}
