package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dailyyoga/coinboard/logger"
)

func TestClient_GenerateWithoutKeyUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without an api key")
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL})
	got, err := c.Generate(context.Background(), Preferences{FavoriteCoins: []string{"BTC"}}, Summary{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(got, "BTC") {
		t.Errorf("got %q, want fallback naming favorite coins", got)
	}
}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "HODLer investor") {
			t.Errorf("prompt missing investor type: %+v", req.Messages)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  Markets look\n\n interesting today.  "}}]}`))
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL, APIKey: "secret"})
	got, err := c.Generate(context.Background(),
		Preferences{FavoriteCoins: []string{"BTC"}, InvestorType: "HODLer"},
		Summary{Prices: map[string]PriceDelta{"bitcoin": {USD: 50000, Change: 6}}},
	)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "Markets look interesting today." {
		t.Errorf("got %q, want cleaned response", got)
	}
}

func TestClient_GenerateEmptyChoicesUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL, APIKey: "secret"})
	got, err := c.Generate(context.Background(), Preferences{FavoriteCoins: []string{"ETH"}}, Summary{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(got, "ETH") {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestClient_GenerateUpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL, APIKey: "secret"})
	if _, err := c.Generate(context.Background(), Preferences{}, Summary{}); err == nil {
		t.Fatal("expected error so the caller can fall back")
	}
}

func TestClient_CleanTruncates(t *testing.T) {
	c := New(logger.NewNop(), &Config{MaxLength: 10})
	if got := c.clean("aaaaaaaaaaaaaaaaaaaa"); len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}

	// the cap must cut on a rune boundary, not a byte offset
	got := c.clean(strings.Repeat("€", 20))
	if !utf8.ValidString(got) {
		t.Errorf("truncated text is not valid utf-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("rune count = %d, want 10", n)
	}
}
