package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/symbols"
)

func testDirectory(t *testing.T) *symbols.Directory {
	t.Helper()
	d, err := symbols.NewDirectory(logger.NewNop(), nil, nil)
	if err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	return d
}

func TestClient_Prices(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("ids"); got != "bitcoin,ethereum" {
			t.Errorf("ids = %q, want %q", got, "bitcoin,ethereum")
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":50000,"usd_24h_change":5.1},"ethereum":{"usd":3000,"usd_24h_change":-1.2}}`))
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL}, testDirectory(t))
	prices, err := c.Prices(context.Background(), []string{"BTC", "ETH"})
	if err != nil {
		t.Fatalf("Prices failed: %v", err)
	}
	if prices["bitcoin"]["usd"] != 50000 {
		t.Errorf("bitcoin usd = %v", prices["bitcoin"]["usd"])
	}
	if prices["ethereum"]["usd_24h_change"] != -1.2 {
		t.Errorf("ethereum change = %v", prices["ethereum"]["usd_24h_change"])
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClient_PricesNoKnownSymbolsSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected when no symbols resolve")
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL}, testDirectory(t))
	prices, err := c.Prices(context.Background(), []string{"NOTACOIN"})
	if err != nil {
		t.Fatalf("Prices failed: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("expected empty result, got %v", prices)
	}
}

func TestClient_PricesUpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL}, testDirectory(t))
	if _, err := c.Prices(context.Background(), []string{"BTC"}); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestClient_PricesPassesAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-cg-demo-api-key"); got != "demo-key" {
			t.Errorf("api key header = %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL, APIKey: "demo-key"}, testDirectory(t))
	if _, err := c.Prices(context.Background(), []string{"BTC"}); err != nil {
		t.Fatalf("Prices failed: %v", err)
	}
}

func TestClient_CoinList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc"},{"id":"bitcoin-clone","symbol":"btc"},{"id":"litecoin","symbol":"ltc"}]`))
	}))
	defer srv.Close()

	c := New(logger.NewNop(), &Config{BaseURL: srv.URL}, testDirectory(t))
	mapping, err := c.CoinList(context.Background())
	if err != nil {
		t.Fatalf("CoinList failed: %v", err)
	}
	if mapping["BTC"] != "bitcoin" {
		t.Errorf("BTC = %q, want first listing to win", mapping["BTC"])
	}
	if mapping["LTC"] != "litecoin" {
		t.Errorf("LTC = %q", mapping["LTC"])
	}
}
