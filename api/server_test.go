package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/dailyyoga/coinboard/auth"
	"github.com/dailyyoga/coinboard/cache"
	"github.com/dailyyoga/coinboard/dashboard"
	"github.com/dailyyoga/coinboard/feedback"
	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/market/cryptopanic"
	"github.com/dailyyoga/coinboard/market/insight"
	"github.com/dailyyoga/coinboard/market/meme"
	"github.com/dailyyoga/coinboard/user"
)

// memStore is a minimal in-memory cache.Store for wiring the dashboard.
type memStore struct {
	mu      sync.Mutex
	entries map[string]*cache.Entry
}

func (m *memStore) Get(_ context.Context, ownerID string, kind cache.Kind) (*cache.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[ownerID+"/"+kind.String()], nil
}

func (m *memStore) Put(_ context.Context, ownerID string, kind cache.Kind, payload json.RawMessage, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[ownerID+"/"+kind.String()] = &cache.Entry{
		OwnerID: ownerID, Kind: kind, Payload: payload, FetchedAt: fetchedAt,
	}
	return nil
}

type stubPrices struct{ err error }

func (s *stubPrices) Prices(context.Context, []string) (map[string]map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]map[string]float64{
		"bitcoin": {"usd": 50000, "usd_24h_change": 2.5},
	}, nil
}

type stubNews struct{}

func (stubNews) News(context.Context, []string) ([]cryptopanic.NewsItem, error) {
	return []cryptopanic.NewsItem{{ID: 1, Title: "headline"}}, nil
}

type stubMeme struct{}

func (stubMeme) Meme(context.Context) (*meme.Meme, error) {
	return meme.Fallback(), nil
}

type stubInsight struct{}

func (stubInsight) Generate(context.Context, insight.Preferences, insight.Summary) (string, error) {
	return "stub insight", nil
}

type testServer struct {
	server *Server
	prices *stubPrices
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "api_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	models := append(user.Models(), feedback.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	users, err := user.NewService(db)
	if err != nil {
		t.Fatalf("user service: %v", err)
	}
	tokens, err := auth.NewTokens(&auth.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	feedbackSvc, err := feedback.NewService(nil, db, nil)
	if err != nil {
		t.Fatalf("feedback service: %v", err)
	}

	cached := cache.NewCachedStore(logger.NewNop(), &memStore{entries: map[string]*cache.Entry{}}, cache.PolicySet{
		cache.KindPrices:  cache.RollingTTL(time.Minute),
		cache.KindNews:    cache.RollingTTL(time.Minute),
		cache.KindMeme:    cache.AlwaysRefetch(),
		cache.KindInsight: cache.CalendarDay(),
	})
	prices := &stubPrices{}
	dashboardSvc, err := dashboard.NewService(
		logger.NewNop(), cached, user.NewResolver(users, nil),
		prices, stubNews{}, stubMeme{}, stubInsight{}, nil,
	)
	if err != nil {
		t.Fatalf("dashboard service: %v", err)
	}

	server, err := NewServer(logger.NewNop(), nil, Services{
		Users:     users,
		Tokens:    tokens,
		Dashboard: dashboardSvc,
		Feedback:  feedbackSvc,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return &testServer{server: server, prices: prices}
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(w, req)
	return w
}

func (ts *testServer) signup(t *testing.T, email string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/auth/signup",
		fmt.Sprintf(`{"email":%q,"password":"hunter22"}`, email), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return resp.Token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice@example.com")
	if token == "" {
		t.Fatal("signup returned empty token")
	}

	// duplicate email
	w := ts.do(t, http.MethodPost, "/api/auth/signup",
		`{"email":"alice@example.com","password":"hunter22"}`, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup returned %d, want 409", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"hunter22"}`, "")
	if w.Code != http.StatusOK {
		t.Errorf("login returned %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong!"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login returned %d, want 401", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/auth/signup", `{"email":"x@y.com"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("signup without password returned %d, want 400", w.Code)
	}
}

func TestPreferencesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/user/preferences", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token returned %d, want 401", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/api/user/preferences", "", "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token returned %d, want 401", w.Code)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "bob@example.com")

	w := ts.do(t, http.MethodGet, "/api/user/preferences", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("get preferences returned %d: %s", w.Code, w.Body.String())
	}
	var prefs user.Preferences
	if err := json.Unmarshal(w.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if prefs.InvestorType != "moderate" {
		t.Errorf("default investorType = %q", prefs.InvestorType)
	}

	w = ts.do(t, http.MethodPut, "/api/user/preferences",
		`{"favoriteCoins":["BTC","SOL"],"investorType":"aggressive","contentPreferences":["news"]}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("put preferences returned %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodGet, "/api/user/preferences", "", token)
	if err := json.Unmarshal(w.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if len(prefs.FavoriteCoins) != 2 || prefs.InvestorType != "aggressive" {
		t.Errorf("preferences = %+v", prefs)
	}
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "carol@example.com")

	w := ts.do(t, http.MethodGet, "/api/dashboard", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard returned %d: %s", w.Code, w.Body.String())
	}

	var data struct {
		Prices    map[string]json.RawMessage `json:"prices"`
		AIInsight string                     `json:"aiInsight"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if _, ok := data.Prices["bitcoin"]; !ok {
		t.Errorf("dashboard missing bitcoin prices: %s", w.Body.String())
	}
	if data.AIInsight != "stub insight" {
		t.Errorf("aiInsight = %q", data.AIInsight)
	}
}

func TestDashboardFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "dave@example.com")
	ts.prices.err = fmt.Errorf("upstream down")

	w := ts.do(t, http.MethodGet, "/api/dashboard", "", token)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("dashboard returned %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to load dashboard data") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestFeedback(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "erin@example.com")

	w := ts.do(t, http.MethodPost, "/api/feedback", `{"rating":"up","comment":"nice"}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("feedback returned %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/feedback", `{"rating":"sideways"}`, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid rating returned %d, want 400", w.Code)
	}
}
