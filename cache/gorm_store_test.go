package cache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cache_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewGormStore(db)
}

func TestGormStore_GetAbsent(t *testing.T) {
	store := setupGormStore(t)
	entry, err := store.Get(context.Background(), "u1", KindPrices)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry for absent key, got %+v", entry)
	}
}

func TestGormStore_PutGet(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()
	payload := json.RawMessage(`{"bitcoin":{"usd":50000,"usd_24h_change":5}}`)
	fetched := time.Now().Truncate(time.Second)

	if err := store.Put(ctx, "u1", KindPrices, payload, fetched); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, err := store.Get(ctx, "u1", KindPrices)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry == nil {
		t.Fatal("expected entry, got nil")
	}
	if string(entry.Payload) != string(payload) {
		t.Errorf("payload = %s, want %s", entry.Payload, payload)
	}
	if !entry.FetchedAt.Equal(fetched) {
		t.Errorf("fetchedAt = %v, want %v", entry.FetchedAt, fetched)
	}
}

func TestGormStore_PutOverwritesSameKey(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()
	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	second := time.Now().Truncate(time.Second)

	if err := store.Put(ctx, "u1", KindNews, json.RawMessage(`[{"id":1}]`), first); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := store.Put(ctx, "u1", KindNews, json.RawMessage(`[{"id":2}]`), second); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	entry, err := store.Get(ctx, "u1", KindNews)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(entry.Payload) != `[{"id":2}]` {
		t.Errorf("payload = %s, want superseded value", entry.Payload)
	}
	if !entry.FetchedAt.Equal(second) {
		t.Errorf("fetchedAt = %v, want %v", entry.FetchedAt, second)
	}

	var count int64
	db := store.db
	db.Model(&dashboardCache{}).Where("owner_id = ?", "u1").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one row per (owner, kind), got %d", count)
	}
}

func TestGormStore_KeysAreScopedPerOwnerAndKind(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()
	now := time.Now()

	store.Put(ctx, "u1", KindPrices, json.RawMessage(`"a"`), now)
	store.Put(ctx, "u1", KindNews, json.RawMessage(`"b"`), now)
	store.Put(ctx, "u2", KindPrices, json.RawMessage(`"c"`), now)

	entry, _ := store.Get(ctx, "u2", KindPrices)
	if entry == nil || string(entry.Payload) != `"c"` {
		t.Fatalf("one user's cache must never satisfy another's request, got %+v", entry)
	}
	entry, _ = store.Get(ctx, "u1", KindNews)
	if entry == nil || string(entry.Payload) != `"b"` {
		t.Fatalf("kinds must not collide, got %+v", entry)
	}
}

func TestGormStore_Sweep(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()

	store.Put(ctx, "stale-user", KindPrices, json.RawMessage(`{}`), old)
	store.Put(ctx, "active-user", KindPrices, json.RawMessage(`{}`), recent)

	removed, err := store.Sweep(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	entry, _ := store.Get(ctx, "active-user", KindPrices)
	if entry == nil {
		t.Error("sweep must not remove entries inside the retention window")
	}
}
