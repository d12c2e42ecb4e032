package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dailyyoga/coinboard/logger"
)

// memStore is an in-memory Store for exercising CachedStore behavior,
// including injected backend failures.
type memStore struct {
	entries map[string]*Entry
	getErr  error
	putErr  error
	puts    int
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]*Entry)}
}

func (m *memStore) key(ownerID string, kind Kind) string {
	return ownerID + "/" + kind.String()
}

func (m *memStore) Get(ctx context.Context, ownerID string, kind Kind) (*Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[m.key(ownerID, kind)], nil
}

func (m *memStore) Put(ctx context.Context, ownerID string, kind Kind, payload json.RawMessage, fetchedAt time.Time) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[m.key(ownerID, kind)] = &Entry{
		OwnerID:   ownerID,
		Kind:      kind,
		Payload:   payload,
		FetchedAt: fetchedAt,
	}
	return nil
}

func TestCachedStore_LookupFreshWithinTTL(t *testing.T) {
	store := newMemStore()
	cs := NewCachedStore(logger.NewNop(), store, DefaultConfig().PolicySet())

	base := time.Now()
	cs.now = func() time.Time { return base }
	cs.Save(context.Background(), "u1", KindPrices, json.RawMessage(`{"a":1}`))

	// anywhere inside [T, T+ttl) is a hit
	cs.now = func() time.Time { return base.Add(59 * time.Second) }
	payload, hit := cs.Lookup(context.Background(), "u1", KindPrices)
	if !hit {
		t.Fatal("expected hit inside ttl window")
	}
	if string(payload) != `{"a":1}` {
		t.Errorf("payload = %s", payload)
	}

	// at or after T+ttl is a miss
	cs.now = func() time.Time { return base.Add(60 * time.Second) }
	if _, hit := cs.Lookup(context.Background(), "u1", KindPrices); hit {
		t.Error("expected miss at exactly ttl")
	}
}

func TestCachedStore_LookupAbsentIsMiss(t *testing.T) {
	cs := NewCachedStore(logger.NewNop(), newMemStore(), DefaultConfig().PolicySet())
	if _, hit := cs.Lookup(context.Background(), "u1", KindNews); hit {
		t.Error("absent entry must be a miss")
	}
}

func TestCachedStore_BackendReadFailureIsMiss(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	cs := NewCachedStore(logger.NewNop(), store, DefaultConfig().PolicySet())

	if _, hit := cs.Lookup(context.Background(), "u1", KindPrices); hit {
		t.Error("backend failure must degrade to a miss, never propagate")
	}
}

func TestCachedStore_BackendWriteFailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	store.putErr = errors.New("disk full")
	cs := NewCachedStore(logger.NewNop(), store, DefaultConfig().PolicySet())

	// must not panic or surface the error
	cs.Save(context.Background(), "u1", KindPrices, json.RawMessage(`{}`))
	if store.puts != 1 {
		t.Errorf("expected one attempted put, got %d", store.puts)
	}
}

func TestCachedStore_InsightFreshSameDayStaleNextDay(t *testing.T) {
	store := newMemStore()
	cs := NewCachedStore(logger.NewNop(), store, DefaultConfig().PolicySet())

	written := time.Date(2025, 6, 1, 23, 59, 59, 0, time.Local)
	cs.now = func() time.Time { return written }
	cs.Save(context.Background(), "u1", KindInsight, json.RawMessage(`{"insight":"hold"}`))

	if _, hit := cs.Lookup(context.Background(), "u1", KindInsight); !hit {
		t.Error("insight written today must be fresh today")
	}

	cs.now = func() time.Time { return time.Date(2025, 6, 2, 0, 0, 1, 0, time.Local) }
	if _, hit := cs.Lookup(context.Background(), "u1", KindInsight); hit {
		t.Error("insight must go stale at local midnight even seconds after writing")
	}
}
