// Package cache implements the per-user dashboard data cache.
//
// Every piece of dashboard content (prices, news, meme, insight) is cached
// independently per user, keyed on (owner, kind). Each kind carries its own
// freshness policy: a rolling TTL, a calendar-day rule that expires at local
// midnight, or always-refetch. The cache is strictly best-effort: a failing
// backend degrades to a miss on read and is ignored on write, so the
// dashboard can always fall back to the upstream producers.
//
// Available store backends:
// - GormStore: durable MySQL table, upsert on (owner_id, kind)
// - RedisStore: JSON envelope per (owner, kind) key
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the durable backend holding one entry per (owner, kind).
type Store interface {
	// Get returns the entry for (owner, kind), or (nil, nil) when absent.
	Get(ctx context.Context, ownerID string, kind Kind) (*Entry, error)

	// Put upserts the entry for (owner, kind), replacing payload and
	// fetchedAt atomically. Duplicate keys are overwritten, never duplicated.
	Put(ctx context.Context, ownerID string, kind Kind, payload json.RawMessage, fetchedAt time.Time) error
}

// Entry is one cached payload for one user and one content kind.
type Entry struct {
	OwnerID   string
	Kind      Kind
	Payload   json.RawMessage
	FetchedAt time.Time
}
