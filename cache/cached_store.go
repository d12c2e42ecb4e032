package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// CachedStore combines a Store with a PolicySet. It is what the dashboard
// aggregator talks to: Lookup answers "is there a fresh payload", Save
// records a new one. Backend failures never escape; a failed read is a miss
// and a failed write is dropped, both logged.
type CachedStore struct {
	store    Store
	policies PolicySet
	log      logger.Logger
	now      func() time.Time
}

// NewCachedStore creates a CachedStore over the given backend and policies.
func NewCachedStore(log logger.Logger, store Store, policies PolicySet) *CachedStore {
	return &CachedStore{
		store:    store,
		policies: policies,
		log:      log,
		now:      time.Now,
	}
}

// Policy returns the freshness policy bound to the kind.
func (c *CachedStore) Policy(kind Kind) Policy {
	return c.policies[kind]
}

// Lookup returns the cached payload for (owner, kind) if one exists and is
// fresh under the kind's policy. Absent, stale, or unreadable entries all
// report a miss.
func (c *CachedStore) Lookup(ctx context.Context, ownerID string, kind Kind) (json.RawMessage, bool) {
	entry, err := c.store.Get(ctx, ownerID, kind)
	if err != nil {
		c.log.Warn("cache read failed, treating as miss",
			zap.String("owner", ownerID),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}
	if !c.policies.Fresh(kind, entry.FetchedAt, c.now()) {
		return nil, false
	}
	return entry.Payload, true
}

// Save stores the payload for (owner, kind) stamped with the current time.
// Caching is best-effort; a write failure is logged and swallowed so it can
// never fail the request that produced the payload.
func (c *CachedStore) Save(ctx context.Context, ownerID string, kind Kind, payload json.RawMessage) {
	if err := c.store.Put(ctx, ownerID, kind, payload, c.now()); err != nil {
		c.log.Warn("cache write failed, continuing without cache",
			zap.String("owner", ownerID),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	}
}
