// Package symbols maps ticker symbols (BTC, ETH, ...) to CoinGecko coin ids.
//
// The directory starts from a static seed table and can periodically re-sync
// the full mapping from a source in the background. Reads are safe to call
// concurrently with sync operations.
package symbols

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/routine"
)

// SyncFunc fetches the full symbol-to-id mapping from a source.
// The context should be respected for cancellation and timeout.
type SyncFunc func(ctx context.Context) (map[string]string, error)

// Seed returns the built-in symbol mapping used before any sync completes,
// and permanently when no sync source is configured.
func Seed() map[string]string {
	return map[string]string{
		"BTC":   "bitcoin",
		"ETH":   "ethereum",
		"SOL":   "solana",
		"ADA":   "cardano",
		"DOGE":  "dogecoin",
		"XRP":   "ripple",
		"DOT":   "polkadot",
		"MATIC": "matic-network",
	}
}

// Directory resolves ticker symbols to coin ids.
type Directory struct {
	logger   logger.Logger
	syncFunc SyncFunc

	syncInterval time.Duration
	syncTimeout  time.Duration

	mu  sync.RWMutex
	ids map[string]string

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewDirectory creates a directory seeded with the static table.
// syncFunc may be nil, in which case the directory never syncs.
func NewDirectory(log logger.Logger, cfg *Config, syncFunc SyncFunc) (*Directory, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Directory{
		logger:       log,
		syncFunc:     syncFunc,
		syncInterval: cfg.SyncInterval,
		syncTimeout:  cfg.SyncTimeout,
		ids:          Seed(),
	}, nil
}

// Lookup returns the coin id for a symbol, case-insensitively.
func (d *Directory) Lookup(symbol string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.ids[strings.ToUpper(symbol)]
	return id, ok
}

// Resolve maps symbols to coin ids, silently dropping unknown symbols.
func (d *Directory) Resolve(symbols []string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if id, ok := d.ids[strings.ToUpper(s)]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Start performs an initial sync and begins the periodic background sync.
// Without a sync source this is a no-op. An initial sync failure is logged,
// not fatal: the seed table keeps the directory usable.
func (d *Directory) Start() error {
	if d.syncFunc == nil {
		return nil
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())

	if err := d.Sync(d.ctx); err != nil {
		d.logger.Warn("initial symbol sync failed, serving seed table", zap.Error(err))
	}

	routine.GoNamedWithContext(d.ctx, d.logger, "symbols-sync", func(ctx context.Context) {
		ticker := time.NewTicker(d.syncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := d.Sync(ctx); err != nil {
					d.logger.Error("periodic symbol sync failed", zap.Error(err))
				}
			case <-ctx.Done():
				d.logger.Info("stopping symbol sync")
				return
			}
		}
	})

	return nil
}

// Stop stops the periodic sync. It can be called multiple times safely.
func (d *Directory) Stop() {
	d.once.Do(func() {
		if d.cancel != nil {
			d.cancel()
		}
	})
}

// Sync fetches the mapping once and replaces the directory contents.
// Symbols are normalized to upper case, and the curated seed entries are
// laid over the result: upstream coin lists carry squatter tokens reusing
// well-known tickers, so a sync must never rebind a seeded symbol. An empty
// result is rejected so a misbehaving source cannot blank the directory.
func (d *Directory) Sync(ctx context.Context) error {
	syncCtx, cancel := context.WithTimeout(ctx, d.syncTimeout)
	defer cancel()

	mapping, err := d.syncFunc(syncCtx)
	if err != nil {
		return ErrSync(err)
	}
	if len(mapping) == 0 {
		return ErrEmptySync
	}

	normalized := make(map[string]string, len(mapping))
	for sym, id := range mapping {
		normalized[strings.ToUpper(sym)] = id
	}
	// seed entries win over whatever the source lists for the same symbol
	for sym, id := range Seed() {
		normalized[sym] = id
	}

	d.mu.Lock()
	d.ids = normalized
	d.mu.Unlock()

	d.logger.Info("symbol directory synced", zap.Int("symbols", len(normalized)))
	return nil
}
