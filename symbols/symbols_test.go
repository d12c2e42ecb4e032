package symbols

import (
	"context"
	"errors"
	"testing"

	"github.com/dailyyoga/coinboard/logger"
)

func TestDirectory_ResolveSeed(t *testing.T) {
	d, err := NewDirectory(logger.NewNop(), nil, nil)
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"known symbols", []string{"BTC", "ETH"}, []string{"bitcoin", "ethereum"}},
		{"case insensitive", []string{"btc", "Eth"}, []string{"bitcoin", "ethereum"}},
		{"unknown dropped", []string{"BTC", "SHIB"}, []string{"bitcoin"}},
		{"all unknown", []string{"SHIB", "PEPE"}, []string{}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Resolve(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Resolve(%v)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDirectory_SyncReplacesMapping(t *testing.T) {
	mappings := []map[string]string{
		{"ltc": "litecoin"},
		{"shib": "shiba-inu"},
	}
	var call int
	d, err := NewDirectory(logger.NewNop(), nil, func(ctx context.Context) (map[string]string, error) {
		m := mappings[call]
		call++
		return m, nil
	})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}

	if err := d.Sync(context.Background()); err != nil {
		t.Fatalf("first Sync failed: %v", err)
	}
	if _, ok := d.Lookup("LTC"); !ok {
		t.Error("expected LTC after first sync")
	}

	if err := d.Sync(context.Background()); err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if _, ok := d.Lookup("SHIB"); !ok {
		t.Error("expected SHIB after second sync")
	}
	if _, ok := d.Lookup("LTC"); ok {
		t.Error("non-seed symbols are replaced on sync, LTC should be gone")
	}
	if id, _ := d.Lookup("BTC"); id != "bitcoin" {
		t.Errorf("BTC = %q, seed entries survive every sync", id)
	}
}

func TestDirectory_SyncKeepsSeedOverDuplicates(t *testing.T) {
	// coin lists carry squatter tokens reusing well-known tickers; the
	// curated seed must win no matter which duplicate the source kept
	d, err := NewDirectory(logger.NewNop(), nil, func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"btc": "batcoin-fake", "ltc": "litecoin"}, nil
	})
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}

	if err := d.Sync(context.Background()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if id, ok := d.Lookup("BTC"); !ok || id != "bitcoin" {
		t.Errorf("BTC = %q, want seed mapping to bitcoin", id)
	}
	if id, ok := d.Lookup("LTC"); !ok || id != "litecoin" {
		t.Errorf("LTC = %q, want litecoin from sync", id)
	}
}

func TestDirectory_SyncErrorKeepsMapping(t *testing.T) {
	d, _ := NewDirectory(logger.NewNop(), nil, func(ctx context.Context) (map[string]string, error) {
		return nil, errors.New("upstream down")
	})

	if err := d.Sync(context.Background()); err == nil {
		t.Fatal("expected sync error")
	}
	if _, ok := d.Lookup("BTC"); !ok {
		t.Error("failed sync must not clear the seed table")
	}
}

func TestDirectory_EmptySyncRejected(t *testing.T) {
	d, _ := NewDirectory(logger.NewNop(), nil, func(ctx context.Context) (map[string]string, error) {
		return map[string]string{}, nil
	})

	if err := d.Sync(context.Background()); !errors.Is(err, ErrEmptySync) {
		t.Fatalf("expected ErrEmptySync, got %v", err)
	}
	if _, ok := d.Lookup("BTC"); !ok {
		t.Error("empty sync must not clear the seed table")
	}
}

func TestDirectory_StartWithoutSyncFuncIsNoop(t *testing.T) {
	d, _ := NewDirectory(logger.NewNop(), nil, nil)
	if err := d.Start(); err != nil {
		t.Fatalf("Start without sync func should be a no-op, got %v", err)
	}
	d.Stop()
	d.Stop() // safe to call twice
}
