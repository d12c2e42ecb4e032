package routine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dailyyoga/coinboard/logger"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestGoNamed(t *testing.T) {
	var executed atomic.Bool
	GoNamed(logger.NewNop(), "test", func() {
		executed.Store(true)
	})
	waitFor(t, executed.Load)
}

func TestGoNamed_PanicRecovered(t *testing.T) {
	var after atomic.Bool
	GoNamed(logger.NewNop(), "panicky", func() {
		panic("test panic")
	})
	// A panic in one routine must not take the process down.
	GoNamed(logger.NewNop(), "survivor", func() {
		after.Store(true)
	})
	waitFor(t, after.Load)
}

func TestGoNamedWithContext(t *testing.T) {
	var got atomic.Bool
	ctx := context.WithValue(context.Background(), struct{}{}, "v")
	GoNamedWithContext(ctx, logger.NewNop(), "ctx", func(ctx context.Context) {
		if ctx.Value(struct{}{}) == "v" {
			got.Store(true)
		}
	})
	waitFor(t, got.Load)
}
