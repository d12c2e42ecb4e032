package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// Sweeper deletes cache entries fetched before a cutoff.
type Sweeper interface {
	Sweep(ctx context.Context, before time.Time) (int64, error)
}

// SweepTask removes cache entries older than MaxAge. The request path only
// ever supersedes entries in place, so abandoned owners accumulate rows
// until this runs.
type SweepTask struct {
	logger  logger.Logger
	sweeper Sweeper
	maxAge  time.Duration
	timeout time.Duration
}

// NewSweepTask creates the sweep task.
func NewSweepTask(log logger.Logger, sweeper Sweeper, maxAge time.Duration) (*SweepTask, error) {
	if sweeper == nil {
		return nil, ErrNilSweeper
	}
	if maxAge <= 0 {
		return nil, ErrInvalidMaxAge(maxAge)
	}
	return &SweepTask{
		logger:  log,
		sweeper: sweeper,
		maxAge:  maxAge,
		timeout: time.Minute,
	}, nil
}

// Name implements Task.
func (t *SweepTask) Name() string { return "cache-sweep" }

// Run implements Task.
func (t *SweepTask) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	removed, err := t.sweeper.Sweep(ctx, time.Now().Add(-t.maxAge))
	if err != nil {
		return err
	}
	t.logger.Info("cache sweep completed", zap.Int64("removed", removed))
	return nil
}
