package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/smallnest/chanx"
	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

const insertQuery = `INSERT INTO dashboard_requests
(user_id, requested_at, duration_ms, prices_cached, news_cached, meme_cached, insight_cached, failed)`

// ClickHouseRecorder buffers events and writes them to ClickHouse in batches.
type ClickHouseRecorder struct {
	config *Config
	logger logger.Logger

	conn driver.Conn

	eventChan   *chanx.UnboundedChan[Event]
	flushTicker *time.Ticker

	done   chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewClickHouseRecorder connects to ClickHouse and starts the flush loop.
func NewClickHouseRecorder(log logger.Logger, cfg *Config) (*ClickHouseRecorder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: cfg.Addr,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, ErrConnection(err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, ErrConnection(err)
	}

	r := &ClickHouseRecorder{
		config:      cfg,
		logger:      log,
		conn:        conn,
		eventChan:   chanx.NewUnboundedChan[Event](context.Background(), cfg.FlushSize),
		flushTicker: time.NewTicker(cfg.FlushInterval),
		done:        make(chan struct{}),
	}

	r.wg.Add(1)
	go r.processLoop()

	log.Info("analytics recorder started",
		zap.Strings("addr", cfg.Addr),
		zap.Duration("flush_interval", cfg.FlushInterval),
		zap.Int("flush_size", cfg.FlushSize),
	)
	return r, nil
}

// Record buffers one event. It never blocks and drops nothing; the channel
// is unbounded. Events recorded after Close are discarded.
func (r *ClickHouseRecorder) Record(event Event) {
	if r.closed.Load() {
		return
	}
	r.eventChan.In <- event
}

// Close flushes remaining events and shuts the recorder down.
func (r *ClickHouseRecorder) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.flushTicker.Stop()
	close(r.done)
	close(r.eventChan.In)
	r.wg.Wait()

	return r.conn.Close()
}

func (r *ClickHouseRecorder) processLoop() {
	defer r.wg.Done()

	var buffer []Event

	for {
		select {
		case event, ok := <-r.eventChan.Out:
			if !ok {
				r.logger.Warn("analytics event channel closed unexpectedly")
				return
			}
			buffer = append(buffer, event)
			if len(buffer) >= r.config.FlushSize {
				r.flush(buffer)
				buffer = nil
			}

		case <-r.flushTicker.C:
			if len(buffer) > 0 {
				r.flush(buffer)
				buffer = nil
			}

		case <-r.done:
			buffer = r.drain(buffer)
			if len(buffer) > 0 {
				r.flush(buffer)
			}
			return
		}
	}
}

// drain collects whatever is still queued at shutdown.
func (r *ClickHouseRecorder) drain(buffer []Event) []Event {
	for {
		select {
		case event, ok := <-r.eventChan.Out:
			if !ok {
				return buffer
			}
			buffer = append(buffer, event)
		default:
			return buffer
		}
	}
}

func (r *ClickHouseRecorder) flush(events []Event) {
	batch, err := r.conn.PrepareBatch(context.Background(), insertQuery)
	if err != nil {
		r.logger.Error("failed to prepare analytics batch", zap.Error(err))
		return
	}

	for _, e := range events {
		err := batch.Append(
			e.UserID,
			e.RequestedAt,
			e.DurationMS,
			e.PricesCached,
			e.NewsCached,
			e.MemeCached,
			e.InsightCached,
			e.Failed,
		)
		if err != nil {
			r.logger.Error("failed to append analytics event", zap.Error(err))
			return
		}
	}

	if err := batch.Send(); err != nil {
		r.logger.Error("failed to flush analytics events",
			zap.Int("events", len(events)),
			zap.Error(err),
		)
		return
	}

	r.logger.Debug("analytics events flushed", zap.Int("events", len(events)))
}
