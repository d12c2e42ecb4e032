// Package analytics records dashboard request events into ClickHouse.
//
// Recording is fire-and-forget: events are buffered in an unbounded channel
// and flushed in batches, so the request path never blocks on ClickHouse.
package analytics

import "time"

// Event is one dashboard request, as stored in dashboard_requests.
type Event struct {
	UserID        string
	RequestedAt   time.Time
	DurationMS    int64
	PricesCached  bool
	NewsCached    bool
	MemeCached    bool
	InsightCached bool
	Failed        bool
}

// Recorder accepts dashboard request events.
type Recorder interface {
	Record(event Event)
	Close() error
}

// NopRecorder discards all events. Used when analytics is not configured.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(Event) {}

// Close implements Recorder.
func (NopRecorder) Close() error { return nil }
