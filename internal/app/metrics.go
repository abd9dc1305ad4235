package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts input and rendering work for one session.
type Metrics struct {
	// Input
	keyCount     atomic.Uint64
	clickCount   atomic.Uint64
	unboundCount atomic.Uint64

	// Event processing
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records a key press.
func (m *Metrics) RecordKey() {
	m.keyCount.Add(1)
}

// RecordClick records a mouse click on a keypad button.
func (m *Metrics) RecordClick() {
	m.clickCount.Add(1)
}

// RecordUnbound records a key press with no binding.
func (m *Metrics) RecordUnbound() {
	m.unboundCount.Add(1)
}

// RecordEvent records engine event processing time.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	eventCount := m.eventCount.Load()
	renderCount := m.renderCount.Load()

	var avgEventNs, avgRenderNs int64
	if eventCount > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(eventCount)
	}
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		KeyCount:     m.keyCount.Load(),
		ClickCount:   m.clickCount.Load(),
		UnboundCount: m.unboundCount.Load(),
		EventCount:   eventCount,
		AvgEventNs:   avgEventNs,
		RenderCount:  renderCount,
		AvgRenderNs:  avgRenderNs,
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	KeyCount     uint64
	ClickCount   uint64
	UnboundCount uint64
	EventCount   uint64
	AvgEventNs   int64
	RenderCount  uint64
	AvgRenderNs  int64
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
