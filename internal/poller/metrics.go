package poller

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks sync cycle counters.
type Metrics struct {
	// Counters
	attempts atomic.Int64
	failures atomic.Int64
	merged   atomic.Int64

	// Gauges with mutex for complex types
	mu            sync.RWMutex
	latencyMs     int64
	lastAttemptAt time.Time
	lastSuccessAt time.Time
	lastError     string
	lastErrorAt   time.Time

	skipsByReason map[SkipReason]int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		skipsByReason: make(map[SkipReason]int64),
	}
}

// MetricsSnapshot represents a point-in-time view of metrics.
type MetricsSnapshot struct {
	AttemptsTotal int64                `json:"attempts_total"`
	FailuresTotal int64                `json:"failures_total"`
	MergedTotal   int64                `json:"merged_total"`
	SkipsTotal    int64                `json:"skips_total"`
	LatencyMs     int64                `json:"latency_ms"`
	LastAttemptAt *time.Time           `json:"last_attempt_at,omitempty"`
	LastSuccessAt *time.Time           `json:"last_success_at,omitempty"`
	LastError     string               `json:"last_error,omitempty"`
	LastErrorAt   *time.Time           `json:"last_error_at,omitempty"`
	SkipsByReason map[SkipReason]int64 `json:"skips_by_reason,omitempty"`
}

// Snapshot returns a copy of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		AttemptsTotal: m.attempts.Load(),
		FailuresTotal: m.failures.Load(),
		MergedTotal:   m.merged.Load(),
		LatencyMs:     m.latencyMs,
		LastError:     m.lastError,
		SkipsByReason: make(map[SkipReason]int64, len(m.skipsByReason)),
	}
	if !m.lastAttemptAt.IsZero() {
		t := m.lastAttemptAt
		snap.LastAttemptAt = &t
	}
	if !m.lastSuccessAt.IsZero() {
		t := m.lastSuccessAt
		snap.LastSuccessAt = &t
	}
	if !m.lastErrorAt.IsZero() {
		t := m.lastErrorAt
		snap.LastErrorAt = &t
	}
	for k, v := range m.skipsByReason {
		snap.SkipsByReason[k] = v
		snap.SkipsTotal += v
	}
	return snap
}

// JSON returns metrics as JSON.
func (m *Metrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m.Snapshot(), "", "  ")
}

// RecordAttempt records a cycle that contacted the endpoint.
func (m *Metrics) RecordAttempt(at time.Time) {
	m.attempts.Add(1)

	m.mu.Lock()
	m.lastAttemptAt = at
	m.mu.Unlock()
}

// RecordSuccess records a completed fetch and the number of new submissions.
func (m *Metrics) RecordSuccess(at time.Time, added int, latency time.Duration) {
	m.merged.Add(int64(added))

	m.mu.Lock()
	m.latencyMs = latency.Milliseconds()
	m.lastSuccessAt = at
	m.mu.Unlock()
}

// RecordFailure records a failed fetch.
func (m *Metrics) RecordFailure(at time.Time, err error) {
	m.failures.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = err.Error()
	m.lastErrorAt = at
}

// RecordSkip records a skipped cycle.
func (m *Metrics) RecordSkip(reason SkipReason) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipsByReason[reason]++
}

// Attempts returns the number of cycles that contacted the endpoint.
func (m *Metrics) Attempts() int64 {
	return m.attempts.Load()
}

// Failures returns the number of failed fetches.
func (m *Metrics) Failures() int64 {
	return m.failures.Load()
}

// Merged returns the total number of submissions added.
func (m *Metrics) Merged() int64 {
	return m.merged.Load()
}

// Reset resets all metrics to zero.
func (m *Metrics) Reset() {
	m.attempts.Store(0)
	m.failures.Store(0)
	m.merged.Store(0)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.latencyMs = 0
	m.lastAttemptAt = time.Time{}
	m.lastSuccessAt = time.Time{}
	m.lastError = ""
	m.lastErrorAt = time.Time{}
	m.skipsByReason = make(map[SkipReason]int64)
}
