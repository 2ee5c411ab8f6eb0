package daemon

import (
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/manav03panchal/controleplus/internal/poller"
)

// HealthStatus represents the current health state of the sync process.
type HealthStatus struct {
	Status        string        `json:"status"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	MemoryMB      float64       `json:"memory_mb"`
	Goroutines    int           `json:"goroutines"`
	LastCheck     time.Time     `json:"last_check"`
	Version       string        `json:"version,omitempty"`
	Checks        []CheckResult `json:"checks,omitempty"`
}

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// HealthChecker provides health status for the sync process.
type HealthChecker struct {
	mu           sync.RWMutex
	startTime    time.Time
	lastCheck    time.Time
	version      string
	now          func() time.Time
	customChecks map[string]func() error
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(version string, now func() time.Time) *HealthChecker {
	if now == nil {
		now = time.Now
	}
	return &HealthChecker{
		startTime:    now(),
		version:      version,
		now:          now,
		customChecks: make(map[string]func() error),
	}
}

// Check runs every registered check and returns the status.
func (h *HealthChecker) Check() *HealthStatus {
	now := h.now()
	h.mu.Lock()
	h.lastCheck = now
	h.mu.Unlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	checks := h.run()
	status := "healthy"
	for _, c := range checks {
		if !c.Healthy {
			status = "unhealthy"
			break
		}
	}

	return &HealthStatus{
		Status:        status,
		UptimeSeconds: int64(now.Sub(h.startTime).Seconds()),
		MemoryMB:      float64(memStats.Alloc) / 1024 / 1024,
		Goroutines:    runtime.NumGoroutine(),
		LastCheck:     now,
		Version:       h.version,
		Checks:        checks,
	}
}

// run executes the custom checks in name order.
func (h *HealthChecker) run() []CheckResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.customChecks))
	for name := range h.customChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		result := CheckResult{Name: name, Healthy: true}
		if err := h.customChecks[name](); err != nil {
			result.Healthy = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// AddCheck adds a custom health check function.
func (h *HealthChecker) AddCheck(name string, check func() error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.customChecks[name] = check
}

// RemoveCheck removes a custom health check.
func (h *HealthChecker) RemoveCheck(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.customChecks, name)
}

// JSON returns the health status as JSON.
func (h *HealthChecker) JSON() ([]byte, error) {
	return json.MarshalIndent(h.Check(), "", "  ")
}

// Uptime returns how long the process has been running.
func (h *HealthChecker) Uptime() time.Duration {
	return h.now().Sub(h.startTime)
}

// IsHealthy returns true if every check passes.
func (h *HealthChecker) IsHealthy() bool {
	return h.Check().Status == "healthy"
}

// PollerCheck fails when the most recent sync attempt failed.
func PollerCheck(m *poller.Metrics) func() error {
	return func() error {
		snap := m.Snapshot()
		if snap.LastErrorAt == nil {
			return nil
		}
		if snap.LastSuccessAt == nil || snap.LastErrorAt.After(*snap.LastSuccessAt) {
			return fmt.Errorf("last sync failed: %s", snap.LastError)
		}
		return nil
	}
}
