package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/poller"
)

type nopFetcher struct{}

func (nopFetcher) Read(context.Context, string) ([]model.RadioSubmission, error) { return nil, nil }

type nopSink struct{}

func (nopSink) MergeSubmissions([]model.RadioSubmission) (int, error) { return 0, nil }

type fixedSource struct {
	url     string
	pending int
}

func (s fixedSource) SheetsURL() string       { return s.url }
func (s fixedSource) PendingSubmissions() int { return s.pending }

func newTestPoller(t *testing.T) *poller.Poller {
	t.Helper()
	p, err := poller.New(poller.Options{Fetcher: nopFetcher{}, Sink: nopSink{}})
	require.NoError(t, err)
	return p
}

// =============================================================================
// PIDFile Tests
// =============================================================================

func TestPIDFileRoundTrip(t *testing.T) {
	pf := NewPIDFile(t.TempDir())

	_, err := pf.Read()
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.False(t, pf.IsRunning())

	require.NoError(t, pf.Write())
	pid, err := pf.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
	assert.True(t, pf.IsRunning())
	assert.Equal(t, os.Getpid(), pf.RunningPID())

	require.NoError(t, pf.Remove())
	require.NoError(t, pf.Remove(), "removing twice is not an error")
	assert.False(t, pf.IsRunning())
}

func TestPIDFileStaleOrGarbage(t *testing.T) {
	dir := t.TempDir()
	pf := NewPIDFile(dir)

	require.NoError(t, pf.WritePID(0))
	assert.Equal(t, 0, pf.RunningPID())

	require.NoError(t, os.WriteFile(filepath.Join(dir, PIDFileName), []byte("not-a-pid"), 0o600))
	_, err := pf.Read()
	assert.Error(t, err)
	assert.False(t, pf.IsRunning())
}

func TestIsProcessRunning(t *testing.T) {
	assert.True(t, IsProcessRunning(os.Getpid()))
	assert.False(t, IsProcessRunning(0))
	assert.False(t, IsProcessRunning(-1))
}

// =============================================================================
// HealthChecker Tests
// =============================================================================

func TestHealthCheckerCheck(t *testing.T) {
	checker := NewHealthChecker("1.0.0", nil)

	status := checker.Check()
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.GreaterOrEqual(t, status.Goroutines, 1)
	assert.GreaterOrEqual(t, status.MemoryMB, 0.0)
	assert.Empty(t, status.Checks)
}

func TestHealthCheckerAddRemoveCheck(t *testing.T) {
	checker := NewHealthChecker("1.0.0", nil)

	checker.AddCheck("store", func() error { return nil })
	checker.AddCheck("poller", func() error { return errors.New("last sync failed") })

	status := checker.Check()
	assert.Equal(t, "unhealthy", status.Status)
	require.Len(t, status.Checks, 2)
	assert.Equal(t, "poller", status.Checks[0].Name, "checks are reported in name order")
	assert.False(t, status.Checks[0].Healthy)
	assert.Equal(t, "last sync failed", status.Checks[0].Error)
	assert.True(t, status.Checks[1].Healthy)
	assert.False(t, checker.IsHealthy())

	checker.RemoveCheck("poller")
	assert.True(t, checker.IsHealthy())
}

func TestHealthCheckerUptime(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	clock := now
	checker := NewHealthChecker("1.0.0", func() time.Time { return clock })

	clock = now.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, checker.Uptime())
	assert.Equal(t, int64(90), checker.Check().UptimeSeconds)
}

func TestHealthCheckerJSON(t *testing.T) {
	checker := NewHealthChecker("1.0.0", nil)

	data, err := checker.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "healthy"`)
	assert.Contains(t, string(data), "1.0.0")
}

func TestPollerCheck(t *testing.T) {
	m := poller.NewMetrics()
	check := PollerCheck(m)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, check(), "no attempts yet")

	m.RecordFailure(now, errors.New("network unavailable"))
	err := check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network unavailable")

	m.RecordSuccess(now.Add(time.Minute), 0, 20*time.Millisecond)
	assert.NoError(t, check(), "a later success clears the failure")
}

// =============================================================================
// Daemon Tests
// =============================================================================

func TestDaemonNotRunning(t *testing.T) {
	d := NewDaemon(Options{Dir: t.TempDir()})

	assert.False(t, d.IsRunning())
	status := d.GetStatus()
	assert.False(t, status.Running)
	assert.Nil(t, status.State)
	assert.ErrorIs(t, d.Stop(), ErrNotRunning)
}

func TestDaemonRunPublishesState(t *testing.T) {
	dir := t.TempDir()
	d := NewDaemon(Options{Dir: dir, Version: "test", StateInterval: 20 * time.Millisecond})
	p := newTestPoller(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, p, fixedSource{url: "https://script.google.com/macros/s/SECRET/exec", pending: 3})
	}()

	require.Eventually(t, func() bool {
		return d.GetStatus().State != nil
	}, 2*time.Second, 10*time.Millisecond)

	status := d.GetStatus()
	assert.True(t, status.Running)
	assert.Equal(t, os.Getpid(), status.PID)
	assert.Equal(t, 3, status.State.Submissions)
	assert.NotContains(t, status.State.URL, "SECRET")
	require.NotNil(t, status.State.Health)
	assert.Equal(t, "test", status.State.Health.Version)

	second := d.Run(context.Background(), newTestPoller(t), fixedSource{})
	assert.ErrorIs(t, second, ErrAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.False(t, d.IsRunning())
	_, err := os.Stat(filepath.Join(dir, StateFileName))
	assert.True(t, os.IsNotExist(err), "state file removed on exit")
}

func TestDaemonLogPath(t *testing.T) {
	dir := t.TempDir()
	d := NewDaemon(Options{Dir: dir})
	assert.Equal(t, filepath.Join(dir, LogFileName), d.LogPath())
}

func TestStartBackgroundAlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewPIDFile(dir).Write())

	d := NewDaemon(Options{Dir: dir})
	pid, err := d.StartBackground([]string{"sync", "run"})
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Equal(t, os.Getpid(), pid)
}

func TestReadLastLogError(t *testing.T) {
	dir := t.TempDir()
	d := NewDaemon(Options{Dir: dir})
	assert.Empty(t, d.readLastLogError())

	lines := "started\n" + "Error: database locked by another process\n" + strconv.Itoa(42) + "\n"
	require.NoError(t, os.WriteFile(d.LogPath(), []byte(lines), 0o600))
	assert.Contains(t, d.readLastLogError(), "database locked")
}
