package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/poller"
	"github.com/manav03panchal/controleplus/internal/storage"
)

// Defaults for Options.
const (
	DefaultStateInterval = 10 * time.Second
	DefaultStopTimeout   = 5 * time.Second
	DefaultStartupWait   = 500 * time.Millisecond
)

// Options configures a Daemon.
type Options struct {
	// Dir holds the PID, state and log files. Defaults to DefaultDir().
	Dir string
	// Version is reported by the health check.
	Version string
	// StateInterval is how often a running process refreshes its state file.
	StateInterval time.Duration
	// StopTimeout bounds how long Stop waits before killing the process.
	StopTimeout time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Daemon manages the sync process.
type Daemon struct {
	dir           string
	pidFile       *PIDFile
	version       string
	stateInterval time.Duration
	stopTimeout   time.Duration
	now           func() time.Time
}

// State is written by a running sync process for other invocations to read,
// since the running process holds the database lock.
type State struct {
	PID         int                    `json:"pid"`
	StartedAt   time.Time              `json:"started_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	URL         string                 `json:"url,omitempty"`
	Submissions int                    `json:"pending_submissions"`
	NextRun     *time.Time             `json:"next_run,omitempty"`
	Metrics     poller.MetricsSnapshot `json:"metrics"`
	Health      *HealthStatus          `json:"health,omitempty"`
}

// Status represents the daemon status.
type Status struct {
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	State   *State `json:"state,omitempty"`
}

// Source supplies the values a running process publishes in its state file.
// *store.Store implements it.
type Source interface {
	SheetsURL() string
	PendingSubmissions() int
}

// NewDaemon creates a new daemon manager.
func NewDaemon(opts Options) *Daemon {
	d := &Daemon{
		dir:           opts.Dir,
		version:       opts.Version,
		stateInterval: opts.StateInterval,
		stopTimeout:   opts.StopTimeout,
		now:           opts.Now,
	}
	if d.dir == "" {
		d.dir = DefaultDir()
	}
	if d.stateInterval <= 0 {
		d.stateInterval = DefaultStateInterval
	}
	if d.stopTimeout <= 0 {
		d.stopTimeout = DefaultStopTimeout
	}
	if d.now == nil {
		d.now = time.Now
	}
	d.pidFile = NewPIDFile(d.dir)
	return d
}

// GetStatus returns the current daemon status.
func (d *Daemon) GetStatus() *Status {
	status := &Status{}

	pid := d.pidFile.RunningPID()
	if pid > 0 {
		status.Running = true
		status.PID = pid
		if state, err := d.readState(); err == nil {
			status.State = state
		}
	}

	return status
}

// IsRunning returns true if a sync process is running.
func (d *Daemon) IsRunning() bool {
	return d.pidFile.IsRunning()
}

// Run hosts p in the foreground until ctx is cancelled or the process
// receives SIGINT, SIGTERM or SIGHUP. The state file is refreshed every
// StateInterval and after each merge that added submissions.
func (d *Daemon) Run(ctx context.Context, p *poller.Poller, src Source) error {
	if d.IsRunning() {
		return ErrAlreadyRunning
	}

	if err := d.pidFile.Write(); err != nil {
		return err
	}
	defer d.cleanup()

	health := NewHealthChecker(d.version, d.now)
	health.AddCheck("poller", PollerCheck(p.Metrics()))

	startedAt := d.now()
	publish := func() {
		state := &State{
			PID:         os.Getpid(),
			StartedAt:   startedAt,
			UpdatedAt:   d.now(),
			URL:         logging.MaskURL(src.SheetsURL()),
			Submissions: src.PendingSubmissions(),
			Metrics:     p.Metrics().Snapshot(),
			Health:      health.Check(),
		}
		if next := p.NextRun(); !next.IsZero() {
			state.NextRun = &next
		}
		if err := d.writeState(state); err != nil {
			logging.Warn("failed to write sync state", logging.KeyError, err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigHandler := NewSignalHandler()
	sigHandler.Setup()
	defer sigHandler.Cleanup()
	go func() {
		if sig := sigHandler.Wait(runCtx); sig != nil {
			logging.Info("received signal", "signal", sig.String())
		}
		cancel()
	}()

	events := p.Subscribe()
	if err := p.Start(runCtx); err != nil {
		return err
	}
	defer p.Stop()

	logging.Info("sync process started", "pid", os.Getpid())
	publish()

	ticker := time.NewTicker(d.stateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			logging.Info("sync process stopping")
			return nil
		case <-ticker.C:
			publish()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logging.Info("new submissions received", logging.KeyCount, ev.Added)
			publish()
		}
	}
}

func (d *Daemon) cleanup() {
	if err := d.pidFile.Remove(); err != nil {
		logging.Warn("failed to remove PID file", logging.KeyError, err)
	}
	d.removeState()
}

// StartBackground re-executes the current binary with args, detached from
// the terminal, with its output appended to the log file. It returns the
// child PID once the child has written its PID file.
func (d *Daemon) StartBackground(args []string) (int, error) {
	if pid := d.pidFile.RunningPID(); pid > 0 {
		return pid, ErrAlreadyRunning
	}

	executable, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}

	cmd := exec.Command(executable, args...)
	cmd.Stdin = nil

	logPath := d.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err == nil {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			defer logFile.Close()
			cmd.Stdout = logFile
			cmd.Stderr = logFile
		}
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start sync process: %w", err)
	}
	_ = cmd.Process.Release()

	deadline := time.Now().Add(DefaultStartupWait * 4)
	for time.Now().Before(deadline) {
		time.Sleep(DefaultStartupWait / 5)
		if d.pidFile.IsRunning() {
			return cmd.Process.Pid, nil
		}
	}

	if errMsg := d.readLastLogError(); errMsg != "" {
		return 0, fmt.Errorf("sync process failed to start: %s", errMsg)
	}
	return 0, fmt.Errorf("sync process failed to start (check logs: %s)", logPath)
}

// readLastLogError scans the tail of the log file for an error line.
func (d *Daemon) readLastLogError() string {
	data, err := os.ReadFile(d.LogPath())
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := len(lines) - 10
	if start < 0 {
		start = 0
	}

	for i := len(lines) - 1; i >= start; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(strings.ToLower(line), "error") ||
			strings.Contains(line, "failed to") {
			return line
		}
	}
	return ""
}

// Stop asks the running sync process to exit and waits for it, killing it
// after StopTimeout.
func (d *Daemon) Stop() error {
	pid := d.pidFile.RunningPID()
	if pid == 0 {
		return ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(os.Interrupt); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to stop sync process: %w", err)
		}
	}

	deadline := time.Now().Add(d.stopTimeout)
	for IsProcessRunning(pid) {
		if time.Now().After(deadline) {
			_ = process.Kill()
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	// The process removes these on a clean exit.
	_ = d.pidFile.Remove()
	d.removeState()

	return nil
}

// LogPath returns the path to the log file of a detached process.
func (d *Daemon) LogPath() string {
	return filepath.Join(d.dir, LogFileName)
}

func (d *Daemon) statePath() string {
	return filepath.Join(d.dir, StateFileName)
}

func (d *Daemon) writeState(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return storage.SafeWrite(d.statePath(), data, 0o600)
}

func (d *Daemon) readState() (*State, error) {
	data, err := os.ReadFile(d.statePath())
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func (d *Daemon) removeState() {
	if err := os.Remove(d.statePath()); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove sync state file", logging.KeyError, err, "path", d.statePath())
	}
}
