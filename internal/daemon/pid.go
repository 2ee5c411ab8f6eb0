// Package daemon hosts the long-running submission sync process
// ('controleplus sync run') and lets other invocations inspect or stop it.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/adrg/xdg"

	"github.com/manav03panchal/controleplus/internal/config"
)

const (
	// PIDFileName is the PID file name.
	PIDFileName = "sync.pid"
	// StateFileName is the state file name.
	StateFileName = "sync.json"
	// LogFileName receives the output of a detached sync process.
	LogFileName = "sync.log"
)

// DefaultDir returns the runtime directory under the XDG state directory.
func DefaultDir() string {
	return filepath.Join(xdg.StateHome, config.AppName)
}

// PIDFile manages the daemon PID file.
type PIDFile struct {
	path string
}

// NewPIDFile creates a PID file manager for dir.
func NewPIDFile(dir string) *PIDFile {
	return &PIDFile{
		path: filepath.Join(dir, PIDFileName),
	}
}

// Write writes the current process PID to the file.
func (p *PIDFile) Write() error {
	return p.WritePID(os.Getpid())
}

// WritePID writes a specific PID to the file.
func (p *PIDFile) WritePID(pid int) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}

	data := []byte(strconv.Itoa(pid))
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// Read reads the PID from the file.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}

	return pid, nil
}

// Remove removes the PID file.
func (p *PIDFile) Remove() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning checks if the recorded process is alive.
func (p *PIDFile) IsRunning() bool {
	return p.RunningPID() > 0
}

// RunningPID returns the PID if the process is running, or 0 if not.
// A stale file left by a crashed process reads as not running.
func (p *PIDFile) RunningPID() int {
	pid, err := p.Read()
	if err != nil {
		return 0
	}
	if !IsProcessRunning(pid) {
		return 0
	}
	return pid
}

// Path returns the PID file path.
func (p *PIDFile) Path() string {
	return p.path
}

// IsProcessRunning checks if a process with the given PID is running.
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix, FindProcess always succeeds, so we need to send signal 0 to check
	err = process.Signal(syscall.Signal(0))
	return err == nil
}

// Errors
var (
	ErrNotRunning     = fmt.Errorf("sync process is not running")
	ErrAlreadyRunning = fmt.Errorf("sync process is already running")
)
