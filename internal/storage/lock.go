package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	cperrors "github.com/manav03panchal/controleplus/internal/errors"
)

const (
	// LockFileName is the name of the lock file in the data directory.
	LockFileName = "controleplus.lock"
)

var (
	// ErrLockAcquireFailed is returned when the lock cannot be acquired.
	ErrLockAcquireFailed = errors.New("failed to acquire database lock")
	// ErrLockAlreadyHeld is returned when another process holds the lock.
	ErrLockAlreadyHeld = fmt.Errorf("database is locked by another process: %w", cperrors.ErrLockHeld)
)

// FileLock is an advisory lock that keeps a second Controle Plus process
// from writing the same database.
type FileLock struct {
	path string
	fl   *flock.Flock
}

// NewFileLock creates a new file lock at the specified directory.
func NewFileLock(dir string) *FileLock {
	path := filepath.Join(dir, LockFileName)
	return &FileLock{
		path: path,
		fl:   flock.New(path),
	}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire attempts to acquire the lock without blocking.
// It returns ErrLockAlreadyHeld if another process holds it.
func (l *FileLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}

	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}
	if !ok {
		if pid := l.readPID(); pid > 0 {
			return fmt.Errorf("%w: PID %d", ErrLockAlreadyHeld, pid)
		}
		return ErrLockAlreadyHeld
	}

	// The PID is informational; a failed write does not release the lock.
	_ = os.WriteFile(l.pidPath(), []byte(strconv.Itoa(os.Getpid())), 0600)
	return nil
}

// Locked reports whether this process holds the lock.
func (l *FileLock) Locked() bool {
	return l.fl.Locked()
}

// Release releases the lock.
func (l *FileLock) Release() error {
	if !l.fl.Locked() {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return err
	}
	if err := os.Remove(l.pidPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *FileLock) pidPath() string {
	return l.path + ".pid"
}

// readPID reads the PID of the holder.
// Returns 0 if the file doesn't exist or doesn't contain a valid PID.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.pidPath())
	if err != nil {
		return 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// LockError provides a user-friendly error message for lock failures.
type LockError struct {
	Err error
	PID int
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("cannot access database: another controleplus instance (PID %d) is running", e.PID)
	}
	return fmt.Sprintf("cannot access database: %v", e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

// NewLockError creates a new LockError with a helpful message.
func NewLockError(err error) *LockError {
	lockErr := &LockError{Err: err}

	if errors.Is(err, ErrLockAlreadyHeld) {
		if _, after, found := strings.Cut(err.Error(), "PID "); found {
			if pid, parseErr := strconv.Atoi(strings.TrimSpace(after)); parseErr == nil {
				lockErr.PID = pid
			}
		}
	}

	return lockErr
}
