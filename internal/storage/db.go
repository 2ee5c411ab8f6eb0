// Package storage provides the database layer for Controle Plus.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/logging"
)

const (
	// AppName is the application name used for data directories.
	AppName = "controleplus"

	// MemoryPath selects an in-memory database when passed as Options.Path.
	MemoryPath = ":memory:"
)

// DB wraps a Badger database connection.
type DB struct {
	db   *badger.DB
	path string
	lock *FileLock
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	var lock *FileLock
	path := opts.Path

	if opts.InMemory || path == "" || path == MemoryPath {
		// In-memory mode for testing
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
		path = ""
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(path, 0700); err != nil {
			return nil, errors.NewSystemErrorWithOp("create data directory", path, err)
		}
		lock = NewFileLock(path)
		if err := lock.Acquire(); err != nil {
			return nil, NewLockError(err)
		}
		badgerOpts = badger.DefaultOptions(path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		if lock != nil {
			_ = lock.Release()
		}
		if IsDatabaseCorrupted(err) {
			return nil, errors.NewSystemError("database is corrupted", errors.Join(errors.ErrDatabaseCorrupted, err))
		}
		return nil, errors.NewSystemError("failed to open database", err)
	}

	return &DB{db: db, path: path, lock: lock}, nil
}

// OpenWithIntegrityCheck opens the database and verifies that every stored
// value is readable JSON. Problems are logged; the database stays open.
func OpenWithIntegrityCheck(opts Options) (*DB, error) {
	db, err := Open(opts)
	if err != nil {
		return nil, err
	}
	if err := db.CheckIntegrity(); err != nil {
		logging.Warn("database integrity check failed", logging.KeyError, err)
	}
	return db, nil
}

// CheckIntegrity runs CheckDatabaseIntegrity and converts an unhealthy
// result into an error.
func (d *DB) CheckIntegrity() error {
	status := CheckDatabaseIntegrity(d)
	if status.Healthy {
		return nil
	}
	return errors.NewSystemError(
		fmt.Sprintf("database integrity check found %d problem(s)", status.ErrorCount),
		errors.ErrDatabaseCorrupted,
	)
}

// Path returns the database directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection and releases the process lock.
func (d *DB) Close() error {
	err := d.db.Close()
	if d.lock != nil {
		if lockErr := d.lock.Release(); err == nil {
			err = lockErr
		}
	}
	return err
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
