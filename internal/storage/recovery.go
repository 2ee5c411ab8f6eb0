package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/logging"
)

// RecoveryStatus represents the result of a database health check.
type RecoveryStatus struct {
	Healthy     bool      `json:"healthy"`
	Corrupted   bool      `json:"corrupted"`
	LastCheck   time.Time `json:"last_check"`
	ErrorCount  int       `json:"error_count"`
	Errors      []string  `json:"errors,omitempty"`
	Recoverable bool      `json:"recoverable"`
	BackupPath  string    `json:"backup_path,omitempty"`
}

// CheckDatabaseIntegrity reads every stored value and verifies it decodes as
// JSON. Returns a RecoveryStatus with details about the database health.
func CheckDatabaseIntegrity(db *DB) *RecoveryStatus {
	status := &RecoveryStatus{
		LastCheck: time.Now(),
		Healthy:   true,
	}

	if db == nil || db.db == nil {
		status.Healthy = false
		status.Corrupted = true
		status.Errors = append(status.Errors, "database not initialized")
		return status
	}

	err := db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if err := item.Value(func(val []byte) error {
				if !json.Valid(val) {
					return fmt.Errorf("value is not valid JSON")
				}
				return nil
			}); err != nil {
				status.Errors = append(status.Errors, fmt.Sprintf("corrupted value at key %s: %v", key, err))
				status.ErrorCount++
			}
		}
		return nil
	})

	if err != nil {
		status.Healthy = false
		status.Corrupted = true
		status.Errors = append(status.Errors, fmt.Sprintf("iteration error: %v", err))
		status.ErrorCount++
	}

	if status.ErrorCount > 0 {
		status.Healthy = false
		status.Corrupted = true
		// Check if we can recover by re-opening
		status.Recoverable = status.ErrorCount < 10
	}

	return status
}

// SalvageReport holds every stored value that still decodes as JSON, by
// key, and the keys that could not be read.
type SalvageReport struct {
	CreatedAt time.Time                  `json:"createdAt"`
	Values    map[string]json.RawMessage `json:"values"`
	Skipped   []string                   `json:"skipped,omitempty"`
}

// Salvage reads every key it can from a damaged database. Unreadable values
// are listed in Skipped instead of failing the whole read.
func Salvage(db *DB) (*SalvageReport, error) {
	if db == nil || db.db == nil {
		return nil, fmt.Errorf("database not available")
	}

	report := &SalvageReport{
		CreatedAt: time.Now(),
		Values:    make(map[string]json.RawMessage),
	}
	err := db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			val, err := item.ValueCopy(nil)
			if err == nil && !json.Valid(val) {
				err = fmt.Errorf("value is not valid JSON")
			}
			if err != nil {
				logging.Warn("skipping unreadable value", logging.KeyCollection, key, logging.KeyError, err)
				report.Skipped = append(report.Skipped, key)
				continue
			}
			report.Values[key] = val
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("salvage iteration error: %w", err)
	}

	sort.Strings(report.Skipped)
	logging.Info("database salvaged", logging.KeyCount, len(report.Values), "skipped", len(report.Skipped))
	return report, nil
}

// IsDatabaseCorrupted checks if the given error indicates database corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}

	// Check for our sentinel error
	if stderrors.Is(err, errors.ErrDatabaseCorrupted) {
		return true
	}

	// Check error message for corruption patterns
	errStr := strings.ToLower(err.Error())
	corruptionPatterns := []string{
		"checksum mismatch",
		"corrupt",
		"invalid",
		"unexpected eof",
		"bad magic",
		"truncated",
	}

	for _, pattern := range corruptionPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
