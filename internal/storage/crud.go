package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = errors.New("key not found")
)

// DecodeError reports a stored value that is not valid JSON for its type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Reader reads raw values by key.
type Reader interface {
	GetBytes(key string) ([]byte, error)
}

// Writer writes raw values by key.
type Writer interface {
	SetBytes(key string, data []byte) error
}

// ReadWriter is the backend the domain store persists to. *DB implements it.
type ReadWriter interface {
	Reader
	Writer
}

var _ ReadWriter = (*DB)(nil)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// GetBytes retrieves raw bytes by key.
func (d *DB) GetBytes(key string) ([]byte, error) {
	var result []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			result = make([]byte, len(val))
			copy(result, val)
			return nil
		})
	})
	return result, err
}

// SetBytes stores raw bytes with the given key.
func (d *DB) SetBytes(key string, data []byte) error {
	return d.SetMany(map[string][]byte{key: data})
}

// SetMany stores several keys in a single transaction.
func (d *DB) SetMany(entries map[string][]byte) error {
	if err := d.preflight(); err != nil {
		return err
	}
	return d.db.Update(func(txn *badger.Txn) error {
		for key, data := range entries {
			if err := txn.Set([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a key from the database.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Exists checks if a key exists in the database.
func (d *DB) Exists(key string) (bool, error) {
	var exists bool
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// Keys lists every stored key.
func (d *DB) Keys() ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// preflight rejects writes when the disk under a file-backed database is
// nearly full.
func (d *DB) preflight() error {
	if d.path == "" {
		return nil
	}
	return CheckDiskSpace(d.path)
}

// LoadCollection reads the JSON array stored under key.
// A missing key yields an empty slice.
func LoadCollection[T any](d Reader, key string) ([]T, error) {
	data, err := d.GetBytes(key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveCollection writes items as the JSON array stored under key.
func SaveCollection[T any](d Writer, key string, items []T) error {
	data, err := EncodeCollection(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return d.SetBytes(key, data)
}

// EncodeCollection marshals items, writing a nil slice as [].
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// LoadValue reads the JSON value stored under key into v.
// It reports false when the key is absent.
func LoadValue(d Reader, key string, v any) (bool, error) {
	data, err := d.GetBytes(key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &DecodeError{Key: key, Err: err}
	}
	return true, nil
}

// SaveValue writes v as JSON under key.
func SaveValue(d Writer, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return d.SetBytes(key, data)
}
