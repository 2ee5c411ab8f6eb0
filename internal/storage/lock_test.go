package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	cperrors "github.com/manav03panchal/controleplus/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	t.Run("acquires and releases lock successfully", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)

		err := lock.Acquire()
		require.NoError(t, err)
		assert.True(t, lock.Locked())

		// PID file should contain current PID
		data, err := os.ReadFile(lock.pidPath())
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

		err = lock.Release()
		require.NoError(t, err)
		assert.False(t, lock.Locked())

		// PID file should be removed after release
		_, err = os.Stat(lock.pidPath())
		assert.True(t, os.IsNotExist(err), "pid file should be removed after release")
	})

	t.Run("second lock fails when first is held", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		lock2 := NewFileLock(dir)

		err := lock1.Acquire()
		require.NoError(t, err)
		defer lock1.Release()

		// Second lock should fail
		err = lock2.Acquire()
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)
		assert.ErrorIs(t, err, cperrors.ErrLockHeld)
		assert.Contains(t, err.Error(), "PID")
	})

	t.Run("can acquire lock after previous lock is released", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		lock2 := NewFileLock(dir)

		err := lock1.Acquire()
		require.NoError(t, err)

		err = lock1.Release()
		require.NoError(t, err)

		// Second lock should succeed after first is released
		err = lock2.Acquire()
		require.NoError(t, err)
		defer lock2.Release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)

		err := lock.Acquire()
		require.NoError(t, err)

		err = lock.Release()
		require.NoError(t, err)

		// Second release should not error
		err = lock.Release()
		assert.NoError(t, err)
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		lock := NewFileLock(dir)

		require.NoError(t, lock.Acquire())
		defer lock.Release()
		assert.Equal(t, filepath.Join(dir, LockFileName), lock.Path())
	})
}

func TestFileLock_ReadPID(t *testing.T) {
	t.Run("reads valid PID", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)

		err := os.WriteFile(lock.pidPath(), []byte("12345\n"), 0644)
		require.NoError(t, err)

		assert.Equal(t, 12345, lock.readPID())
	})

	t.Run("returns 0 for invalid PID", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)

		err := os.WriteFile(lock.pidPath(), []byte("not-a-number"), 0644)
		require.NoError(t, err)

		assert.Equal(t, 0, lock.readPID())
	})

	t.Run("returns 0 for non-existent file", func(t *testing.T) {
		lock := NewFileLock(t.TempDir())
		assert.Equal(t, 0, lock.readPID())
	})
}

func TestLockError(t *testing.T) {
	t.Run("without PID", func(t *testing.T) {
		err := NewLockError(ErrLockAlreadyHeld)
		assert.Contains(t, err.Error(), "cannot access database")
		assert.Zero(t, err.PID)
	})

	t.Run("extracts PID", func(t *testing.T) {
		err := NewLockError(wrapPID(4242))
		assert.Equal(t, 4242, err.PID)
		assert.Contains(t, err.Error(), "PID 4242")
	})

	t.Run("unwraps to original error", func(t *testing.T) {
		lockErr := NewLockError(ErrLockAlreadyHeld)
		assert.ErrorIs(t, lockErr, ErrLockAlreadyHeld)
		assert.ErrorIs(t, lockErr, cperrors.ErrLockHeld)
	})
}

func wrapPID(pid int) error {
	dir, _ := os.MkdirTemp("", "lock")
	defer os.RemoveAll(dir)
	holder := NewFileLock(dir)
	if err := holder.Acquire(); err != nil {
		return err
	}
	defer holder.Release()
	_ = os.WriteFile(holder.pidPath(), []byte(strconv.Itoa(pid)), 0600)
	return NewFileLock(dir).Acquire()
}

func TestDB_OpenWithLock(t *testing.T) {
	t.Run("acquires lock on disk database open", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")

		db, err := Open(Options{Path: dbPath})
		require.NoError(t, err)
		defer db.Close()

		require.NotNil(t, db.lock)
		assert.True(t, db.lock.Locked())

		_, err = os.Stat(filepath.Join(dbPath, LockFileName))
		assert.NoError(t, err)
	})

	t.Run("no lock for in-memory database", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		defer db.Close()

		assert.Nil(t, db.lock)
	})

	t.Run("second open fails when database is locked", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")

		db1, err := Open(Options{Path: dbPath})
		require.NoError(t, err)
		defer db1.Close()

		_, err = Open(Options{Path: dbPath})
		require.Error(t, err)

		var lockErr *LockError
		assert.ErrorAs(t, err, &lockErr)
		assert.ErrorIs(t, err, cperrors.ErrLockHeld)
	})

	t.Run("releases lock on close", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")

		db, err := Open(Options{Path: dbPath})
		require.NoError(t, err)

		err = db.Close()
		require.NoError(t, err)

		// Should be able to open again
		db2, err := Open(Options{Path: dbPath})
		require.NoError(t, err)
		defer db2.Close()
	})
}
