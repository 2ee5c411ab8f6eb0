package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		err = db.Close()
		assert.NoError(t, err)
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.NotNil(t, db)
		db.Close()
	})

	t.Run("memory_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: MemoryPath})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})
}

func TestDBPath(t *testing.T) {
	db := setupTestDB(t)

	// In-memory DB has empty path
	assert.Equal(t, "", db.Path())

	dir := filepath.Join(t.TempDir(), "db")
	disk, err := Open(Options{Path: dir})
	require.NoError(t, err)
	defer disk.Close()
	assert.Equal(t, dir, disk.Path())
}

func TestDBBadger(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db.Badger())
}

func TestCheckIntegrity(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.CheckIntegrity())

	require.NoError(t, db.SetBytes(model.KeyRadios, []byte("{not json")))
	assert.Error(t, db.CheckIntegrity())
}

func TestOpenWithIntegrityCheck(t *testing.T) {
	db, err := OpenWithIntegrityCheck(Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()
	assert.NotNil(t, db)
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "controleplus")
	assert.Contains(t, path, "db")
}

// =============================================================================
// Raw Key Tests
// =============================================================================

func TestBytesRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBytes("missing")
	assert.True(t, IsErrKeyNotFound(err))

	require.NoError(t, db.SetBytes("k", []byte(`"v"`)))
	data, err := db.GetBytes("k")
	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(data))

	exists, err := db.Exists("k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.Delete("k"))
	exists, err = db.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSetMany(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.SetMany(map[string][]byte{
		model.KeyRadios:  []byte("[]"),
		model.KeyArtists: []byte("[]"),
	}))

	keys, err := db.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.KeyRadios, model.KeyArtists}, keys)
}

// =============================================================================
// Collection Tests
// =============================================================================

func TestLoadCollectionMissingKey(t *testing.T) {
	db := setupTestDB(t)

	radios, err := LoadCollection[model.RadioStation](db, model.KeyRadios)
	require.NoError(t, err)
	assert.NotNil(t, radios)
	assert.Empty(t, radios)
}

func TestSaveLoadCollection(t *testing.T) {
	db := setupTestDB(t)

	artists := []model.Artist{
		{ID: "id_1", Name: "Ana Castela", Genre: model.GenreSertanejo},
		{ID: "id_2", Name: "Zé Neto", IsArchived: true},
	}
	require.NoError(t, SaveCollection(db, model.KeyArtists, artists))

	loaded, err := LoadCollection[model.Artist](db, model.KeyArtists)
	require.NoError(t, err)
	assert.Equal(t, artists, loaded)
}

func TestSaveCollectionNilWritesEmptyArray(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SaveCollection[model.Music](db, model.KeyMusic, nil))

	data, err := db.GetBytes(model.KeyMusic)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestLoadCollectionCorrupted(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBytes(model.KeyEvents, []byte("{broken")))

	_, err := LoadCollection[model.AppEvent](db, model.KeyEvents)
	require.Error(t, err)
	assert.Contains(t, err.Error(), model.KeyEvents)
	assert.True(t, IsDecodeError(err))
}

func TestLoadCollectionNull(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBytes(model.KeyPromotions, []byte("null")))

	promos, err := LoadCollection[model.Promotion](db, model.KeyPromotions)
	require.NoError(t, err)
	assert.NotNil(t, promos)
	assert.Empty(t, promos)
}

func TestCollectionsPersistAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	db, err := Open(Options{Path: dir})
	require.NoError(t, err)
	require.NoError(t, SaveCollection(db, model.KeyCrowleyMarkets, []string{"Goiânia", "Brasília"}))
	require.NoError(t, db.Close())

	db, err = Open(Options{Path: dir})
	require.NoError(t, err)
	defer db.Close()

	markets, err := LoadCollection[string](db, model.KeyCrowleyMarkets)
	require.NoError(t, err)
	assert.Equal(t, []string{"Goiânia", "Brasília"}, markets)
}

// =============================================================================
// Preferences and Sheets Config Tests
// =============================================================================

func TestPreferencesDefaults(t *testing.T) {
	repo := NewPreferencesRepo(setupTestDB(t))

	view, err := repo.ActiveView()
	require.NoError(t, err)
	assert.Equal(t, DefaultActiveView, view)

	theme, err := repo.Theme()
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, theme)
}

func TestPreferencesUpdate(t *testing.T) {
	repo := NewPreferencesRepo(setupTestDB(t))

	require.NoError(t, repo.SetActiveView("promotions"))
	require.NoError(t, repo.SetTheme("dark"))

	view, err := repo.ActiveView()
	require.NoError(t, err)
	assert.Equal(t, "promotions", view)

	theme, err := repo.Theme()
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestSheetsConfigRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSheetsConfigRepo(db)

	cfg, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSheetsConfig(), cfg)

	require.NoError(t, repo.Update(model.SheetsConfig{SheetsURL: "https://script.google.com/macros/s/x/exec"}))
	cfg, err = repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/x/exec", cfg.SheetsURL)

	// Unknown stored fields are ignored, absent ones keep defaults
	require.NoError(t, db.SetBytes(model.KeySheetsConfig, []byte(`{"legacy":true}`)))
	cfg, err = repo.Get()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSheetsConfig(), cfg)
}

// =============================================================================
// Safety Tests
// =============================================================================

func TestDiskSpaceInfo(t *testing.T) {
	t.Run("free_percent_zero_total", func(t *testing.T) {
		info := &DiskSpaceInfo{TotalBytes: 0, FreeBytes: 100}
		assert.Equal(t, 0.0, info.FreePercent())
	})

	t.Run("free_percent_calculation", func(t *testing.T) {
		info := &DiskSpaceInfo{TotalBytes: 1000, FreeBytes: 250}
		assert.Equal(t, 25.0, info.FreePercent())
	})
}

func TestGetDiskSpace(t *testing.T) {
	t.Run("current_directory", func(t *testing.T) {
		info, err := GetDiskSpace(".")
		require.NoError(t, err)
		assert.NotNil(t, info)
		assert.Greater(t, info.TotalBytes, uint64(0))
	})

	t.Run("nonexistent_uses_parent", func(t *testing.T) {
		info, err := GetDiskSpace("/nonexistent/path/here")
		// Should find the root directory
		require.NoError(t, err)
		assert.NotNil(t, info)
	})
}

func TestCheckDiskSpace(t *testing.T) {
	t.Run("current_directory_has_space", func(t *testing.T) {
		err := CheckDiskSpace(".")
		// Unless running on a nearly-full disk, this should pass
		assert.NoError(t, err)
	})
}

func TestCheckDiskSpaceWarning(t *testing.T) {
	t.Run("no_warning_on_normal_disk", func(t *testing.T) {
		warning := CheckDiskSpaceWarning(".")
		// Unless running on a nearly-full disk
		assert.Empty(t, warning)
	})
}

func TestIsDiskFullError(t *testing.T) {
	t.Run("nil_error", func(t *testing.T) {
		assert.False(t, isDiskFullError(nil))
	})

	t.Run("regular_error", func(t *testing.T) {
		err := fmt.Errorf("some error")
		assert.False(t, isDiskFullError(err))
	})
}

func TestSafeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	require.NoError(t, SafeWrite(path, []byte(`{"radios":[]}`), 0600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"radios":[]}`, string(data))

	// Overwrite replaces the file atomically
	require.NoError(t, SafeWrite(path, []byte(`{}`), 0600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// =============================================================================
// Recovery Tests
// =============================================================================

func TestCheckDatabaseIntegrity(t *testing.T) {
	t.Run("nil_database", func(t *testing.T) {
		status := CheckDatabaseIntegrity(nil)
		assert.False(t, status.Healthy)
		assert.True(t, status.Corrupted)
	})

	t.Run("healthy_database", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, SaveCollection(db, model.KeyRadios, []model.RadioStation{{ID: "id_1"}}))
		status := CheckDatabaseIntegrity(db)
		assert.True(t, status.Healthy)
		assert.False(t, status.Corrupted)
	})

	t.Run("non_json_value", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.SetBytes(model.KeyMusic, []byte("\x00\x01")))
		status := CheckDatabaseIntegrity(db)
		assert.False(t, status.Healthy)
		assert.Equal(t, 1, status.ErrorCount)
		assert.True(t, status.Recoverable)
		assert.Contains(t, status.Errors[0], model.KeyMusic)
	})
}

func TestRecoveryStatus(t *testing.T) {
	status := &RecoveryStatus{
		Healthy:     true,
		LastCheck:   time.Now(),
		ErrorCount:  0,
		Recoverable: false,
	}

	assert.True(t, status.Healthy)
	assert.Zero(t, status.ErrorCount)
}

func TestIsDatabaseCorrupted(t *testing.T) {
	t.Run("nil_error", func(t *testing.T) {
		assert.False(t, IsDatabaseCorrupted(nil))
	})

	t.Run("regular_error", func(t *testing.T) {
		err := fmt.Errorf("some error")
		assert.False(t, IsDatabaseCorrupted(err))
	})

	t.Run("checksum_mismatch", func(t *testing.T) {
		err := fmt.Errorf("Checksum Mismatch detected")
		assert.True(t, IsDatabaseCorrupted(err))
	})

	t.Run("corrupt_in_message", func(t *testing.T) {
		err := fmt.Errorf("data corrupt")
		assert.True(t, IsDatabaseCorrupted(err))
	})
}

func TestSalvage(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCollection(db, model.KeyCrowleyMarkets, []string{"Goiânia"}))
	require.NoError(t, db.SetBytes("radios", []byte("not-json")))

	report, err := Salvage(db)
	require.NoError(t, err)
	assert.Contains(t, string(report.Values[model.KeyCrowleyMarkets]), "Goiânia")
	assert.NotContains(t, report.Values, "radios")
	assert.Equal(t, []string{"radios"}, report.Skipped)
}

func TestSalvageWithoutDatabase(t *testing.T) {
	_, err := Salvage(nil)
	assert.Error(t, err)
}
