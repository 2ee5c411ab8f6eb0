// Package config provides centralized configuration for Controle Plus runtime values.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CONTROLEPLUS_"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig

	// Submission sync configuration
	Sync SyncConfig

	// HTTP client configuration
	HTTP HTTPConfig

	// Backup destination configuration
	Backup BackupConfig

	// Logging configuration
	Logging LoggingConfig
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the database directory. Empty uses the XDG data directory,
	// ":memory:" opens an in-memory database.
	Path string

	// MinFreeSpace is the minimum free space required for write operations.
	// Default: 10MB (10 * 1024 * 1024 bytes)
	MinFreeSpace uint64

	// MinFreeSpaceWarning is the threshold for warning about low disk space.
	// Default: 50MB (50 * 1024 * 1024 bytes)
	MinFreeSpaceWarning uint64
}

// SyncConfig holds the submission poller configuration.
type SyncConfig struct {
	// Interval is the time between scheduled polls.
	// Default: 60s
	Interval time.Duration

	// Debounce is the minimum time between two attempted polls.
	// Default: 30s
	Debounce time.Duration

	// Timeout bounds a single read or submit request.
	// Default: 15s
	Timeout time.Duration

	// SignalHold is how long the new-data signal stays raised.
	// Default: 2s
	SignalHold time.Duration
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the transport-level request timeout.
	// Default: 30s
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// BackupConfig selects where 'backup push' writes backup documents.
type BackupConfig struct {
	// Driver is "fs" or "s3".
	// Default: fs
	Driver string

	// Dir is the target directory of the fs driver.
	// Empty uses the XDG data directory.
	Dir string

	// S3 configures the s3 driver.
	S3 S3Config
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: warn
	Level string

	// JSON switches the handler to JSON lines.
	JSON bool
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			MinFreeSpace:        10 * 1024 * 1024, // 10MB
			MinFreeSpaceWarning: 50 * 1024 * 1024, // 50MB
		},
		Sync: SyncConfig{
			Interval:   60 * time.Second,
			Debounce:   30 * time.Second,
			Timeout:    15 * time.Second,
			SignalHold: 2 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "controleplus/1.0",
		},
		Backup: BackupConfig{
			Driver: "fs",
			S3: S3Config{
				Region: "us-east-1",
				Prefix: "controleplus/",
			},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and environment overrides; Load replaces it
// with the file-backed configuration at startup.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

func envDuration(name string, target *time.Duration) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*target = d
		}
	}
}

func envString(name string, target *string) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*target = v
	}
}

func envUint(name string, target *uint64) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*target = n
		}
	}
}

func envBool(name string, target *bool) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*target = b
		}
	}
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Storage configuration
	envString("DATABASE", &c.Storage.Path)
	envUint("MIN_FREE_SPACE", &c.Storage.MinFreeSpace)
	envUint("MIN_FREE_SPACE_WARNING", &c.Storage.MinFreeSpaceWarning)

	// Sync configuration
	envDuration("SYNC_INTERVAL", &c.Sync.Interval)
	envDuration("SYNC_DEBOUNCE", &c.Sync.Debounce)
	envDuration("SYNC_TIMEOUT", &c.Sync.Timeout)
	envDuration("SYNC_SIGNAL_HOLD", &c.Sync.SignalHold)

	// HTTP configuration
	envDuration("HTTP_TIMEOUT", &c.HTTP.Timeout)
	envString("HTTP_USER_AGENT", &c.HTTP.UserAgent)

	// Backup configuration
	envString("BACKUP_DRIVER", &c.Backup.Driver)
	envString("BACKUP_DIR", &c.Backup.Dir)
	envString("BACKUP_S3_BUCKET", &c.Backup.S3.Bucket)
	envString("BACKUP_S3_PREFIX", &c.Backup.S3.Prefix)
	envString("BACKUP_S3_REGION", &c.Backup.S3.Region)
	envString("BACKUP_S3_ENDPOINT", &c.Backup.S3.Endpoint)
	envBool("BACKUP_S3_PATH_STYLE", &c.Backup.S3.PathStyle)

	// Logging configuration
	envString("LOG_LEVEL", &c.Logging.Level)
	envBool("LOG_JSON", &c.Logging.JSON)
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
