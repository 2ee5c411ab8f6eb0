package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppName is the application name used for config directories.
const AppName = "controleplus"

// fileConfig mirrors RuntimeConfig in the TOML layout. Durations are strings
// such as "60s" or "1m30s".
type fileConfig struct {
	Storage struct {
		Path                string `toml:"path"`
		MinFreeSpace        uint64 `toml:"min_free_space"`
		MinFreeSpaceWarning uint64 `toml:"min_free_space_warning"`
	} `toml:"storage"`
	Sync struct {
		Interval   string `toml:"interval"`
		Debounce   string `toml:"debounce"`
		Timeout    string `toml:"timeout"`
		SignalHold string `toml:"signal_hold"`
	} `toml:"sync"`
	HTTP struct {
		Timeout   string `toml:"timeout"`
		UserAgent string `toml:"user_agent"`
	} `toml:"http"`
	Backup struct {
		Driver string `toml:"driver"`
		Dir    string `toml:"dir"`
		S3     struct {
			Bucket    string `toml:"bucket"`
			Prefix    string `toml:"prefix"`
			Region    string `toml:"region"`
			Endpoint  string `toml:"endpoint"`
			PathStyle bool   `toml:"path_style"`
		} `toml:"s3"`
	} `toml:"backup"`
	Logging struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"logging"`
}

// DefaultConfigPath returns the configuration file location under the XDG
// config directory.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Load builds the runtime configuration from defaults, the TOML file at path
// (DefaultConfigPath when empty, CONTROLEPLUS_CONFIG when set), a .env file in
// the working directory, and CONTROLEPLUS_* environment variables, in that
// order of increasing precedence. A missing file is not an error.
func Load(path string) (*RuntimeConfig, error) {
	// Existing environment variables win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := DefaultRuntimeConfig()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.loadFromEnv()
	return cfg, nil
}

func (c *RuntimeConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return c.apply(&fc)
}

func (c *RuntimeConfig) apply(fc *fileConfig) error {
	if fc.Storage.Path != "" {
		c.Storage.Path = fc.Storage.Path
	}
	if fc.Storage.MinFreeSpace > 0 {
		c.Storage.MinFreeSpace = fc.Storage.MinFreeSpace
	}
	if fc.Storage.MinFreeSpaceWarning > 0 {
		c.Storage.MinFreeSpaceWarning = fc.Storage.MinFreeSpaceWarning
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"sync.interval", fc.Sync.Interval, &c.Sync.Interval},
		{"sync.debounce", fc.Sync.Debounce, &c.Sync.Debounce},
		{"sync.timeout", fc.Sync.Timeout, &c.Sync.Timeout},
		{"sync.signal_hold", fc.Sync.SignalHold, &c.Sync.SignalHold},
		{"http.timeout", fc.HTTP.Timeout, &c.HTTP.Timeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil || v <= 0 {
			return fmt.Errorf("config %s: invalid duration %q", d.name, d.raw)
		}
		*d.target = v
	}

	if fc.HTTP.UserAgent != "" {
		c.HTTP.UserAgent = fc.HTTP.UserAgent
	}

	if fc.Backup.Driver != "" {
		c.Backup.Driver = fc.Backup.Driver
	}
	if fc.Backup.Dir != "" {
		c.Backup.Dir = fc.Backup.Dir
	}
	if fc.Backup.S3.Bucket != "" {
		c.Backup.S3.Bucket = fc.Backup.S3.Bucket
	}
	if fc.Backup.S3.Prefix != "" {
		c.Backup.S3.Prefix = fc.Backup.S3.Prefix
	}
	if fc.Backup.S3.Region != "" {
		c.Backup.S3.Region = fc.Backup.S3.Region
	}
	if fc.Backup.S3.Endpoint != "" {
		c.Backup.S3.Endpoint = fc.Backup.S3.Endpoint
	}
	if fc.Backup.S3.PathStyle {
		c.Backup.S3.PathStyle = true
	}

	if fc.Logging.Level != "" {
		c.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.JSON {
		c.Logging.JSON = true
	}

	switch c.Backup.Driver {
	case "fs", "s3":
	default:
		return fmt.Errorf("config backup.driver: unknown driver %q (use fs or s3)", c.Backup.Driver)
	}
	return nil
}
