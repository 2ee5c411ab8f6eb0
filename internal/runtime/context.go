// Package runtime provides application runtime context for Controle Plus.
package runtime

import (
	"context"
	"path/filepath"
	"time"

	"github.com/manav03panchal/controleplus/internal/backup"
	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/poller"
	"github.com/manav03panchal/controleplus/internal/sheets"
	"github.com/manav03panchal/controleplus/internal/storage"
	"github.com/manav03panchal/controleplus/internal/store"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.RuntimeConfig
	DB        *storage.DB
	Store     *store.Store
	Sheets    *sheets.Client
	Formatter *output.Formatter

	// Now is the clock every command reads.
	Now func() time.Time

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	ConfigPath string
	DBPath     string
	InMemory   bool
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
	Now        func() time.Time
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context: it loads the configuration, sets up
// logging, opens the database and loads the store.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.Global = cfg

	initLogging(cfg.Logging, opts.Debug)

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.Storage.Path
	}
	if dbPath == "" && !opts.InMemory {
		dbPath = storage.DefaultPath()
	}

	db, err := storage.OpenWithIntegrityCheck(storage.Options{
		Path:     dbPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}
	if dbPath != "" && !opts.InMemory {
		if warning := storage.CheckDiskSpaceWarning(filepath.Dir(dbPath)); warning != "" {
			logging.Warn(warning, "path", dbPath)
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	st, err := store.Open(db, store.Options{
		Now: now,
		OnPersistFailure: func(w *store.PersistenceWarning) {
			logging.Warn("changes kept in memory only, export a backup", logging.KeyCollection, w.Keys)
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// Create formatter
	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Config:    cfg,
		DB:        db,
		Store:     st,
		Sheets:    sheets.NewClientFromConfig(cfg),
		Formatter: formatter,
		Now:       now,
		Debug:     opts.Debug,
	}, nil
}

func initLogging(cfg config.LoggingConfig, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	logging.Init(logging.Config{
		Level: logging.ParseLevel(cfg.Level),
		JSON:  cfg.JSON,
	})
}

// Close closes the runtime context. Calling it again is a no-op.
func (c *Context) Close() error {
	if c.DB == nil {
		return nil
	}
	err := c.DB.Close()
	c.DB = nil
	return err
}

// NewPoller builds a submission poller that reads the configured sheets
// endpoint and merges into the store.
func (c *Context) NewPoller() (*poller.Poller, error) {
	opts := poller.OptionsFromConfig(c.Config.Sync, c.Sheets, c.Store, c.Store.SheetsURL)
	opts.Now = c.Now
	return poller.New(opts)
}

// BackupSink opens the configured backup destination.
func (c *Context) BackupSink(ctx context.Context) (backup.Sink, error) {
	return backup.NewSink(ctx, c.Config.Backup)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
