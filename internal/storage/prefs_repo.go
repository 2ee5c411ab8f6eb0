package storage

import (
	"github.com/manav03panchal/controleplus/internal/model"
)

const (
	// DefaultActiveView is the view shown when none was stored.
	DefaultActiveView = "dashboard"
	// DefaultTheme is the color theme used when none was stored.
	DefaultTheme = "light"
)

// PreferencesRepo reads and writes the UI preference strings.
type PreferencesRepo struct {
	db ReadWriter
}

// NewPreferencesRepo creates a new preferences repository.
func NewPreferencesRepo(db ReadWriter) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

// ActiveView returns the stored view name, or DefaultActiveView.
func (r *PreferencesRepo) ActiveView() (string, error) {
	return r.get(model.KeyActiveView, DefaultActiveView)
}

// SetActiveView stores the view name.
func (r *PreferencesRepo) SetActiveView(view string) error {
	return SaveValue(r.db, model.KeyActiveView, view)
}

// Theme returns the stored theme, or DefaultTheme.
func (r *PreferencesRepo) Theme() (string, error) {
	return r.get(model.KeyTheme, DefaultTheme)
}

// SetTheme stores the theme.
func (r *PreferencesRepo) SetTheme(theme string) error {
	return SaveValue(r.db, model.KeyTheme, theme)
}

func (r *PreferencesRepo) get(key, fallback string) (string, error) {
	var v string
	found, err := LoadValue(r.db, key, &v)
	if err != nil {
		return fallback, err
	}
	if !found || v == "" {
		return fallback, nil
	}
	return v, nil
}

// SheetsConfigRepo provides operations for the spreadsheet endpoint settings.
type SheetsConfigRepo struct {
	db ReadWriter
}

// NewSheetsConfigRepo creates a new sheets config repository.
func NewSheetsConfigRepo(db ReadWriter) *SheetsConfigRepo {
	return &SheetsConfigRepo{db: db}
}

// Get returns the stored settings merged over the defaults.
func (r *SheetsConfigRepo) Get() (model.SheetsConfig, error) {
	cfg := model.DefaultSheetsConfig()
	if _, err := LoadValue(r.db, model.KeySheetsConfig, &cfg); err != nil {
		return model.DefaultSheetsConfig(), err
	}
	return cfg, nil
}

// Update stores the settings.
func (r *SheetsConfigRepo) Update(cfg model.SheetsConfig) error {
	return SaveValue(r.db, model.KeySheetsConfig, cfg)
}
