package store

import (
	"strings"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/validate"
)

// Themes lists the accepted color themes.
var Themes = []string{"light", "dark"}

// SheetsURL returns the configured spreadsheet endpoint, or "".
func (s *Store) SheetsURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sheetsConfig.SheetsURL
}

// SetSheetsURL stores the spreadsheet endpoint. An empty url disables sync.
func (s *Store) SetSheetsURL(url string) error {
	url = strings.TrimSpace(url)
	if url != "" {
		if err := validate.URL(url); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sheetsConfig.SheetsURL = url
	return s.persist(model.KeySheetsConfig)
}

// ActiveView returns the last opened view.
func (s *Store) ActiveView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeView
}

// SetActiveView stores the last opened view.
func (s *Store) SetActiveView(view string) error {
	view = strings.TrimSpace(view)
	if err := validate.NonEmpty("view", view); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeView = view
	return s.persist(model.KeyActiveView)
}

// Theme returns the color theme.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme stores the color theme, light or dark.
func (s *Store) SetTheme(theme string) error {
	if err := validate.OneOf("theme", theme, Themes); err != nil {
		return err
	}
	if theme == "" {
		return errors.NewUserError("theme cannot be empty", "Use light or dark")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	return s.persist(model.KeyTheme)
}
