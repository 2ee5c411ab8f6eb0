// Package store owns the Controle Plus collections in memory and persists
// every change to the key-value backend.
//
// All mutation goes through *Store methods under one mutex, so the sync
// poller and CLI commands observe a single ordered history of changes.
// A change is applied in memory first and then written; when a write fails
// the change stays in memory and the method returns a *PersistenceWarning.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/storage"
)

// TimestampLayout is the format of createdAt and sentAt values.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Options configures a Store.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// OnPersistFailure is called, with the store lock held, whenever a
	// write to the backend fails.
	OnPersistFailure func(*PersistenceWarning)
}

// Store holds every collection and the settings singletons.
type Store struct {
	mu      sync.RWMutex
	backend storage.ReadWriter
	prefs   *storage.PreferencesRepo
	sheets  *storage.SheetsConfigRepo

	now              func() time.Time
	onPersistFailure func(*PersistenceWarning)

	radios      []model.RadioStation
	cityHalls   []model.CityHall
	businesses  []model.Business
	artists     []model.Artist
	music       []model.Music
	promotions  []model.Promotion
	events      []model.AppEvent
	blitzes     []model.MusicalBlitz
	campaigns   []model.EmailCampaign
	markets     []string
	submissions []model.RadioSubmission

	sheetsConfig model.SheetsConfig
	activeView   string
	theme        string
}

// Open loads every collection from backend. A collection that cannot be
// decoded is logged and starts empty; Open itself only fails on read errors
// from the backend.
func Open(backend storage.ReadWriter, opts Options) (*Store, error) {
	s := &Store{
		backend:          backend,
		prefs:            storage.NewPreferencesRepo(backend),
		sheets:           storage.NewSheetsConfigRepo(backend),
		now:              opts.Now,
		onPersistFailure: opts.OnPersistFailure,
	}
	if s.now == nil {
		s.now = time.Now
	}

	loaders := []struct {
		key  string
		load func() error
	}{
		{model.KeyRadios, loadInto(backend, model.KeyRadios, &s.radios)},
		{model.KeyCityHalls, loadInto(backend, model.KeyCityHalls, &s.cityHalls)},
		{model.KeyBusinesses, loadInto(backend, model.KeyBusinesses, &s.businesses)},
		{model.KeyArtists, loadInto(backend, model.KeyArtists, &s.artists)},
		{model.KeyMusic, loadInto(backend, model.KeyMusic, &s.music)},
		{model.KeyPromotions, loadInto(backend, model.KeyPromotions, &s.promotions)},
		{model.KeyEvents, loadInto(backend, model.KeyEvents, &s.events)},
		{model.KeyMusicalBlitzes, loadInto(backend, model.KeyMusicalBlitzes, &s.blitzes)},
		{model.KeyEmailCampaigns, loadInto(backend, model.KeyEmailCampaigns, &s.campaigns)},
		{model.KeyCrowleyMarkets, loadInto(backend, model.KeyCrowleyMarkets, &s.markets)},
		{model.KeyRadioSubmissions, loadInto(backend, model.KeyRadioSubmissions, &s.submissions)},
		{model.KeySheetsConfig, func() (err error) { s.sheetsConfig, err = s.sheets.Get(); return err }},
		{model.KeyActiveView, func() (err error) { s.activeView, err = s.prefs.ActiveView(); return err }},
		{model.KeyTheme, func() (err error) { s.theme, err = s.prefs.Theme(); return err }},
	}
	for _, l := range loaders {
		if err := l.load(); err != nil {
			if storage.IsDecodeError(err) {
				logging.Warn("stored collection is unreadable, starting empty",
					logging.KeyCollection, l.key, logging.KeyError, err)
				continue
			}
			return nil, errors.NewSystemErrorWithOp("load "+l.key, "failed to read stored data", err)
		}
	}
	return s, nil
}

func loadInto[T any](r storage.Reader, key string, dst *[]T) func() error {
	return func() error {
		items, err := storage.LoadCollection[T](r, key)
		if err != nil {
			*dst = []T{}
			return err
		}
		*dst = items
		return nil
	}
}

// PersistenceWarning reports collections whose latest state is only held in
// memory. It matches errors.ErrNotDurable.
type PersistenceWarning struct {
	Keys []string
	Err  error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("changes kept in memory but not saved (%s): %v", strings.Join(w.Keys, ", "), w.Err)
}

func (w *PersistenceWarning) Unwrap() []error {
	return []error{errors.ErrNotDurable, w.Err}
}

// IsPersistenceWarning reports whether err is a non-fatal write failure.
func IsPersistenceWarning(err error) bool {
	var w *PersistenceWarning
	return errors.As(err, &w)
}

// persist writes each key's current in-memory value. Keys are written one by
// one; any failure is collected and the rest are still attempted.
// Callers hold s.mu.
func (s *Store) persist(keys ...string) error {
	var failed []string
	var errs []error
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if err := s.write(key); err != nil {
			failed = append(failed, key)
			errs = append(errs, err)
			logging.Error("failed to persist collection",
				logging.KeyCollection, key, logging.KeyError, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	w := &PersistenceWarning{Keys: failed, Err: errors.Join(errs...)}
	if s.onPersistFailure != nil {
		s.onPersistFailure(w)
	}
	return w
}

func (s *Store) write(key string) error {
	switch key {
	case model.KeyRadios:
		return storage.SaveCollection(s.backend, key, s.radios)
	case model.KeyCityHalls:
		return storage.SaveCollection(s.backend, key, s.cityHalls)
	case model.KeyBusinesses:
		return storage.SaveCollection(s.backend, key, s.businesses)
	case model.KeyArtists:
		return storage.SaveCollection(s.backend, key, s.artists)
	case model.KeyMusic:
		return storage.SaveCollection(s.backend, key, s.music)
	case model.KeyPromotions:
		return storage.SaveCollection(s.backend, key, s.promotions)
	case model.KeyEvents:
		return storage.SaveCollection(s.backend, key, s.events)
	case model.KeyMusicalBlitzes:
		return storage.SaveCollection(s.backend, key, s.blitzes)
	case model.KeyEmailCampaigns:
		return storage.SaveCollection(s.backend, key, s.campaigns)
	case model.KeyCrowleyMarkets:
		return storage.SaveCollection(s.backend, key, s.markets)
	case model.KeyRadioSubmissions:
		return storage.SaveCollection(s.backend, key, s.submissions)
	case model.KeySheetsConfig:
		return s.sheets.Update(s.sheetsConfig)
	case model.KeyActiveView:
		return s.prefs.SetActiveView(s.activeView)
	case model.KeyTheme:
		return s.prefs.SetTheme(s.theme)
	}
	return fmt.Errorf("unknown collection key %q", key)
}

// timestamp returns the current time in TimestampLayout.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(TimestampLayout)
}
