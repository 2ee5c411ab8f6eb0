package store

import (
	"slices"

	"github.com/manav03panchal/controleplus/internal/backup"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// backupKeys are the collections a backup replaces.
var backupKeys = []string{
	model.KeyRadios, model.KeyCityHalls, model.KeyBusinesses, model.KeyArtists,
	model.KeyMusic, model.KeyPromotions, model.KeyEvents, model.KeyMusicalBlitzes,
	model.KeyEmailCampaigns, model.KeyCrowleyMarkets,
}

// ExportBackup copies the backed up collections into a document.
func (s *Store) ExportBackup() *backup.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := &backup.Document{
		Radios:         slices.Clone(s.radios),
		CityHalls:      slices.Clone(s.cityHalls),
		Businesses:     slices.Clone(s.businesses),
		Artists:        slices.Clone(s.artists),
		Music:          slices.Clone(s.music),
		Promotions:     slices.Clone(s.promotions),
		Events:         slices.Clone(s.events),
		MusicalBlitzes: slices.Clone(s.blitzes),
		EmailCampaigns: slices.Clone(s.campaigns),
		CrowleyMarkets: slices.Clone(s.markets),
	}
	doc.Normalize()
	return doc
}

// ImportBackup replaces every backed up collection with the document's
// contents. Collections missing from the document become empty. Pending
// submissions and settings are kept.
func (s *Store) ImportBackup(doc *backup.Document) error {
	if doc == nil {
		return errors.NewUserError("backup is empty", errors.GetSuggestion(errors.ErrBackupCorrupted)).
			WithCause(errors.ErrBackupCorrupted)
	}
	in := *doc
	in.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.radios = slices.Clone(in.Radios)
	s.cityHalls = slices.Clone(in.CityHalls)
	s.businesses = slices.Clone(in.Businesses)
	s.artists = slices.Clone(in.Artists)
	s.music = slices.Clone(in.Music)
	s.promotions = slices.Clone(in.Promotions)
	s.events = slices.Clone(in.Events)
	s.blitzes = slices.Clone(in.MusicalBlitzes)
	s.campaigns = slices.Clone(in.EmailCampaigns)
	s.markets = slices.Clone(in.CrowleyMarkets)
	return s.persist(backupKeys...)
}
