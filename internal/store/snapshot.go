package store

import (
	"slices"

	"github.com/manav03panchal/controleplus/internal/model"
)

// Snapshot is a point-in-time copy of every collection. The store never
// modifies a snapshot after returning it.
type Snapshot struct {
	Radios      []model.RadioStation
	CityHalls   []model.CityHall
	Businesses  []model.Business
	Artists     []model.Artist
	Music       []model.Music
	Promotions  []model.Promotion
	Events      []model.AppEvent
	Blitzes     []model.MusicalBlitz
	Campaigns   []model.EmailCampaign
	Markets     []string
	Submissions []model.RadioSubmission
	SheetsURL   string
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Radios:      slices.Clone(s.radios),
		CityHalls:   slices.Clone(s.cityHalls),
		Businesses:  slices.Clone(s.businesses),
		Artists:     slices.Clone(s.artists),
		Music:       slices.Clone(s.music),
		Promotions:  slices.Clone(s.promotions),
		Events:      slices.Clone(s.events),
		Blitzes:     slices.Clone(s.blitzes),
		Campaigns:   slices.Clone(s.campaigns),
		Markets:     slices.Clone(s.markets),
		Submissions: slices.Clone(s.submissions),
		SheetsURL:   s.sheetsConfig.SheetsURL,
	}
}

// Radio returns the radio station with the given id.
func (s *Store) Radio(id string) (model.RadioStation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.radios, id)
}

// CityHall returns the city hall with the given id.
func (s *Store) CityHall(id string) (model.CityHall, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.cityHalls, id)
}

// Business returns the business with the given id.
func (s *Store) Business(id string) (model.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.businesses, id)
}

// Artist returns the artist with the given id.
func (s *Store) Artist(id string) (model.Artist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.artists, id)
}

// Music returns the song with the given id.
func (s *Store) Music(id string) (model.Music, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.music, id)
}

// Promotion returns the promotion with the given id.
func (s *Store) Promotion(id string) (model.Promotion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.promotions, id)
}

// Event returns the event with the given id.
func (s *Store) Event(id string) (model.AppEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.events, id)
}

// Blitz returns the blitz visit with the given id.
func (s *Store) Blitz(id string) (model.MusicalBlitz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.blitzes, id)
}

// Campaign returns the campaign with the given id.
func (s *Store) Campaign(id string) (model.EmailCampaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.campaigns, id)
}
