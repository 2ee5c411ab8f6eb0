package store

import (
	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// Save creates or updates rec in the collection of kind and returns its id.
// A record whose id matches a stored one replaces it in place; any other
// record is appended under a fresh id.
func (s *Store) Save(kind model.Kind, rec model.Record) (string, error) {
	switch r := rec.(type) {
	case *model.RadioStation:
		if kind == model.KindRadio {
			return s.SaveRadio(*r)
		}
	case *model.CityHall:
		if kind == model.KindCityHall {
			return s.SaveCityHall(*r)
		}
	case *model.Business:
		if kind == model.KindBusiness {
			return s.SaveBusiness(*r)
		}
	case *model.Artist:
		if kind == model.KindArtist {
			return s.SaveArtist(*r)
		}
	case *model.Music:
		if kind == model.KindMusic {
			return s.SaveMusic(*r)
		}
	case *model.Promotion:
		if kind == model.KindPromotion {
			return s.savePromotionRecord(*r)
		}
	case *model.AppEvent:
		if kind == model.KindEvent {
			return s.SaveEvent(*r)
		}
	case *model.MusicalBlitz:
		if kind == model.KindBlitz {
			return s.SaveBlitz(*r)
		}
	case *model.EmailCampaign:
		if kind == model.KindCampaign {
			return s.RecordCampaign(*r)
		}
	}
	return "", errors.NewUserErrorWithField("kind", kind.String(),
		"record does not belong to this collection", "").WithCause(errors.ErrUnknownKind)
}

// SaveRadio creates or updates a radio station. Markets are dropped from
// stations that are not Crowley audited.
func (s *Store) SaveRadio(r model.RadioStation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveRadio(r)
}

func (s *Store) saveRadio(r model.RadioStation) (string, error) {
	if !r.IsCrowleyAudited {
		r.CrowleyMarkets = nil
	}
	var id string
	s.radios, id = upsert(s.radios, r)
	return id, s.persist(model.KeyRadios)
}

// SaveCityHall creates or updates a city hall.
func (s *Store) SaveCityHall(c model.CityHall) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	s.cityHalls, id = upsert(s.cityHalls, c)
	return id, s.persist(model.KeyCityHalls)
}

// SaveBusiness creates or updates a business.
func (s *Store) SaveBusiness(b model.Business) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	s.businesses, id = upsert(s.businesses, b)
	return id, s.persist(model.KeyBusinesses)
}

// SaveEvent creates or updates an event.
func (s *Store) SaveEvent(e model.AppEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	s.events, id = upsert(s.events, e)
	return id, s.persist(model.KeyEvents)
}

// SaveArtist creates or updates an artist. A new artist is stamped with the
// current time; an existing one keeps its stored createdAt.
func (s *Store) SaveArtist(a model.Artist) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.putArtist(a)
	return id, s.persist(model.KeyArtists)
}

func (s *Store) putArtist(a model.Artist) string {
	if stored, ok := find(s.artists, a.ID); ok {
		a.CreatedAt = stored.CreatedAt
	} else {
		a.CreatedAt = s.timestamp()
	}
	var id string
	s.artists, id = upsert(s.artists, a)
	return id
}

// SaveMusic creates or updates a song. The release date must fall on a
// weekday and the song must belong to a stored artist; on rejection nothing
// changes.
func (s *Store) SaveMusic(m model.Music) (string, error) {
	if err := classify.CheckWeekday(m.ReleaseDate); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ArtistID == "" {
		return "", errors.NewUserError("song has no artist", errors.GetSuggestion(errors.ErrMissingArtist)).
			WithCause(errors.ErrMissingArtist)
	}
	if indexOf(s.artists, m.ArtistID) < 0 {
		return "", errors.NotFound("artist", m.ArtistID)
	}
	if stored, ok := find(s.music, m.ID); ok {
		if m.CreatedAt == "" {
			m.CreatedAt = stored.CreatedAt
		}
	} else if m.CreatedAt == "" {
		m.CreatedAt = s.timestamp()
	}

	var id string
	s.music, id = upsert(s.music, m)
	return id, s.persist(model.KeyMusic)
}

// SaveBlitz creates or updates a blitz visit. The event date must fall on a
// weekday and the song must exist; on rejection nothing changes.
func (s *Store) SaveBlitz(b model.MusicalBlitz) (string, error) {
	if err := classify.CheckWeekday(b.EventDate); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b.MusicID == "" {
		return "", errors.NewUserError("blitz has no song", errors.GetSuggestion(errors.ErrMissingMusic)).
			WithCause(errors.ErrMissingMusic)
	}
	if indexOf(s.music, b.MusicID) < 0 {
		return "", errors.NotFound("song", b.MusicID)
	}

	var id string
	s.blitzes, id = upsert(s.blitzes, b)
	return id, s.persist(model.KeyMusicalBlitzes)
}

// SaveArtistWithMusic saves the artist editor in one step: songs listed in
// deleteIDs are removed first, songs with a temporary id are created for
// the artist and the rest are merged into the stored songs by id.
// Every release date is checked before anything changes.
func (s *Store) SaveArtistWithMusic(a model.Artist, songs []model.MusicEdit, deleteIDs []string) (string, error) {
	for _, edit := range songs {
		if edit.ReleaseDate == nil {
			continue
		}
		if err := classify.CheckWeekday(*edit.ReleaseDate); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	isNew := indexOf(s.artists, a.ID) < 0
	for _, edit := range songs {
		if model.IsTempID(edit.ID) {
			continue
		}
		m, ok := find(s.music, edit.ID)
		if !ok || isNew || m.ArtistID != a.ID {
			return "", errors.NotFound("song", edit.ID)
		}
	}

	id := s.putArtist(a)

	if len(deleteIDs) > 0 {
		drop := make(map[string]bool, len(deleteIDs))
		for _, d := range deleteIDs {
			drop[d] = true
		}
		s.music, _ = without(s.music, func(m *model.Music) bool {
			return m.ArtistID == id && drop[m.ID]
		})
	}

	for _, edit := range songs {
		if model.IsTempID(edit.ID) {
			m := model.Music{ID: model.NewID(), ArtistID: id, CreatedAt: s.timestamp()}
			edit.Apply(&m)
			s.music = append(s.music, m)
			continue
		}
		if i := indexOf(s.music, edit.ID); i >= 0 {
			edit.Apply(&s.music[i])
		}
	}

	return id, s.persist(model.KeyArtists, model.KeyMusic)
}

// ToggleMusicDashboard flips whether a song is hidden from the dashboard
// reminders and returns the new value.
func (s *Store) ToggleMusicDashboard(id string) (hidden bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.music, id)
	if i < 0 {
		return false, errors.NotFound("song", id)
	}
	s.music[i].HideFromDashboard = !s.music[i].HideFromDashboard
	return s.music[i].HideFromDashboard, s.persist(model.KeyMusic)
}

// RecordCampaign stores a sent email campaign. The campaign gets a fresh
// id, sentAt is set to now and recipientCount to the number of recipients.
// Campaigns cannot be edited afterwards.
func (s *Store) RecordCampaign(c model.EmailCampaign) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.campaigns, c.ID) >= 0 {
		return "", errors.NewUserErrorWithField("id", c.ID,
			"campaign already recorded", errors.GetSuggestion(errors.ErrImmutable)).
			WithCause(errors.ErrImmutable)
	}
	c.ID = model.NewID()
	c.SentAt = s.timestamp()
	if c.RecipientIDs == nil {
		c.RecipientIDs = []string{}
	}
	c.RecipientCount = len(c.RecipientIDs)
	s.campaigns = append(s.campaigns, c)
	return c.ID, s.persist(model.KeyEmailCampaigns)
}
