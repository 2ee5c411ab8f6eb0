package store

import (
	"slices"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// recordPtr lets the generic helpers call model.Record methods on slice
// elements stored by value.
type recordPtr[T any] interface {
	*T
	model.Record
}

func indexOf[T any, P recordPtr[T]](items []T, id string) int {
	if id == "" {
		return -1
	}
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func find[T any, P recordPtr[T]](items []T, id string) (T, bool) {
	if i := indexOf[T, P](items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// upsert replaces the element whose id matches rec in place. Otherwise rec
// is appended with a fresh id.
func upsert[T any, P recordPtr[T]](items []T, rec T) ([]T, string) {
	p := P(&rec)
	if i := indexOf[T, P](items, p.GetID()); i >= 0 {
		items[i] = rec
		return items, p.GetID()
	}
	p.SetID(model.NewID())
	return append(items, rec), p.GetID()
}

func without[T any, P recordPtr[T]](items []T, drop func(P) bool) ([]T, int) {
	out := make([]T, 0, len(items))
	for i := range items {
		if !drop(P(&items[i])) {
			out = append(out, items[i])
		}
	}
	return out, len(items) - len(out)
}

// withoutString returns a copy of ids without id. The input slice is never
// modified because snapshots may share it.
func withoutString(ids []string, id string) []string {
	if !slices.Contains(ids, id) {
		return ids
	}
	out := make([]string, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// collection is the kind-independent view of one record slice.
type collection interface {
	key() string
	exists(id string) bool
	setArchived(id string, archived bool) bool
	remove(id string) bool
	archivedIDs() []string
	removeArchived() int
	counts() (active, archived int)
}

type records[T any, P recordPtr[T]] struct {
	k     model.Kind
	items *[]T
}

func (c records[T, P]) key() string { return c.k.Key() }

func (c records[T, P]) exists(id string) bool {
	return indexOf[T, P](*c.items, id) >= 0
}

func (c records[T, P]) setArchived(id string, archived bool) bool {
	i := indexOf[T, P](*c.items, id)
	if i < 0 {
		return false
	}
	P(&(*c.items)[i]).SetArchived(archived)
	return true
}

func (c records[T, P]) remove(id string) bool {
	out, n := without(*c.items, func(p P) bool { return p.GetID() == id })
	if n == 0 {
		return false
	}
	*c.items = out
	return true
}

func (c records[T, P]) archivedIDs() []string {
	var ids []string
	for i := range *c.items {
		if p := P(&(*c.items)[i]); p.Archived() {
			ids = append(ids, p.GetID())
		}
	}
	return ids
}

func (c records[T, P]) removeArchived() int {
	out, n := without(*c.items, func(p P) bool { return p.Archived() })
	*c.items = out
	return n
}

func (c records[T, P]) counts() (active, archived int) {
	for i := range *c.items {
		if P(&(*c.items)[i]).Archived() {
			archived++
		} else {
			active++
		}
	}
	return active, archived
}

// collection returns the record slice for kind. Callers hold s.mu.
func (s *Store) collection(kind model.Kind) (collection, error) {
	switch kind {
	case model.KindRadio:
		return records[model.RadioStation, *model.RadioStation]{kind, &s.radios}, nil
	case model.KindCityHall:
		return records[model.CityHall, *model.CityHall]{kind, &s.cityHalls}, nil
	case model.KindBusiness:
		return records[model.Business, *model.Business]{kind, &s.businesses}, nil
	case model.KindArtist:
		return records[model.Artist, *model.Artist]{kind, &s.artists}, nil
	case model.KindMusic:
		return records[model.Music, *model.Music]{kind, &s.music}, nil
	case model.KindPromotion:
		return records[model.Promotion, *model.Promotion]{kind, &s.promotions}, nil
	case model.KindEvent:
		return records[model.AppEvent, *model.AppEvent]{kind, &s.events}, nil
	case model.KindBlitz:
		return records[model.MusicalBlitz, *model.MusicalBlitz]{kind, &s.blitzes}, nil
	case model.KindCampaign:
		return records[model.EmailCampaign, *model.EmailCampaign]{kind, &s.campaigns}, nil
	}
	return nil, errors.NewUserErrorWithField("kind", kind.String(),
		"unknown record kind", errors.GetSuggestion(errors.ErrUnknownKind)).WithCause(errors.ErrUnknownKind)
}

// cascade describes what else changes when a record of a kind is archived
// or purged. Each function returns the keys it touched.
type cascade struct {
	archive func(s *Store, id string) []string
	purge   func(s *Store, id string) []string
}

func none(*Store, string) []string { return nil }

func cascadeFor(kind model.Kind) cascade {
	switch kind {
	case model.KindArtist:
		return cascade{archive: (*Store).archiveArtistMusic, purge: (*Store).purgeArtistReferences}
	case model.KindRadio, model.KindCityHall, model.KindBusiness, model.KindMusic,
		model.KindPromotion, model.KindEvent, model.KindBlitz, model.KindCampaign:
		return cascade{archive: none, purge: none}
	}
	return cascade{archive: none, purge: none}
}

// archiveArtistMusic archives every song of the artist.
func (s *Store) archiveArtistMusic(artistID string) []string {
	for i := range s.music {
		if s.music[i].ArtistID == artistID {
			s.music[i].IsArchived = true
		}
	}
	return []string{model.KeyMusic}
}

// purgeArtistReferences deletes the artist's songs and drops the artist id
// from promotions, events and businesses.
func (s *Store) purgeArtistReferences(artistID string) []string {
	s.music, _ = without(s.music, func(m *model.Music) bool { return m.ArtistID == artistID })

	for i := range s.promotions {
		if s.promotions[i].ArtistID == artistID {
			s.promotions[i].ArtistID = ""
		}
	}
	for i := range s.events {
		s.events[i].LinkedArtistIDs = withoutString(s.events[i].LinkedArtistIDs, artistID)
	}
	for i := range s.businesses {
		s.businesses[i].ArtistIDs = withoutString(s.businesses[i].ArtistIDs, artistID)
	}
	return []string{model.KeyMusic, model.KeyPromotions, model.KeyEvents, model.KeyBusinesses}
}
