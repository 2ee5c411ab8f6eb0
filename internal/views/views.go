// Package views derives the lists, filters and summaries shown by the CLI and
// the live dashboard from store snapshots. Every function is pure: inputs are
// never modified and results are fresh slices.
package views

import (
	"cmp"
	"slices"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/textutil"
)

// archivable is satisfied by pointers to every record type.
type archivable[T any] interface {
	*T
	Archived() bool
}

// Active returns the records that are not archived.
func Active[T any, P archivable[T]](items []T) []T {
	return partition[T, P](items, false)
}

// Archived returns the archived records.
func Archived[T any, P archivable[T]](items []T) []T {
	return partition[T, P](items, true)
}

func partition[T any, P archivable[T]](items []T, archived bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).Archived() == archived {
			out = append(out, items[i])
		}
	}
	return out
}

// SortArtists orders artists by name with Portuguese collation.
func SortArtists(artists []model.Artist) []model.Artist {
	out := slices.Clone(artists)
	slices.SortStableFunc(out, func(a, b model.Artist) int {
		return textutil.Compare(a.Name, b.Name)
	})
	return out
}

// SortEvents orders events by date, earliest first.
func SortEvents(events []model.AppEvent) []model.AppEvent {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b model.AppEvent) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return out
}

// SortCampaigns orders campaigns by send time, newest first.
func SortCampaigns(campaigns []model.EmailCampaign) []model.EmailCampaign {
	out := slices.Clone(campaigns)
	slices.SortStableFunc(out, func(a, b model.EmailCampaign) int {
		return cmp.Compare(b.SentAt, a.SentAt)
	})
	return out
}

// MusicOption is a song offered in the blitz picker.
type MusicOption struct {
	Music      model.Music
	ArtistName string
}

// Label is "Artist - Title".
func (o MusicOption) Label() string {
	return o.ArtistName + " - " + o.Music.Title
}

// BlitzMusicOptions lists the active songs of active artists ordered by
// artist name, then title.
func BlitzMusicOptions(artists []model.Artist, music []model.Music) []MusicOption {
	names := artistNames(Active(artists))
	var out []MusicOption
	for _, m := range Active(music) {
		name, ok := names[m.ArtistID]
		if !ok {
			continue
		}
		out = append(out, MusicOption{Music: m, ArtistName: name})
	}
	slices.SortStableFunc(out, func(a, b MusicOption) int {
		if c := textutil.Compare(a.ArtistName, b.ArtistName); c != 0 {
			return c
		}
		return textutil.Compare(a.Music.Title, b.Music.Title)
	})
	return out
}

func artistNames(artists []model.Artist) map[string]string {
	names := make(map[string]string, len(artists))
	for _, a := range artists {
		names[a.ID] = a.Name
	}
	return names
}
