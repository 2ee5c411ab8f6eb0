package views

import (
	"slices"
	"strings"
	"time"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/store"
)

const (
	// ReminderDays is the horizon of the startup release reminder.
	ReminderDays = 7
	// DashboardReleaseDays is the horizon of the dashboard release panel.
	DashboardReleaseDays = 30
)

// Stats counts the active records of every kind.
type Stats struct {
	Radios      int
	CityHalls   int
	Businesses  int
	Artists     int
	Music       int
	Promotions  int
	Events      int
	Blitzes     int
	Campaigns   int
	Submissions int
}

// DashboardStats summarizes a snapshot.
func DashboardStats(snap store.Snapshot) Stats {
	return Stats{
		Radios:      len(Active(snap.Radios)),
		CityHalls:   len(Active(snap.CityHalls)),
		Businesses:  len(Active(snap.Businesses)),
		Artists:     len(Active(snap.Artists)),
		Music:       len(Active(snap.Music)),
		Promotions:  len(Active(snap.Promotions)),
		Events:      len(Active(snap.Events)),
		Blitzes:     len(Active(snap.Blitzes)),
		Campaigns:   len(Active(snap.Campaigns)),
		Submissions: len(snap.Submissions),
	}
}

// Release is an upcoming song with its artist and countdown.
type Release struct {
	Music      model.Music
	ArtistName string
	Status     *classify.Status
}

// UpcomingReleases lists active, visible songs of active artists whose
// release date falls between today and today plus days, soonest first.
func UpcomingReleases(snap store.Snapshot, now time.Time, days int) []Release {
	names := artistNames(Active(snap.Artists))
	today := classify.Midnight(now)
	last := today.AddDate(0, 0, days)

	var out []Release
	for _, m := range Active(snap.Music) {
		name, ok := names[m.ArtistID]
		if !ok || m.HideFromDashboard {
			continue
		}
		release, ok := classify.ParseDate(m.ReleaseDate, now.Location())
		if !ok || release.Before(today) || release.After(last) {
			continue
		}
		out = append(out, Release{
			Music:      m,
			ArtistName: name,
			Status:     classify.ReleaseStatus(m.ReleaseDate, now),
		})
	}
	slices.SortStableFunc(out, func(a, b Release) int {
		return strings.Compare(a.Music.ReleaseDate, b.Music.ReleaseDate)
	})
	return out
}

// ArchiveCount is the number of archived records of one kind.
type ArchiveCount struct {
	Kind  model.Kind
	Count int
}

// ArchiveOverview counts archived records per kind in display order.
func ArchiveOverview(snap store.Snapshot) []ArchiveCount {
	counts := map[model.Kind]int{
		model.KindRadio:     len(Archived(snap.Radios)),
		model.KindCityHall:  len(Archived(snap.CityHalls)),
		model.KindBusiness:  len(Archived(snap.Businesses)),
		model.KindArtist:    len(Archived(snap.Artists)),
		model.KindMusic:     len(Archived(snap.Music)),
		model.KindPromotion: len(Archived(snap.Promotions)),
		model.KindEvent:     len(Archived(snap.Events)),
		model.KindBlitz:     len(Archived(snap.Blitzes)),
		model.KindCampaign:  len(Archived(snap.Campaigns)),
	}
	out := make([]ArchiveCount, 0, len(model.Kinds))
	for _, k := range model.Kinds {
		out = append(out, ArchiveCount{Kind: k, Count: counts[k]})
	}
	return out
}
