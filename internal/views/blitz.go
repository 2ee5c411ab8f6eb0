package views

import (
	"slices"
	"strings"
	"time"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
)

// BlitzEntry is a blitz visit joined with its song and artist.
type BlitzEntry struct {
	Blitz     model.MusicalBlitz
	Music     model.Music
	Artist    model.Artist
	Countdown classify.Status
}

// BlitzAgenda splits the blitz visits into the current Monday to Friday
// window and the visits after it.
type BlitzAgenda struct {
	Week     classify.Window
	ThisWeek []BlitzEntry
	Future   []BlitzEntry
}

// Agenda joins active blitz visits with their song and artist, drops those
// whose song or artist is gone, keeps the ones matching term and splits
// them around BlitzWeek(now). Past visits outside the week are omitted.
func Agenda(blitzes []model.MusicalBlitz, music []model.Music, artists []model.Artist,
	term string, now time.Time) BlitzAgenda {
	songs := make(map[string]model.Music, len(music))
	for _, m := range music {
		songs[m.ID] = m
	}
	byID := make(map[string]model.Artist, len(artists))
	for _, a := range artists {
		byID[a.ID] = a
	}

	var entries []BlitzEntry
	for _, b := range Active(blitzes) {
		song, ok := songs[b.MusicID]
		if !ok {
			continue
		}
		artist, ok := byID[song.ArtistID]
		if !ok {
			continue
		}
		entries = append(entries, BlitzEntry{
			Blitz:     b,
			Music:     song,
			Artist:    artist,
			Countdown: classify.BlitzCountdown(b.EventDate, now),
		})
	}
	entries = Search(entries, term, func(e BlitzEntry) []string {
		return []string{e.Artist.Name, e.Music.Title}
	})

	agenda := BlitzAgenda{Week: classify.BlitzWeek(now)}
	for _, e := range entries {
		date, ok := classify.ParseDate(e.Blitz.EventDate, now.Location())
		if !ok {
			continue
		}
		switch {
		case agenda.Week.Contains(date):
			agenda.ThisWeek = append(agenda.ThisWeek, e)
		case date.After(agenda.Week.End):
			agenda.Future = append(agenda.Future, e)
		}
	}
	byDate := func(a, b BlitzEntry) int {
		return strings.Compare(a.Blitz.EventDate, b.Blitz.EventDate)
	}
	slices.SortStableFunc(agenda.ThisWeek, byDate)
	slices.SortStableFunc(agenda.Future, byDate)
	return agenda
}
