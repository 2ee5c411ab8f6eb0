package views

import (
	"slices"
	"strings"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/textutil"
)

// PromotionFilter narrows the promotion list. Empty fields match anything.
// City is matched as a normalized substring; the rest exactly.
type PromotionFilter struct {
	ArtistID      string
	Type          model.PromotionType
	State         string
	CrowleyMarket string
	City          string
}

// PromotionRow is a promotion joined with its station, artist and song.
type PromotionRow struct {
	Promotion  model.Promotion
	Radio      model.RadioStation
	ArtistName string
	MusicTitle string
}

// FilterPromotions joins promotions with their stations, drops those whose
// station no longer exists, applies f and orders Verba deals first, then by
// end date.
func FilterPromotions(promotions []model.Promotion, radios []model.RadioStation,
	artists []model.Artist, music []model.Music, f PromotionFilter) []PromotionRow {
	stations := make(map[string]model.RadioStation, len(radios))
	for _, r := range radios {
		stations[r.ID] = r
	}
	names := artistNames(artists)
	titles := make(map[string]string, len(music))
	for _, m := range music {
		titles[m.ID] = m.Title
	}

	var out []PromotionRow
	for _, p := range promotions {
		radio, ok := stations[p.RadioStationID]
		if !ok || !f.matches(p, radio) {
			continue
		}
		out = append(out, PromotionRow{
			Promotion:  p,
			Radio:      radio,
			ArtistName: names[p.ArtistID],
			MusicTitle: titles[p.MusicID],
		})
	}

	slices.SortStableFunc(out, func(a, b PromotionRow) int {
		av, bv := a.Promotion.Type == model.PromotionVerba, b.Promotion.Type == model.PromotionVerba
		switch {
		case av && !bv:
			return -1
		case !av && bv:
			return 1
		}
		return strings.Compare(a.Promotion.EndDate, b.Promotion.EndDate)
	})
	return out
}

func (f PromotionFilter) matches(p model.Promotion, radio model.RadioStation) bool {
	if f.ArtistID != "" && p.ArtistID != f.ArtistID {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.State != "" && radio.State != f.State {
		return false
	}
	if f.CrowleyMarket != "" && !slices.Contains(radio.CrowleyMarkets, f.CrowleyMarket) {
		return false
	}
	return textutil.Contains(radio.City, f.City)
}

// TotalVerba sums the value of the Verba deals among rows.
func TotalVerba(rows []PromotionRow) float64 {
	var total float64
	for _, r := range rows {
		if r.Promotion.Type == model.PromotionVerba && r.Promotion.Value != nil {
			total += *r.Promotion.Value
		}
	}
	return total
}

// PromotionFilterOptions lists the distinct values offered by the filters,
// taken from the promotions and the stations they use.
type PromotionFilterOptions struct {
	States  []string
	Cities  []string
	Types   []model.PromotionType
	Markets []string
}

// FilterOptions collects the sorted distinct filter values.
func FilterOptions(promotions []model.Promotion, radios []model.RadioStation) PromotionFilterOptions {
	inUse := make(map[string]bool, len(promotions))
	var opts PromotionFilterOptions
	for _, p := range promotions {
		inUse[p.RadioStationID] = true
		opts.Types = append(opts.Types, p.Type)
	}
	for _, r := range radios {
		if !inUse[r.ID] {
			continue
		}
		opts.States = append(opts.States, r.State)
		opts.Cities = append(opts.Cities, r.City)
		opts.Markets = append(opts.Markets, r.CrowleyMarkets...)
	}
	opts.States = distinct(opts.States)
	opts.Cities = distinct(opts.Cities)
	opts.Types = distinct(opts.Types)
	opts.Markets = distinct(opts.Markets)
	return opts
}

func distinct[T ~string](values []T) []T {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
