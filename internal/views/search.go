package views

import (
	"strings"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/textutil"
)

// Search keeps the items where the normalized term occurs in any of the
// normalized fields. A blank term keeps everything.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	needle := textutil.Normalize(term)
	if needle == "" {
		return append([]T(nil), items...)
	}
	var out []T
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(textutil.Normalize(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// StationDDD returns the area code of the station phone, falling back to its
// WhatsApp number.
func StationDDD(phone, whatsapp string) (textutil.DDDInfo, bool) {
	if info, ok := textutil.LookupDDD(phone); ok {
		return info, true
	}
	return textutil.LookupDDD(whatsapp)
}

// RadioFields matches name, city, frequency and the area code with its
// region.
func RadioFields(r model.RadioStation) []string {
	fields := []string{r.Name, r.City, r.Frequency}
	if info, ok := StationDDD(r.Phone, r.WhatsApp); ok {
		fields = append(fields, info.DDD, info.Region.City, info.Region.State)
	}
	return fields
}

// CityHallFields matches city name and mayor.
func CityHallFields(c model.CityHall) []string {
	return []string{c.CityName, c.Mayor}
}

// BusinessFields matches name, contact, city, represented artist names and
// area codes of operation.
func BusinessFields(artists []model.Artist) func(model.Business) []string {
	names := artistNames(artists)
	return func(b model.Business) []string {
		fields := []string{b.Name, b.ContactPerson, b.City}
		for _, id := range b.ArtistIDs {
			fields = append(fields, names[id])
		}
		return append(fields, b.RegionsOfOperation...)
	}
}

// ArtistFields matches name, genre and the managing business name.
func ArtistFields(businesses []model.Business) func(model.Artist) []string {
	names := make(map[string]string, len(businesses))
	for _, b := range businesses {
		names[b.ID] = b.Name
	}
	return func(a model.Artist) []string {
		return []string{a.Name, string(a.Genre), names[a.BusinessID]}
	}
}

// EventFields matches name, venue, city and linked artist names.
func EventFields(artists []model.Artist) func(model.AppEvent) []string {
	names := artistNames(artists)
	return func(e model.AppEvent) []string {
		fields := []string{e.Name, e.Venue, e.City}
		for _, id := range e.LinkedArtistIDs {
			fields = append(fields, names[id])
		}
		return fields
	}
}

// MusicFields matches title and composers.
func MusicFields(m model.Music) []string {
	return []string{m.Title, m.Composers}
}

// SubmissionFields matches name and city.
func SubmissionFields(s model.RadioSubmission) []string {
	return []string{s.Name, s.City, s.Frequency}
}

// CampaignFields matches subject and filter summary.
func CampaignFields(c model.EmailCampaign) []string {
	return []string{c.Subject, c.RecipientFilter}
}

// MarketFields matches the market name.
func MarketFields(m string) []string {
	return []string{m}
}
