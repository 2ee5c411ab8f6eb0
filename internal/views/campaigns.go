package views

import (
	"net/url"
	"strings"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/store"
)

// RecipientFilter selects the audience of a campaign. Empty fields match
// anything; fields that do not apply to the category are ignored.
type RecipientFilter struct {
	State         string
	DDD           string
	Profile       model.RadioProfile
	Type          model.RadioType
	CrowleyMarket string
	Category      string
}

// Recipient is one addressee of a campaign.
type Recipient struct {
	ID    string
	Name  string
	Email string
}

// Recipients lists the active contacts of category matching f.
func Recipients(snap store.Snapshot, category model.RecipientCategory, f RecipientFilter) []Recipient {
	var out []Recipient
	switch category {
	case model.RecipientRadios:
		for _, r := range Active(snap.Radios) {
			if f.matchRadio(r) {
				out = append(out, Recipient{ID: r.ID, Name: r.Name, Email: r.Email})
			}
		}
	case model.RecipientCityHalls:
		for _, c := range Active(snap.CityHalls) {
			if f.matchArea(c.State, c.Phone, c.WhatsApp) {
				out = append(out, Recipient{ID: c.ID, Name: c.CityName, Email: c.Email})
			}
		}
	case model.RecipientBusinesses:
		for _, b := range Active(snap.Businesses) {
			if f.matchArea(b.State, b.Phone, b.WhatsApp) && (f.Category == "" || b.Category == f.Category) {
				out = append(out, Recipient{ID: b.ID, Name: b.Name, Email: b.Email})
			}
		}
	}
	return out
}

func (f RecipientFilter) matchArea(state, phone, whatsapp string) bool {
	if f.State != "" && state != f.State {
		return false
	}
	if f.DDD == "" {
		return true
	}
	info, ok := StationDDD(phone, whatsapp)
	return ok && info.DDD == f.DDD
}

func (f RecipientFilter) matchRadio(r model.RadioStation) bool {
	if !f.matchArea(r.State, r.Phone, r.WhatsApp) {
		return false
	}
	if f.Profile != "" && r.Profile != f.Profile {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.CrowleyMarket == "" {
		return true
	}
	for _, m := range r.CrowleyMarkets {
		if m == f.CrowleyMarket {
			return true
		}
	}
	return false
}

// Summary describes the filter the way it is stored on the campaign, for
// example "Estado: SP | DDD: 11". Without filters it names the whole
// category.
func (f RecipientFilter) Summary(category model.RecipientCategory) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}

	add("Estado", f.State)
	add("DDD", f.DDD)
	switch category {
	case model.RecipientRadios:
		add("Perfil", string(f.Profile))
		add("Tipo", string(f.Type))
		add("Praça Crowley", f.CrowleyMarket)
	case model.RecipientBusinesses:
		add("Categoria", f.Category)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " | ")
	}

	switch category {
	case model.RecipientRadios:
		return "Todas as Rádios"
	case model.RecipientCityHalls:
		return "Todas as Prefeituras"
	case model.RecipientBusinesses:
		return "Todos os Empresários"
	}
	return "N/A"
}

// RecipientIDs returns the ids of rs.
func RecipientIDs(rs []Recipient) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

// MailtoLimit is the longest mailto link handed to a mail client. Longer
// recipient lists are printed for pasting into the BCC field instead.
const MailtoLimit = 2000

// CampaignBody appends the WAV download link to body when there is one.
func CampaignBody(body, downloadLink string) string {
	if downloadLink == "" {
		return body
	}
	return body + "\n\n---\nBaixe a música em alta qualidade (WAV):\n" + downloadLink
}

// Emails returns the non-empty addresses of rs.
func Emails(rs []Recipient) []string {
	var out []string
	for _, r := range rs {
		if e := strings.TrimSpace(r.Email); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Mailto builds the mailto link of a campaign with the recipients in BCC.
// When that link exceeds MailtoLimit it returns the link without recipients
// and fits is false.
func Mailto(emails []string, subject, body string) (link string, fits bool) {
	query := "subject=" + escapeComponent(subject) + "&body=" + escapeComponent(body)
	full := "mailto:?bcc=" + strings.Join(emails, ",") + "&" + query
	if len(full) <= MailtoLimit {
		return full, true
	}
	return "mailto:?" + query, false
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
