package model

import (
	"strings"

	"github.com/manav03panchal/controleplus/internal/errors"
)

// Kind identifies one archivable collection.
type Kind int

// Entity kinds.
const (
	KindRadio Kind = iota + 1
	KindCityHall
	KindBusiness
	KindArtist
	KindMusic
	KindPromotion
	KindEvent
	KindBlitz
	KindCampaign
)

// Kinds lists every kind in display order.
var Kinds = []Kind{
	KindRadio, KindCityHall, KindBusiness, KindArtist, KindMusic,
	KindPromotion, KindEvent, KindBlitz, KindCampaign,
}

// Key returns the storage key of the kind's collection.
func (k Kind) Key() string {
	switch k {
	case KindRadio:
		return KeyRadios
	case KindCityHall:
		return KeyCityHalls
	case KindBusiness:
		return KeyBusinesses
	case KindArtist:
		return KeyArtists
	case KindMusic:
		return KeyMusic
	case KindPromotion:
		return KeyPromotions
	case KindEvent:
		return KeyEvents
	case KindBlitz:
		return KeyMusicalBlitzes
	case KindCampaign:
		return KeyEmailCampaigns
	}
	return ""
}

// Tag returns the short name used on the command line.
func (k Kind) Tag() string {
	switch k {
	case KindRadio:
		return "radios"
	case KindCityHall:
		return "cityhalls"
	case KindBusiness:
		return "businesses"
	case KindArtist:
		return "artists"
	case KindMusic:
		return "music"
	case KindPromotion:
		return "promotions"
	case KindEvent:
		return "events"
	case KindBlitz:
		return "blitz"
	case KindCampaign:
		return "campaigns"
	}
	return ""
}

// Label returns the human readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindRadio:
		return "Rádios"
	case KindCityHall:
		return "Prefeituras"
	case KindBusiness:
		return "Empresários"
	case KindArtist:
		return "Artistas"
	case KindMusic:
		return "Músicas"
	case KindPromotion:
		return "Promoções"
	case KindEvent:
		return "Eventos"
	case KindBlitz:
		return "Blitz"
	case KindCampaign:
		return "Campanhas"
	}
	return "Desconhecido"
}

// Noun returns the singular English name used in messages.
func (k Kind) Noun() string {
	switch k {
	case KindRadio:
		return "radio station"
	case KindCityHall:
		return "city hall"
	case KindBusiness:
		return "business"
	case KindArtist:
		return "artist"
	case KindMusic:
		return "song"
	case KindPromotion:
		return "promotion"
	case KindEvent:
		return "event"
	case KindBlitz:
		return "blitz"
	case KindCampaign:
		return "campaign"
	}
	return "record"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindRadio && k <= KindCampaign
}

func (k Kind) String() string {
	return k.Tag()
}

// ParseKind resolves a command-line tag or storage key to a kind.
func ParseKind(s string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if needle == k.Tag() || needle == strings.ToLower(k.Key()) {
			return k, nil
		}
	}
	switch needle {
	case "radio":
		return KindRadio, nil
	case "cityhall", "city-halls", "prefeituras":
		return KindCityHall, nil
	case "business", "empresarios":
		return KindBusiness, nil
	case "artist", "artistas":
		return KindArtist, nil
	case "song", "songs":
		return KindMusic, nil
	case "promotion", "promocoes":
		return KindPromotion, nil
	case "event", "eventos":
		return KindEvent, nil
	case "blitzes", "musicalblitz":
		return KindBlitz, nil
	case "campaign", "emails":
		return KindCampaign, nil
	}
	return 0, errors.NewUserErrorWithField("kind", s,
		"unknown record kind",
		"Use one of: radios, cityhalls, businesses, artists, music, promotions, events, blitz, campaigns").
		WithCause(errors.ErrUnknownKind)
}
