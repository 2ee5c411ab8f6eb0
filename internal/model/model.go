// Package model defines the domain records for Controle Plus.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Record is the interface every archivable collection element implements.
type Record interface {
	// GetID returns the record identifier.
	GetID() string
	// SetID sets the record identifier.
	SetID(id string)
	// Archived reports whether the record is soft-deleted.
	Archived() bool
	// SetArchived sets the soft-delete flag.
	SetArchived(archived bool)
}

// Storage keys for every persisted collection and singleton.
const (
	KeyRadios           = "radios"
	KeyCityHalls        = "cityHalls"
	KeyBusinesses       = "businesses"
	KeyArtists          = "artists"
	KeyMusic            = "music"
	KeyPromotions       = "promotions"
	KeyEvents           = "events"
	KeyMusicalBlitzes   = "musicalBlitzes"
	KeyEmailCampaigns   = "emailCampaigns"
	KeyCrowleyMarkets   = "crowleyMarkets"
	KeyRadioSubmissions = "radioSubmissions"
	KeySheetsConfig     = "sheetsConfig"
	KeyActiveView       = "activeView"
	KeyTheme            = "theme"
)

// IDPrefix is prepended to every generated record identifier.
const IDPrefix = "id_"

// TempIDPrefix marks music rows created in the artist editor that have not
// been saved yet.
const TempIDPrefix = "temp-"

// NewID returns a fresh, time-ordered record identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return IDPrefix + uuid.NewString()
	}
	return IDPrefix + id.String()
}

// IsTempID reports whether id is a placeholder for an unsaved record.
func IsTempID(id string) bool {
	return id == "" || strings.HasPrefix(id, TempIDPrefix)
}

// SheetsConfig holds the spreadsheet endpoint used for form submissions.
type SheetsConfig struct {
	SheetsURL string `json:"sheetsUrl"`
}

// DefaultSheetsConfig returns the configuration used before the user sets one.
func DefaultSheetsConfig() SheetsConfig {
	return SheetsConfig{}
}
