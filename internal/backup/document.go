// Package backup encodes the Controle Plus backup document and writes it to
// a local directory or an S3-compatible bucket.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// FilenamePrefix starts every backup file name.
const FilenamePrefix = "controle-plus-backup-"

// Document is the full backup of every saved collection. Submissions,
// spreadsheet settings and preferences are not part of a backup.
type Document struct {
	Radios         []model.RadioStation  `json:"radios"`
	CityHalls      []model.CityHall      `json:"cityHalls"`
	Businesses     []model.Business      `json:"businesses"`
	Artists        []model.Artist        `json:"artists"`
	Music          []model.Music         `json:"music"`
	Promotions     []model.Promotion     `json:"promotions"`
	Events         []model.AppEvent      `json:"events"`
	MusicalBlitzes []model.MusicalBlitz  `json:"musicalBlitzes"`
	EmailCampaigns []model.EmailCampaign `json:"emailCampaigns"`
	CrowleyMarkets []string              `json:"crowleyMarkets"`
}

// Normalize replaces every nil collection with an empty one.
func (d *Document) Normalize() {
	d.Radios = orEmpty(d.Radios)
	d.CityHalls = orEmpty(d.CityHalls)
	d.Businesses = orEmpty(d.Businesses)
	d.Artists = orEmpty(d.Artists)
	d.Music = orEmpty(d.Music)
	d.Promotions = orEmpty(d.Promotions)
	d.Events = orEmpty(d.Events)
	d.MusicalBlitzes = orEmpty(d.MusicalBlitzes)
	d.EmailCampaigns = orEmpty(d.EmailCampaigns)
	d.CrowleyMarkets = orEmpty(d.CrowleyMarkets)
}

// Total returns the number of records in the document, markets included.
func (d *Document) Total() int {
	return len(d.Radios) + len(d.CityHalls) + len(d.Businesses) + len(d.Artists) +
		len(d.Music) + len(d.Promotions) + len(d.Events) + len(d.MusicalBlitzes) +
		len(d.EmailCampaigns) + len(d.CrowleyMarkets)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Encode renders the document as JSON indented with two spaces.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	out := *doc
	out.Normalize()
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Decode parses a backup document completely before returning it. Absent or
// null collections decode as empty and unknown keys are ignored. Anything
// that is not a JSON object of collections is ErrBackupCorrupted.
func Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, corrupted(fmt.Errorf("expected a JSON object"))
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, corrupted(err)
	}
	doc.Normalize()
	return &doc, nil
}

func corrupted(cause error) error {
	return errors.NewUserError("could not read backup file: "+cause.Error(),
		errors.GetSuggestion(errors.ErrBackupCorrupted)).
		WithCause(fmt.Errorf("%w: %v", errors.ErrBackupCorrupted, cause))
}

// Filename returns the download name of a backup taken on the day of t.
func Filename(t time.Time) string {
	return FilenamePrefix + t.Format("2006-01-02") + ".json"
}
