package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ID Tests
// =============================================================================

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.True(t, strings.HasPrefix(id, IDPrefix))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsTempID(t *testing.T) {
	assert.True(t, IsTempID(""))
	assert.True(t, IsTempID("temp-1712345"))
	assert.False(t, IsTempID("id_0190"))
	assert.False(t, IsTempID("tem"))
}

// =============================================================================
// Kind Tests
// =============================================================================

func TestKindKeysAreDistinct(t *testing.T) {
	keys := make(map[string]bool)
	tags := make(map[string]bool)
	for _, k := range Kinds {
		assert.True(t, k.Valid())
		assert.NotEmpty(t, k.Key())
		assert.NotEqual(t, "record", k.Noun())
		assert.False(t, keys[k.Key()], "duplicate key %s", k.Key())
		assert.False(t, tags[k.Tag()], "duplicate tag %s", k.Tag())
		keys[k.Key()] = true
		tags[k.Tag()] = true
	}
	assert.Len(t, Kinds, 9)
}

func TestKindInvalid(t *testing.T) {
	var k Kind
	assert.False(t, k.Valid())
	assert.Equal(t, "", k.Key())
	assert.Equal(t, "Desconhecido", k.Label())
	assert.Equal(t, "record", k.Noun())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"radios", KindRadio},
		{"radio", KindRadio},
		{"cityHalls", KindCityHall},
		{" Prefeituras ", KindCityHall},
		{"businesses", KindBusiness},
		{"artist", KindArtist},
		{"music", KindMusic},
		{"songs", KindMusic},
		{"promotions", KindPromotion},
		{"events", KindEvent},
		{"musicalBlitzes", KindBlitz},
		{"blitz", KindBlitz},
		{"emailCampaigns", KindCampaign},
		{"campaign", KindCampaign},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("podcasts")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownKind)
	assert.True(t, errors.IsUserError(err))
}

// =============================================================================
// Entity Tests
// =============================================================================

func TestRecordInterface(t *testing.T) {
	records := []Record{
		&RadioStation{}, &CityHall{}, &Business{}, &Artist{}, &Music{},
		&Promotion{}, &AppEvent{}, &MusicalBlitz{}, &EmailCampaign{},
	}
	for _, r := range records {
		r.SetID("id_x")
		r.SetArchived(true)
		assert.Equal(t, "id_x", r.GetID())
		assert.True(t, r.Archived())
	}
}

func TestRadioStationJSONShape(t *testing.T) {
	r := RadioStation{ID: "id_1", StationInfo: StationInfo{
		Name:             "Rádio Clube",
		Type:             RadioFM,
		IsCrowleyAudited: true,
		CrowleyMarkets:   []string{"Goiânia"},
	}}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "id_1", raw["id"])
	assert.Equal(t, "Rádio Clube", raw["name"])
	assert.Equal(t, true, raw["isCrowleyAudited"])
	assert.Equal(t, []any{"Goiânia"}, raw["crowleyMarkets"])
	assert.NotContains(t, raw, "StationInfo")
}

func TestSubmissionToStation(t *testing.T) {
	sub := RadioSubmission{
		SubmissionID: "sub-1",
		StationInfo: StationInfo{
			Name:           "Rádio Nova",
			CrowleyMarkets: []string{"Anápolis"},
			IsArchived:     true,
		},
	}

	st := sub.ToStation()
	assert.Empty(t, st.ID)
	assert.Equal(t, "Rádio Nova", st.Name)
	assert.False(t, st.IsArchived)

	// Markets are copied, not shared
	st.CrowleyMarkets[0] = "changed"
	assert.Equal(t, "Anápolis", sub.CrowleyMarkets[0])
}

func TestBusinessHasArtist(t *testing.T) {
	b := Business{ArtistIDs: []string{"a1", "a2"}}
	assert.True(t, b.HasArtist("a2"))
	assert.False(t, b.HasArtist("a3"))
}

func TestMusicEditApply(t *testing.T) {
	title := "Nova"
	hide := true
	m := Music{ID: "m1", Title: "Velha", Composers: "Fulano", ReleaseDate: "2026-01-05"}

	MusicEdit{ID: "m1", Title: &title, HideFromDashboard: &hide}.Apply(&m)

	assert.Equal(t, "Nova", m.Title)
	assert.True(t, m.HideFromDashboard)
	assert.Equal(t, "Fulano", m.Composers)
	assert.Equal(t, "2026-01-05", m.ReleaseDate)
}

func TestPromotionArtistIDAlwaysSerialized(t *testing.T) {
	data, err := json.Marshal(Promotion{ID: "p1"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"artistId":""`)
	assert.NotContains(t, string(data), `"value"`)
}

// =============================================================================
// Promotion Request Tests
// =============================================================================

func TestFieldsOf(t *testing.T) {
	v := 1500.5
	p := Promotion{Name: "Verão", ArtistID: "a1", Type: PromotionVerba, StartDate: "2026-01-05", Value: &v}

	f := FieldsOf(p, func(f float64) string { return "1.500,50" })
	assert.Equal(t, "Verão", f.Name)
	assert.Equal(t, PromotionVerba, f.Type)
	assert.Equal(t, "1.500,50", f.Value)

	f = FieldsOf(Promotion{Name: "x"}, nil)
	assert.Empty(t, f.Value)
}

func TestFieldsOverlay(t *testing.T) {
	base := PromotionFields{Name: "Verão", Details: "spots", EndDate: "2026-02-27"}
	got := base.Overlay(PromotionFields{Details: "spots + entrevista", Value: "300"})

	assert.Equal(t, "Verão", got.Name)
	assert.Equal(t, "spots + entrevista", got.Details)
	assert.Equal(t, "2026-02-27", got.EndDate)
	assert.Equal(t, "300", got.Value)
}

func TestPromotionRequestVariants(t *testing.T) {
	reqs := []PromotionRequest{
		NewPromotionRequest{RadioStationIDs: []string{"r1"}},
		ClonePromotionRequest{SourceID: "p1"},
		EditPromotionRequest{ID: "p1"},
	}
	assert.Len(t, reqs, 3)
}
