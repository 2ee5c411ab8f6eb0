package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

func ptr[T any](v T) *T { return &v }

// =============================================================================
// Save
// =============================================================================

func TestSaveAssignsDistinctIDs(t *testing.T) {
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := must(t)(s.SaveBusiness(model.Business{Name: "Empresa"}))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, s.Snapshot().Businesses, 50)
}

func TestSaveIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	id := must(t)(s.SaveCityHall(model.CityHall{CityName: "Goiânia"}))
	c, _ := s.CityHall(id)

	for i := 0; i < 3; i++ {
		again := must(t)(s.SaveCityHall(c))
		assert.Equal(t, id, again)
	}
	halls := s.Snapshot().CityHalls
	require.Len(t, halls, 1)
	assert.Equal(t, c, halls[0])
}

func TestSaveReplacesWholeRecordInPlace(t *testing.T) {
	s, _ := newTestStore(t)
	first := must(t)(s.SaveEvent(model.AppEvent{Name: "A", Venue: "Arena", Details: "x"}))
	must(t)(s.SaveEvent(model.AppEvent{Name: "B"}))

	_, err := s.SaveEvent(model.AppEvent{ID: first, Name: "A2"})
	require.NoError(t, err)

	events := s.Snapshot().Events
	require.Len(t, events, 2)
	assert.Equal(t, first, events[0].ID, "position preserved")
	assert.Equal(t, "A2", events[0].Name)
	assert.Equal(t, "", events[0].Venue, "update is a full replacement")
}

func TestSaveUnknownIDAppendsWithFreshID(t *testing.T) {
	s, _ := newTestStore(t)
	id := must(t)(s.SaveEvent(model.AppEvent{ID: "made-up", Name: "X"}))
	assert.NotEqual(t, "made-up", id)
	assert.Contains(t, id, model.IDPrefix)
}

func TestSaveDispatchesByKind(t *testing.T) {
	s, _ := newTestStore(t)

	id := must(t)(s.Save(model.KindRadio, &model.RadioStation{StationInfo: model.StationInfo{Name: "R"}}))
	_, ok := s.Radio(id)
	assert.True(t, ok)

	_, err := s.Save(model.KindArtist, &model.RadioStation{})
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestSaveRadioClearsMarketsWhenNotAudited(t *testing.T) {
	s, _ := newTestStore(t)

	id := must(t)(s.SaveRadio(model.RadioStation{StationInfo: model.StationInfo{
		Name: "Rádio", CrowleyMarkets: []string{"Goiânia"},
	}}))
	r, _ := s.Radio(id)
	assert.Nil(t, r.CrowleyMarkets)

	id = must(t)(s.SaveRadio(model.RadioStation{StationInfo: model.StationInfo{
		Name: "Auditada", IsCrowleyAudited: true, CrowleyMarkets: []string{"Goiânia"},
	}}))
	r, _ = s.Radio(id)
	assert.Equal(t, []string{"Goiânia"}, r.CrowleyMarkets)
}

func TestSaveArtistCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)

	id := must(t)(s.SaveArtist(model.Artist{Name: "Ana", CreatedAt: "ignored"}))
	a, _ := s.Artist(id)
	assert.Equal(t, "2026-01-05T10:30:00.000Z", a.CreatedAt)

	a.Name = "Ana Castela"
	a.CreatedAt = "2020-01-01T00:00:00.000Z"
	must(t)(s.SaveArtist(a))
	got, _ := s.Artist(id)
	assert.Equal(t, "Ana Castela", got.Name)
	assert.Equal(t, "2026-01-05T10:30:00.000Z", got.CreatedAt, "stored createdAt is kept")
}

// =============================================================================
// Weekday rule
// =============================================================================

func TestSaveMusicRejectsWeekendWithoutMutation(t *testing.T) {
	s, db := newTestStore(t)
	artistID := must(t)(s.SaveArtist(model.Artist{Name: "Ana"}))
	id := must(t)(s.SaveMusic(model.Music{Title: "Boiadeira", ArtistID: artistID, ReleaseDate: "2026-01-09"}))
	before := s.Snapshot().Music

	for _, date := range []string{"2026-01-10", "2026-01-11"} {
		_, err := s.SaveMusic(model.Music{ID: id, Title: "Nova", ArtistID: artistID, ReleaseDate: date})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrWeekendDate))
		var we *classify.WeekendError
		assert.True(t, errors.As(err, &we))
	}

	assert.Equal(t, before, s.Snapshot().Music)
	reopened := openStore(t, db)
	m, _ := reopened.Music(id)
	assert.Equal(t, "Boiadeira", m.Title)
	assert.Equal(t, "2026-01-09", m.ReleaseDate)
}

func TestSaveBlitzRejectsWeekend(t *testing.T) {
	s, _ := newTestStore(t)
	artistID := must(t)(s.SaveArtist(model.Artist{Name: "Ana"}))
	musicID := must(t)(s.SaveMusic(model.Music{Title: "Boiadeira", ArtistID: artistID}))

	_, err := s.SaveBlitz(model.MusicalBlitz{MusicID: musicID, EventDate: "2026-01-10"})
	assert.True(t, errors.Is(err, errors.ErrWeekendDate))
	assert.Empty(t, s.Snapshot().Blitzes)

	must(t)(s.SaveBlitz(model.MusicalBlitz{MusicID: musicID, EventDate: "2026-01-07"}))
	assert.Len(t, s.Snapshot().Blitzes, 1)
}

func TestSaveMusicRequiresArtist(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SaveMusic(model.Music{Title: "Órfã"})
	assert.True(t, errors.Is(err, errors.ErrMissingArtist))

	_, err = s.SaveMusic(model.Music{Title: "Órfã", ArtistID: "ghost"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Empty(t, s.Snapshot().Music)
}

func TestSaveBlitzRequiresMusic(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.SaveBlitz(model.MusicalBlitz{EventDate: "2026-01-07"})
	assert.True(t, errors.Is(err, errors.ErrMissingMusic))
}

// =============================================================================
// Artist editor
// =============================================================================

func TestSaveArtistWithMusic(t *testing.T) {
	s, _ := seedArtistGraph(t)
	a, _ := s.Artist("a1")
	a.Bio = "Cantora"

	id, err := s.SaveArtistWithMusic(a, []model.MusicEdit{
		{ID: "temp-1", Title: ptr("Nova"), ReleaseDate: ptr("2026-01-07")},
		{ID: "m1", Title: ptr("Um (remix)")},
	}, []string{"m2"})
	require.NoError(t, err)
	assert.Equal(t, "a1", id)

	snap := s.Snapshot()
	assert.Equal(t, "Cantora", snap.Artists[0].Bio)

	var mine []model.Music
	for _, m := range snap.Music {
		if m.ArtistID == "a1" {
			mine = append(mine, m)
		}
	}
	require.Len(t, mine, 2)
	assert.Equal(t, "m1", mine[0].ID)
	assert.Equal(t, "Um (remix)", mine[0].Title)
	assert.False(t, model.IsTempID(mine[1].ID))
	assert.Equal(t, "Nova", mine[1].Title)
	assert.Equal(t, "2026-01-07", mine[1].ReleaseDate)
	assert.Equal(t, "2026-01-05T10:30:00.000Z", mine[1].CreatedAt)

	_, ok := s.Music("m3")
	assert.True(t, ok, "other artists' songs are untouched")
}

func TestSaveArtistWithMusicNewArtist(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.SaveArtistWithMusic(model.Artist{Name: "Novo"}, []model.MusicEdit{
		{ID: "", Title: ptr("Primeira")},
		{ID: "temp-2", Title: ptr("Segunda")},
	}, nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Music, 2)
	for _, m := range snap.Music {
		assert.Equal(t, id, m.ArtistID)
	}
	assert.Equal(t, "2026-01-05T10:30:00.000Z", snap.Artists[0].CreatedAt)
}

func TestSaveArtistWithMusicWeekendRejectsAll(t *testing.T) {
	s, _ := seedArtistGraph(t)
	before := s.Snapshot()
	a, _ := s.Artist("a1")
	a.Name = "Mudou"

	_, err := s.SaveArtistWithMusic(a, []model.MusicEdit{
		{ID: "m1", Title: ptr("Ok")},
		{ID: "temp-1", Title: ptr("Sábado"), ReleaseDate: ptr("2026-01-10")},
	}, []string{"m2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrWeekendDate))
	assert.Equal(t, before, s.Snapshot())
}

func TestSaveArtistWithMusicUnknownSong(t *testing.T) {
	s, _ := seedArtistGraph(t)
	a, _ := s.Artist("a1")

	_, err := s.SaveArtistWithMusic(a, []model.MusicEdit{{ID: "m3", Title: ptr("Roubada")}}, nil)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	m3, _ := s.Music("m3")
	assert.Equal(t, "Três", m3.Title)
}

func TestToggleMusicDashboard(t *testing.T) {
	s, _ := seedArtistGraph(t)

	hidden, err := s.ToggleMusicDashboard("m1")
	require.NoError(t, err)
	assert.True(t, hidden)

	hidden, err = s.ToggleMusicDashboard("m1")
	require.NoError(t, err)
	assert.False(t, hidden)

	_, err = s.ToggleMusicDashboard("nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

// =============================================================================
// Campaigns
// =============================================================================

func TestRecordCampaign(t *testing.T) {
	s, _ := newTestStore(t)

	id := must(t)(s.RecordCampaign(model.EmailCampaign{
		Subject:           "Lançamento",
		RecipientCategory: model.RecipientRadios,
		RecipientIDs:      []string{"r1", "r2", "r3"},
		RecipientCount:    99,
		SentAt:            "1999-01-01",
	}))

	c, ok := s.Campaign(id)
	require.True(t, ok)
	assert.Equal(t, 3, c.RecipientCount)
	assert.Equal(t, "2026-01-05T10:30:00.000Z", c.SentAt)
}

func TestCampaignIsImmutable(t *testing.T) {
	s, _ := newTestStore(t)
	id := must(t)(s.RecordCampaign(model.EmailCampaign{Subject: "Original"}))
	c, _ := s.Campaign(id)
	c.Subject = "Editado"

	_, err := s.Save(model.KindCampaign, &c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrImmutable))

	got, _ := s.Campaign(id)
	assert.Equal(t, "Original", got.Subject)
	assert.Len(t, s.Snapshot().Campaigns, 1)
}

func TestCampaignNilRecipients(t *testing.T) {
	s, _ := newTestStore(t)
	id := must(t)(s.RecordCampaign(model.EmailCampaign{}))
	c, _ := s.Campaign(id)
	assert.NotNil(t, c.RecipientIDs)
	assert.Equal(t, 0, c.RecipientCount)
}
