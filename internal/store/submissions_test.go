package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/storage"
)

func submission(id, name string) model.RadioSubmission {
	return model.RadioSubmission{SubmissionID: id, StationInfo: model.StationInfo{Name: name, Type: model.RadioFM}}
}

func submissionIDs(items []model.RadioSubmission) []string {
	ids := make([]string, 0, len(items))
	for _, sub := range items {
		ids = append(ids, sub.SubmissionID)
	}
	return ids
}

// =============================================================================
// Submissions
// =============================================================================

func TestMergeSubmissionsDeduplicates(t *testing.T) {
	s, db := newTestStore(t)

	n, err := s.MergeSubmissions([]model.RadioSubmission{submission("A", "a"), submission("B", "b")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.MergeSubmissions([]model.RadioSubmission{submission("A", "a2"), submission("B", "b2"), submission("C", "c")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	subs := s.Submissions()
	assert.Equal(t, []string{"A", "B", "C"}, submissionIDs(subs))
	assert.Equal(t, "a", subs[0].Name, "existing entries are not overwritten")
	assert.Equal(t, 3, s.PendingSubmissions())

	stored, err := storage.LoadCollection[model.RadioSubmission](db, model.KeyRadioSubmissions)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestMergeSubmissionsSkipsMissingAndRepeatedIDs(t *testing.T) {
	s, _ := newTestStore(t)

	n, err := s.MergeSubmissions([]model.RadioSubmission{
		submission("", "sem id"),
		submission("X", "x1"),
		submission("X", "x2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"X"}, submissionIDs(s.Submissions()))
}

func TestMergeSubmissionsNothingNewSkipsWrite(t *testing.T) {
	db := setupDB(t)
	backend := &flakyBackend{ReadWriter: db, fail: map[string]bool{}}
	s := openStore(t, backend)
	_, err := s.MergeSubmissions([]model.RadioSubmission{submission("A", "a")})
	require.NoError(t, err)

	backend.failOn(model.KeyRadioSubmissions)
	n, err := s.MergeSubmissions([]model.RadioSubmission{submission("A", "a")})
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPromoteSubmission(t *testing.T) {
	s, _ := newTestStore(t)
	sub := submission("S1", "Rádio Nova")
	sub.CrowleyMarkets = []string{"Goiânia"}
	_, err := s.MergeSubmissions([]model.RadioSubmission{sub, submission("S2", "Outra")})
	require.NoError(t, err)

	id, err := s.PromoteSubmission("S1", func(r *model.RadioStation) {
		r.City = "Goiânia"
	})
	require.NoError(t, err)

	r, ok := s.Radio(id)
	require.True(t, ok)
	assert.Equal(t, "Rádio Nova", r.Name)
	assert.Equal(t, "Goiânia", r.City)
	assert.Nil(t, r.CrowleyMarkets, "not audited")
	assert.Equal(t, []string{"S2"}, submissionIDs(s.Submissions()))

	_, err = s.PromoteSubmission("S1", nil)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDeleteSubmission(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.MergeSubmissions([]model.RadioSubmission{submission("S1", "a"), submission("S2", "b")})
	require.NoError(t, err)
	snap := s.Snapshot()

	require.NoError(t, s.DeleteSubmission("S1"))
	assert.Equal(t, []string{"S2"}, submissionIDs(s.Submissions()))
	assert.Len(t, snap.Submissions, 2, "earlier snapshots are unaffected")

	assert.True(t, errors.Is(s.DeleteSubmission("S1"), errors.ErrNotFound))

	_, ok := s.Submission("S2")
	assert.True(t, ok)
	_, ok = s.Submission("")
	assert.False(t, ok)
}

// =============================================================================
// Markets
// =============================================================================

func TestMarkets(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.AddMarket("  Goiânia "))
	require.NoError(t, s.AddMarket("Brasília"))
	assert.Equal(t, []string{"Goiânia", "Brasília"}, s.Markets())

	assert.Error(t, s.AddMarket("   "))
	err := s.AddMarket("Goiânia")
	assert.True(t, errors.Is(err, errors.ErrDuplicateMarket))

	require.NoError(t, s.RenameMarket("Goiânia", "Goiânia/Anápolis"))
	assert.Equal(t, []string{"Goiânia/Anápolis", "Brasília"}, s.Markets())
	assert.True(t, errors.Is(s.RenameMarket("Brasília", "Goiânia/Anápolis"), errors.ErrDuplicateMarket))
	assert.True(t, errors.Is(s.RenameMarket("Recife", "Olinda"), errors.ErrNotFound))
	assert.NoError(t, s.RenameMarket("Brasília", "Brasília"))

	require.NoError(t, s.DeleteMarket("Brasília"))
	assert.Equal(t, []string{"Goiânia/Anápolis"}, s.Markets())
	assert.True(t, errors.Is(s.DeleteMarket("Brasília"), errors.ErrNotFound))
}

func TestRenameMarketKeepsStationMarkets(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddMarket("Goiânia"))
	id := must(t)(s.SaveRadio(model.RadioStation{StationInfo: model.StationInfo{
		IsCrowleyAudited: true, CrowleyMarkets: []string{"Goiânia"},
	}}))

	require.NoError(t, s.RenameMarket("Goiânia", "GYN"))
	r, _ := s.Radio(id)
	assert.Equal(t, []string{"Goiânia"}, r.CrowleyMarkets)
}

// =============================================================================
// Settings
// =============================================================================

func TestSheetsURL(t *testing.T) {
	s, db := newTestStore(t)

	require.NoError(t, s.SetSheetsURL(" https://script.google.com/macros/s/abc/exec "))
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", s.SheetsURL())

	err := s.SetSheetsURL("http://example.com/exec")
	assert.True(t, errors.Is(err, errors.ErrInvalidURL))
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", s.SheetsURL())

	cfg, err := storage.NewSheetsConfigRepo(db).Get()
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.SheetsURL)

	require.NoError(t, s.SetSheetsURL(""))
	assert.Equal(t, "", s.SheetsURL())
}

func TestPreferences(t *testing.T) {
	s, db := newTestStore(t)

	require.NoError(t, s.SetActiveView("radios"))
	require.NoError(t, s.SetTheme("dark"))
	assert.Error(t, s.SetTheme("sepia"))
	assert.Error(t, s.SetTheme(""))
	assert.Error(t, s.SetActiveView(" "))

	reopened := openStore(t, db)
	assert.Equal(t, "radios", reopened.ActiveView())
	assert.Equal(t, "dark", reopened.Theme())
}
