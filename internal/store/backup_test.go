package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/backup"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

func TestBackupRoundTrip(t *testing.T) {
	src, _ := seedArtistGraph(t)
	require.NoError(t, src.AddMarket("Goiânia"))
	must(t)(src.RecordCampaign(model.EmailCampaign{Subject: "Oi", RecipientIDs: []string{"r1"}}))
	require.NoError(t, src.Archive(model.KindArtist, "a2"))

	data, err := backup.Encode(src.ExportBackup())
	require.NoError(t, err)
	doc, err := backup.Decode(data)
	require.NoError(t, err)

	dst, _ := newTestStore(t)
	require.NoError(t, dst.ImportBackup(doc))

	assert.Equal(t, src.ExportBackup(), dst.ExportBackup())
}

func TestImportReplacesCollectionsWholesale(t *testing.T) {
	s, db := seedArtistGraph(t)
	_, err := s.MergeSubmissions([]model.RadioSubmission{{SubmissionID: "S1"}})
	require.NoError(t, err)
	require.NoError(t, s.SetSheetsURL("https://script.google.com/x"))

	doc, err := backup.Decode([]byte(`{"radios":[{"id":"r9","name":"Importada"}]}`))
	require.NoError(t, err)
	require.NoError(t, s.ImportBackup(doc))

	snap := s.Snapshot()
	assert.Len(t, snap.Radios, 1)
	assert.Empty(t, snap.Artists)
	assert.Empty(t, snap.Music)
	assert.Empty(t, snap.Markets)
	assert.Len(t, snap.Submissions, 1, "submissions are not part of a backup")
	assert.Equal(t, "https://script.google.com/x", s.SheetsURL())

	reopened := openStore(t, db)
	r, ok := reopened.Radio("r9")
	require.True(t, ok)
	assert.Equal(t, "Importada", r.Name)
	assert.Empty(t, reopened.Snapshot().Artists)
}

func TestImportCorruptedLeavesStateUntouched(t *testing.T) {
	s, _ := seedArtistGraph(t)
	before := s.Snapshot()

	doc, err := backup.Decode([]byte(`{"radios": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBackupCorrupted))

	err = s.ImportBackup(doc)
	assert.True(t, errors.Is(err, errors.ErrBackupCorrupted))
	assert.Equal(t, before, s.Snapshot())
}

func TestExportIsACopy(t *testing.T) {
	s, _ := seedArtistGraph(t)
	doc := s.ExportBackup()
	doc.Artists[0].Name = "Mexido"

	a, _ := s.Artist("a1")
	assert.Equal(t, "Ana", a.Name)
}
