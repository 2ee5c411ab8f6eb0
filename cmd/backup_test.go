package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/storage"
)

func TestBackupSalvageWritesReadableValues(t *testing.T) {
	setupTestContext(t)

	_, err := ctx.Store.SaveRadio(model.RadioStation{StationInfo: model.StationInfo{Name: "Rádio Nova", Type: model.RadioFM}})
	require.NoError(t, err)
	require.NoError(t, ctx.DB.SetBytes("broken", []byte("{not json")))

	target := filepath.Join(t.TempDir(), "salvage.json")
	backupSalvageFlagOutput = target
	t.Cleanup(func() { backupSalvageFlagOutput = "" })

	require.NoError(t, runBackupSalvage(backupSalvageCmd, nil))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var report storage.SalvageReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Contains(t, string(report.Values[model.KeyRadios]), "Rádio Nova")
	assert.Equal(t, []string{"broken"}, report.Skipped)
}
