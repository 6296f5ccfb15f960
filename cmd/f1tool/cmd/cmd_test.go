package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/assets"
)

const resultsCSV = `raceId,year,driverId,tyreManufacturerId,reasonRetired
1,2014,hamilton,pirelli,Engine
2,2015,rosberg,pirelli,Gearbox
3,2015.0,button,,Electrical
4,2016,vettel,pirelli,
`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"patch-tyres", "placeholders", "download-images"})
}

func TestPatchSeason(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.csv")
	out := filepath.Join(dir, "patched.csv")
	require.NoError(t, os.WriteFile(in, []byte(resultsCSV), 0o644))

	updated, counts, err := patchSeason(in, out, "tyreManufacturerId", "bridgestone", 2015)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, map[string]int{"bridgestone": 2}, counts)

	patched, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(patched), "2,2015,rosberg,bridgestone,Gearbox")
	assert.Contains(t, string(patched), "3,2015.0,button,bridgestone,Electrical")
	assert.Contains(t, string(patched), "1,2014,hamilton,pirelli,Engine")

	source, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, resultsCSV, string(source))
}

func TestPatchSeason_UnknownColumn(t *testing.T) {
	in := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(in, []byte(resultsCSV), 0o644))

	_, _, err := patchSeason(in, in, "engineManufacturerId", "honda", 2015)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engineManufacturerId")
}

func TestRunPatchTyres_InPlace(t *testing.T) {
	in := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(in, []byte(resultsCSV), 0o644))

	output, err := executeCommand(t, "patch-tyres", "--file", in)
	require.NoError(t, err)
	assert.Contains(t, output, "Updated 2 rows of 2015")

	patched, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Contains(t, string(patched), "2,2015,rosberg,bridgestone,Gearbox")
}

func TestRunPlaceholders(t *testing.T) {
	dir := t.TempDir()

	output, err := executeCommand(t, "placeholders", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "teams", "default.png"))
	assert.FileExists(t, filepath.Join(dir, "drivers", "default.png"))
	assert.Contains(t, output, "Created placeholder")
}

func TestSelectSources(t *testing.T) {
	catalog := assets.Catalog()

	all, err := selectSources(catalog, "all")
	require.NoError(t, err)
	assert.Len(t, all, len(catalog))

	teams, err := selectSources(catalog, "teams")
	require.NoError(t, err)
	for _, s := range teams {
		assert.Equal(t, assets.KindTeam, s.Kind)
	}
	assert.NotEmpty(t, teams)

	_, err = selectSources(catalog, "cars")
	assert.Error(t, err)
}
