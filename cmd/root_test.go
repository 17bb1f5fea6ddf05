package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliDoc = `{"type": "FeatureCollection", "features": [
	{"type": "Feature", "properties": {"segment_id": "23029701", "road_type": "primary"}, "geometry": {"type": "LineString", "coordinates": [[77.6197, 12.9733], [77.6212, 12.9735]]}},
	{"type": "Feature", "properties": {"segment_id": "42", "road_type": "service"}, "geometry": {"type": "LineString", "coordinates": [[77.61, 12.97]]}},
	{"type": "Feature", "properties": {"segment_id": "7", "road_type": "residential"}, "geometry": {"type": "Point", "coordinates": [77.5, 12.9]}}
]}`

const cliOverrides = `version: test
names:
  "23029701": MG Road - Trinity Circle
`

// setupCLI points the CLI at fixture files in a temp dir with no config.yaml.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "roads.geojson"), []byte(cliDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overrides.yaml"), []byte(cliOverrides), 0o644))

	t.Setenv("LOCINDEX_SOURCE_DIR", dir)
	t.Setenv("LOCINDEX_SOURCE_NAME", "roads.geojson")
	t.Setenv("LOCINDEX_OVERRIDES_PATH", filepath.Join(dir, "overrides.yaml"))
	t.Setenv("LOCINDEX_LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"names", "lookup", "stats"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "locindex", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestNamesCommand_Flags(t *testing.T) {
	flag := namesCmd.Flags().Lookup("query")
	require.NotNil(t, flag)
	limit := namesCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "-1", limit.DefValue)
}

func TestNamesCommand_ListsAll(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "names", "--query", "", "--limit", "0")
	require.NoError(t, err)
	assert.Equal(t, "MG Road - Trinity Circle\nService Segment: 42\n", out)
}

func TestNamesCommand_Query(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "names", "--query", "trinity", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "MG Road - Trinity Circle\n", out)
}

func TestLookupCommand_Found(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "lookup", "--json=false", "Service Segment: 42")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Service Segment: 42")
	assert.Contains(t, out, "12.970000")
	assert.Contains(t, out, "77.610000")
}

func TestLookupCommand_NotRecognized(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "lookup", "--json=true", "MG Road - Trinity Circle", "Vidhana Soudha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 location(s) not recognized")
	assert.Contains(t, out, `"name": "Vidhana Soudha"`)
	assert.Contains(t, out, `"found": false`)
	assert.Contains(t, out, `"latitude": 12.9733`)
}

func TestLookupCommand_MissingSource(t *testing.T) {
	setupCLI(t)
	t.Setenv("LOCINDEX_SOURCE_NAME", "missing.geojson")

	_, err := execute(t, "lookup", "--json=false", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.geojson")
}

func TestStatsCommand(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Built:")
	assert.Contains(t, out, "true")
	assert.True(t, strings.Contains(out, "Locations:"))
	assert.Contains(t, out, "12.970000 .. 12.973300")
	assert.Contains(t, out, "77.610000 .. 77.619700")
}

func TestStatsCommand_BundledAssets(t *testing.T) {
	setupCLI(t)
	t.Setenv("LOCINDEX_SOURCE_DIR", "")
	t.Setenv("LOCINDEX_SOURCE_NAME", "segments_features.geojson")
	t.Setenv("LOCINDEX_OVERRIDES_PATH", "")

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Override names:")
	assert.Regexp(t, `Locations:\s+9`, out)
}
