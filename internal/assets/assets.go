// Package assets bundles the default segment feature collection and name
// override table shipped with the binary.
package assets

import (
	"embed"
	"io/fs"

	"github.com/rotisserie/eris"

	"github.com/navai/locindex/internal/naming"
)

const (
	// SegmentsName is the bundled feature collection.
	SegmentsName = "segments_features.geojson"
	// OverridesName is the bundled override table.
	OverridesName = "name_overrides.yaml"
)

//go:embed segments_features.geojson name_overrides.yaml
var bundle embed.FS

// FS returns the bundled assets.
func FS() fs.FS {
	return bundle
}

// Overrides loads the bundled override table.
func Overrides() (*naming.Table, error) {
	f, err := bundle.Open(OverridesName)
	if err != nil {
		return nil, eris.Wrap(err, "assets: open override table")
	}
	defer f.Close() //nolint:errcheck

	return naming.LoadTable(f)
}
