// Package segment ingests road-segment feature collections into flat segment
// records carrying the first point of each line geometry.
package segment

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// ErrMalformedDocument is returned when the input is not a feature collection
// or a feature lacks a required field. The whole document is rejected.
var ErrMalformedDocument = eris.New("segment: malformed document")

const (
	collectionType = "FeatureCollection"
	lineType       = "LineString"
)

// Property keys emitted by the segment export pipeline, with the camelCase
// spellings accepted as aliases.
var (
	idKeys       = []string{"segment_id", "segmentId"}
	roadTypeKeys = []string{"road_type", "roadType"}
)

// Coordinate is a position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Segment is one ingested road segment.
type Segment struct {
	ID       string
	RoadType string
	Position Coordinate
}

type rawCollection struct {
	Type     string         `json:"type"`
	Features *[]*rawFeature `json:"features"`
}

type rawFeature struct {
	Properties map[string]json.RawMessage `json:"properties"`
	Geometry   *geojson.Geometry          `json:"geometry"`
}

// Ingest parses a serialized feature collection. Features whose geometry is
// not a LineString, or whose LineString has no points, are skipped. Any
// feature missing its segment id, road type or geometry type fails the whole
// document with ErrMalformedDocument. Segments are returned in input order.
func Ingest(raw []byte) ([]Segment, error) {
	log := zap.L().With(zap.String("component", "segment.ingest"))

	var doc rawCollection
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(ErrMalformedDocument, "decode collection: %v", err)
	}
	if doc.Type != "" && doc.Type != collectionType {
		return nil, eris.Wrapf(ErrMalformedDocument, "unexpected document type %q", doc.Type)
	}
	if doc.Features == nil {
		return nil, eris.Wrap(ErrMalformedDocument, "missing features array")
	}

	features := *doc.Features
	segments := make([]Segment, 0, len(features))
	var skipped int

	for i, f := range features {
		seg, ok, err := parseFeature(f)
		if err != nil {
			return nil, eris.Wrapf(err, "feature %d", i)
		}
		if !ok {
			skipped++
			continue
		}
		segments = append(segments, seg)
	}

	log.Debug("feature collection ingested",
		zap.Int("features", len(features)),
		zap.Int("segments", len(segments)),
		zap.Int("skipped", skipped),
	)
	return segments, nil
}

// parseFeature returns ok=false for features that are skipped without error.
func parseFeature(f *rawFeature) (Segment, bool, error) {
	if f == nil {
		return Segment{}, false, eris.Wrap(ErrMalformedDocument, "null feature")
	}
	if f.Properties == nil {
		return Segment{}, false, eris.Wrap(ErrMalformedDocument, "missing properties")
	}

	id, err := stringProperty(f.Properties, idKeys)
	if err != nil {
		return Segment{}, false, err
	}
	roadType, err := stringProperty(f.Properties, roadTypeKeys)
	if err != nil {
		return Segment{}, false, err
	}
	if roadType == "" {
		return Segment{}, false, eris.Wrapf(ErrMalformedDocument, "empty %s on segment %q", roadTypeKeys[0], id)
	}

	if f.Geometry == nil || f.Geometry.Type == "" {
		return Segment{}, false, eris.Wrapf(ErrMalformedDocument, "missing geometry type on segment %q", id)
	}
	if f.Geometry.Type != lineType {
		return Segment{}, false, nil
	}

	first, ok, err := firstPoint(f.Geometry)
	if err != nil {
		return Segment{}, false, eris.Wrapf(err, "segment %q", id)
	}
	if !ok {
		return Segment{}, false, nil
	}

	return Segment{ID: id, RoadType: roadType, Position: fromLonLat(first)}, true, nil
}

// firstPoint returns the first position of a LineString geometry. Only that
// position is decoded; later vertices are never inspected. ok is false when
// the coordinate array is empty.
func firstPoint(g *geojson.Geometry) (geom.Coord, bool, error) {
	if g.Coordinates == nil {
		return nil, false, eris.Wrap(ErrMalformedDocument, "missing coordinates")
	}

	var positions []json.RawMessage
	if err := json.Unmarshal(*g.Coordinates, &positions); err != nil {
		return nil, false, eris.Wrapf(ErrMalformedDocument, "decode coordinates: %v", err)
	}
	if len(positions) == 0 {
		return nil, false, nil
	}

	var first []float64
	if err := json.Unmarshal(positions[0], &first); err != nil {
		return nil, false, eris.Wrapf(ErrMalformedDocument, "decode first position: %v", err)
	}
	layout, ok := positionLayout(len(first))
	if !ok {
		return nil, false, eris.Wrapf(ErrMalformedDocument, "first position has %d values, want at least 2", len(first))
	}

	p := geom.NewPointFlat(layout, first[:layout.Stride()])
	return p.Coords(), true, nil
}

// positionLayout maps a position length to a go-geom layout. Values beyond
// the fourth are ignored.
func positionLayout(n int) (geom.Layout, bool) {
	switch {
	case n < 2:
		return geom.NoLayout, false
	case n == 2:
		return geom.XY, true
	case n == 3:
		return geom.XYZ, true
	default:
		return geom.XYZM, true
	}
}

// fromLonLat converts a GeoJSON position, which is ordered
// [longitude, latitude], into a Coordinate.
func fromLonLat(c geom.Coord) Coordinate {
	return Coordinate{Latitude: c.Y(), Longitude: c.X()}
}

// stringProperty returns the first key with a non-null value as a string.
// Numbers and booleans are kept in their JSON text form.
func stringProperty(props map[string]json.RawMessage, keys []string) (string, error) {
	for _, k := range keys {
		raw, ok := props[k]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String(), nil
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return strconv.FormatBool(b), nil
		}
		return "", eris.Wrapf(ErrMalformedDocument, "property %s is not a string, number or boolean", k)
	}
	return "", eris.Wrapf(ErrMalformedDocument, "missing property %s", strings.Join(keys, "/"))
}
