package locindex

import (
	"sort"

	"github.com/twpayne/go-geom"
	"golang.org/x/text/cases"

	"github.com/navai/locindex/internal/naming"
	"github.com/navai/locindex/internal/segment"
)

// snapshot is the result of one completed ingestion pass. It is never
// mutated after resolveAndCache returns.
type snapshot struct {
	entries   map[string]Coordinate
	names     []string // sorted
	folded    []string // case-folded names, parallel to names
	bounds    *geom.Bounds
	overrides int
	generated int
}

// resolveAndCache assigns each segment its display name and records the
// segment's coordinate under it. Later segments overwrite earlier ones that
// resolve to the same name.
func resolveAndCache(segs []segment.Segment, table *naming.Table) *snapshot {
	s := &snapshot{entries: make(map[string]Coordinate, len(segs))}

	for _, seg := range segs {
		name, src := naming.Resolve(table, seg.ID, seg.RoadType)
		if src == naming.SourceOverride {
			s.overrides++
		} else {
			s.generated++
		}
		s.entries[name] = seg.Position
	}

	s.names = make([]string, 0, len(s.entries))
	for name := range s.entries {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)

	fold := cases.Fold()
	s.folded = make([]string, len(s.names))
	for i, name := range s.names {
		s.folded[i] = fold.String(name)
	}

	if len(s.entries) > 0 {
		s.bounds = geom.NewBounds(geom.XY)
		for _, c := range s.entries {
			s.bounds.Extend(geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude}))
		}
	}

	return s
}

// copyEntries returns a caller-owned copy of the cache contents.
func (s *snapshot) copyEntries() map[string]Coordinate {
	out := make(map[string]Coordinate, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
