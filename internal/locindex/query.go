package locindex

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"golang.org/x/text/cases"
)

// Names returns every cached display name in sorted order. On build failure
// it returns an empty slice together with the error.
func (x *Index) Names(ctx context.Context) ([]string, error) {
	s, err := x.ensure(ctx)
	if err != nil {
		return []string{}, err
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

// Lookup returns the coordinate recorded under name. A name absent from a
// built index yields ErrNotFound; a failed build yields a *BuildError.
func (x *Index) Lookup(ctx context.Context, name string) (Coordinate, error) {
	s, err := x.ensure(ctx)
	if err != nil {
		return Coordinate{}, err
	}
	c, ok := s.entries[name]
	if !ok {
		return Coordinate{}, eris.Wrapf(ErrNotFound, "lookup %q", name)
	}
	return c, nil
}

// LookupPair resolves both ends of a route. When either name is unknown the
// error lists every unrecognized name and matches ErrNotFound.
func (x *Index) LookupPair(ctx context.Context, from, to string) (Coordinate, Coordinate, error) {
	s, err := x.ensure(ctx)
	if err != nil {
		return Coordinate{}, Coordinate{}, err
	}

	src, okSrc := s.entries[from]
	dst, okDst := s.entries[to]

	var missing []string
	if !okSrc {
		missing = append(missing, from)
	}
	if !okDst {
		missing = append(missing, to)
	}
	if len(missing) > 0 {
		return Coordinate{}, Coordinate{}, eris.Wrapf(ErrNotFound, "could not find coordinates for %q", missing)
	}
	return src, dst, nil
}

// Suggest returns up to limit names containing query, ignoring case, in
// sorted order. Queries shorter than the configured minimum, after trimming,
// yield no suggestions. A limit <= 0 means no limit.
func (x *Index) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	s, err := x.ensure(ctx)
	if err != nil {
		return []string{}, err
	}

	query = strings.TrimSpace(query)
	if len([]rune(query)) < x.minQuery {
		return []string{}, nil
	}
	needle := cases.Fold().String(query)

	out := []string{}
	for i, folded := range s.folded {
		if !strings.Contains(folded, needle) {
			continue
		}
		out = append(out, s.names[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Stats describes the current state of the index.
type Stats struct {
	Built          bool
	BuiltAt        time.Time
	Locations      int
	OverrideNames  int
	GeneratedNames int
	SourceLoads    int64
	// Bounds is the bounding box of all cached coordinates with X as
	// longitude and Y as latitude. Nil when the index is empty.
	Bounds *geom.Bounds
}

// Stats reports the current state without triggering a build.
func (x *Index) Stats() Stats {
	st := Stats{SourceLoads: x.loads.Load()}

	s := x.snap.Load()
	if s == nil {
		return st
	}
	st.Built = true
	st.BuiltAt = time.Unix(0, x.builtAt.Load())
	st.Locations = len(s.entries)
	st.OverrideNames = s.overrides
	st.GeneratedNames = s.generated
	if s.bounds != nil {
		st.Bounds = s.bounds.Clone()
	}
	return st
}
