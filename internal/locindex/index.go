// Package locindex maintains the name to coordinate index of road segments
// used by autocomplete suggestions and pin placement.
//
// The index is built lazily on first use from a feature collection supplied
// by a source.Loader. A build either completes and publishes an immutable
// snapshot, or fails and leaves the index empty so the next call retries.
// Concurrent first-time callers share a single in-flight build.
package locindex

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/navai/locindex/internal/naming"
	"github.com/navai/locindex/internal/segment"
	"github.com/navai/locindex/internal/source"
)

// DefaultSourceName is the feature collection loaded when no other name is
// configured.
const DefaultSourceName = "segments_features.geojson"

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate = segment.Coordinate

// Option configures an Index.
type Option func(*Index)

// WithSourceName sets the logical name passed to the loader.
func WithSourceName(name string) Option {
	return func(x *Index) {
		x.sourceName = name
	}
}

// WithMinQueryLength sets the shortest query Suggest answers.
func WithMinQueryLength(n int) Option {
	return func(x *Index) {
		x.minQuery = n
	}
}

// Index is the lazily built location index.
type Index struct {
	loader     source.Loader
	table      *naming.Table
	sourceName string
	minQuery   int

	group   singleflight.Group
	snap    atomic.Pointer[snapshot]
	builtAt atomic.Int64
	loads   atomic.Int64
}

// New creates an unbuilt index reading from loader and naming segments with
// table. A nil table means every name is generated.
func New(loader source.Loader, table *naming.Table, opts ...Option) *Index {
	x := &Index{
		loader:     loader,
		table:      table,
		sourceName: DefaultSourceName,
		minQuery:   1,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Built reports whether a build has completed.
func (x *Index) Built() bool {
	return x.snap.Load() != nil
}

// Build runs the UNBUILT to BUILT transition if it has not happened yet.
// Concurrent callers wait for the same build and observe its result. The
// build keeps the values of the context that started it but ignores its
// cancellation. Errors are *BuildError values.
func (x *Index) Build(ctx context.Context) error {
	_, err := x.ensure(ctx)
	return err
}

// Get returns a copy of the index contents, building it if needed. On build
// failure it returns an empty map together with the error.
func (x *Index) Get(ctx context.Context) (map[string]Coordinate, error) {
	s, err := x.ensure(ctx)
	if err != nil {
		return map[string]Coordinate{}, err
	}
	return s.copyEntries(), nil
}

func (x *Index) ensure(ctx context.Context) (*snapshot, error) {
	if s := x.snap.Load(); s != nil {
		return s, nil
	}

	v, err, _ := x.group.Do("build", func() (any, error) {
		if s := x.snap.Load(); s != nil {
			return s, nil
		}
		// Shared by every waiter, so no single caller's cancellation applies.
		s, err := x.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		x.builtAt.Store(time.Now().UnixNano())
		x.snap.Store(s)
		return s, nil
	})
	if err != nil {
		return nil, &BuildError{Err: err}
	}
	return v.(*snapshot), nil
}

// build runs source load, ingestion and name resolution. Nothing is
// published unless every step succeeds.
func (x *Index) build(ctx context.Context) (*snapshot, error) {
	log := zap.L().With(
		zap.String("component", "locindex"),
		zap.String("source", x.sourceName),
	)
	start := time.Now()

	x.loads.Add(1)
	raw, err := x.loader.Load(ctx, x.sourceName)
	if err != nil {
		log.Error("failed to load segment source", zap.Error(err))
		return nil, eris.Wrap(err, "locindex: load source")
	}

	segs, err := segment.Ingest(raw)
	if err != nil {
		log.Error("failed to parse segment source", zap.Error(err))
		return nil, eris.Wrap(err, "locindex: ingest")
	}

	s := resolveAndCache(segs, x.table)

	log.Info("location index built",
		zap.Int("segments", len(segs)),
		zap.Int("locations", len(s.entries)),
		zap.Int("override_names", s.overrides),
		zap.Int("generated_names", s.generated),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s, nil
}
