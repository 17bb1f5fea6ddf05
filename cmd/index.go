package main

import (
	"github.com/rotisserie/eris"

	"github.com/navai/locindex/internal/assets"
	"github.com/navai/locindex/internal/config"
	"github.com/navai/locindex/internal/locindex"
	"github.com/navai/locindex/internal/naming"
	"github.com/navai/locindex/internal/source"
)

// newIndex wires the loader and override table selected by c. Empty paths
// fall back to the bundled assets.
func newIndex(c *config.Config) (*locindex.Index, error) {
	var loader source.Loader
	if c.Source.Dir != "" {
		loader = source.NewDirLoader(c.Source.Dir)
	} else {
		loader = source.NewFSLoader(assets.FS())
	}

	var (
		table *naming.Table
		err   error
	)
	if c.Overrides.Path != "" {
		table, err = naming.LoadTableFile(c.Overrides.Path)
	} else {
		table, err = assets.Overrides()
	}
	if err != nil {
		return nil, eris.Wrap(err, "load override table")
	}

	return locindex.New(loader, table,
		locindex.WithSourceName(c.Source.Name),
		locindex.WithMinQueryLength(c.Suggest.MinPrefix),
	), nil
}
