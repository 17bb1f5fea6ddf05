// Package naming assigns display names to road segments from a curated
// override table, falling back to a generated technical name.
package naming

import (
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Table maps segment ids to curated display names. A Table is read-only once
// loaded and safe for concurrent use.
type Table struct {
	Version string            `yaml:"version" validate:"required"`
	Names   map[string]string `yaml:"names" validate:"dive,keys,required,endkeys,required"`
}

// NewTable builds a table from an in-memory mapping. Blank names are dropped.
func NewTable(version string, names map[string]string) *Table {
	t := &Table{Version: version, Names: make(map[string]string, len(names))}
	for id, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			t.Names[id] = name
		}
	}
	return t
}

// LoadTable decodes and validates a YAML override table.
func LoadTable(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, eris.Wrap(err, "naming: decode override table")
	}

	for id, name := range t.Names {
		t.Names[id] = strings.TrimSpace(name)
	}
	if t.Names == nil {
		t.Names = map[string]string{}
	}

	if err := validator.New().Struct(t); err != nil {
		return nil, eris.Wrap(err, "naming: validate override table")
	}
	return &t, nil
}

// LoadTableFile reads a YAML override table from disk.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "naming: open override table %s", path)
	}
	defer f.Close() //nolint:errcheck

	return LoadTable(f)
}

// Lookup returns the curated name for a segment id.
func (t *Table) Lookup(segmentID string) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.Names[segmentID]
	return name, ok
}

// Len returns the number of curated names.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Names)
}
