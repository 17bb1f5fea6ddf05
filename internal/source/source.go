// Package source supplies the raw bytes of named feature collections.
package source

import (
	"context"
	"io/fs"
	"os"
	"sync"

	"github.com/rotisserie/eris"
)

// ErrSourceUnavailable is returned when a named source cannot be read.
var ErrSourceUnavailable = eris.New("source: unavailable")

// Loader returns the raw content of a named source.
type Loader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// FSLoader reads sources from a filesystem such as an embedded asset bundle
// or a directory on disk.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a loader reading from dir.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

// Load reads name from the filesystem.
func (l *FSLoader) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrapf(ErrSourceUnavailable, "load %s: %v", name, err)
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, eris.Wrapf(ErrSourceUnavailable, "load %s: %v", name, err)
	}
	return data, nil
}

// MemoryLoader serves sources from memory and counts reads per name.
type MemoryLoader struct {
	mu    sync.Mutex
	data  map[string][]byte
	reads map[string]int
}

// NewMemoryLoader creates a loader over a name to content mapping.
func NewMemoryLoader(data map[string][]byte) *MemoryLoader {
	m := &MemoryLoader{data: make(map[string][]byte, len(data)), reads: map[string]int{}}
	for k, v := range data {
		m.data[k] = v
	}
	return m
}

// Set replaces the content of a named source.
func (m *MemoryLoader) Set(name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = content
}

// Load returns the content stored under name.
func (m *MemoryLoader) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[name]++

	content, ok := m.data[name]
	if !ok {
		return nil, eris.Wrapf(ErrSourceUnavailable, "load %s: not found", name)
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// Reads returns how many times name was requested.
func (m *MemoryLoader) Reads(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[name]
}
