// Package sources selects the reader for each input file.
package sources

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/sources/csv"
	"github.com/custodia-labs/ecoreport/internal/sources/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.SourceRegistry = (*Registry)(nil)

// Registry maps file extensions to sources.
// Unknown or missing extensions use the fallback, since inputs are
// delimited text by default.
type Registry struct {
	mu       sync.RWMutex
	byExt    map[string]driven.Source
	fallback driven.Source
}

// NewRegistry creates a registry that falls back to the given source.
func NewRegistry(fallback driven.Source) *Registry {
	return &Registry{
		byExt:    make(map[string]driven.Source),
		fallback: fallback,
	}
}

// NewDefaultRegistry creates a registry with the built-in sources.
// delimiter applies to .csv and .txt files; .tsv always uses a tab.
func NewDefaultRegistry(delimiter rune) *Registry {
	fallback := csv.New(csv.WithDelimiter(delimiter))
	r := NewRegistry(fallback)
	r.Register(fallback)
	r.Register(csv.NewTSV())
	r.Register(xlsx.New())
	return r
}

// Register adds a source for each of its extensions.
// A later registration for the same extension replaces the earlier one.
func (r *Registry) Register(source driven.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range source.Extensions() {
		r.byExt[strings.ToLower(ext)] = source
	}
}

// For returns the source for path by its extension, case-insensitively.
func (r *Registry) For(path string) driven.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return r.fallback
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
