// Package reports holds the report registry and the built-in reports.
package reports

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ReportRegistry = (*Registry)(nil)

// Registry maps report identifiers to their builders.
// Lookup is exact and case-sensitive.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]driven.ReportBuilder
}

// NewRegistry creates an empty report registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]driven.ReportBuilder),
	}
}

// Register adds a report builder to the registry.
// Name should be unique and match the report's Name() return value.
func (r *Registry) Register(name string, builder driven.ReportBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// Has returns true if a report with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered report names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates a report by name.
// Returns domain.ErrUnknownReport if the name is not registered.
func (r *Registry) Build(name string) (driven.Report, error) {
	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownReport, name)
	}

	report, err := builder()
	if err != nil {
		return nil, fmt.Errorf("build report %s: %w", name, err)
	}
	return report, nil
}

// Resolve builds one report per name, in order, keeping duplicates.
// It stops at the first unknown name and returns no reports.
func (r *Registry) Resolve(names []string) ([]driven.Report, error) {
	out := make([]driven.Report, 0, len(names))
	for _, name := range names {
		report, err := r.Build(name)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, nil
}
