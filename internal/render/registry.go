package render

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Registry maps output formats to renderers.
type Registry struct {
	renderers map[domain.OutputFormat]driven.Renderer
}

// Options configures the renderers built by NewRegistry.
type Options struct {
	// Color is the colour mode for the table renderer.
	Color domain.ColorMode

	// Theme overrides the table palette.
	Theme *styles.Theme

	// Envelope configures JSON and YAML documents.
	Envelope []EnvelopeOption
}

// NewRegistry creates a registry holding every supported format.
// JSON and YAML documents from the same registry share a run ID.
func NewRegistry(opts Options) *Registry {
	env := append([]EnvelopeOption{WithRunID(uuid.NewString())}, opts.Envelope...)

	r := &Registry{renderers: make(map[domain.OutputFormat]driven.Renderer)}
	r.Register(domain.FormatTable, NewTable(opts.Color, opts.Theme))
	r.Register(domain.FormatMarkdown, NewMarkdown())
	r.Register(domain.FormatJSON, NewJSON(env...))
	r.Register(domain.FormatYAML, NewYAML(env...))
	r.Register(domain.FormatCSV, NewCSV())
	r.Register(domain.FormatXLSX, NewXLSX())
	return r
}

// Register adds or replaces the renderer for a format.
func (r *Registry) Register(format domain.OutputFormat, renderer driven.Renderer) {
	r.renderers[format] = renderer
}

// Get returns the renderer for a format.
func (r *Registry) Get(format domain.OutputFormat) (driven.Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return renderer, nil
}
