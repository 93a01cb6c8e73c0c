package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure JSONRenderer implements the interface.
var _ driven.Renderer = (*JSONRenderer)(nil)

// Document is the envelope written for each report by the JSON and YAML
// renderers. All documents of one run share a RunID.
type Document struct {
	RunID       string       `json:"run_id" yaml:"run_id"`
	Report      string       `json:"report" yaml:"report"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Columns     []string     `json:"columns" yaml:"columns"`
	Rows        []domain.Row `json:"rows" yaml:"-"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// envelope stamps report results with a run identifier and time.
type envelope struct {
	runID string
	now   func() time.Time
}

// EnvelopeOption configures the JSON and YAML document envelope.
type EnvelopeOption func(*envelope)

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) EnvelopeOption {
	return func(e *envelope) {
		e.runID = id
	}
}

// ForRun returns opts preceded by a run ID option. Options in opts still
// take precedence. An empty runID leaves opts unchanged.
func ForRun(runID string, opts ...EnvelopeOption) []EnvelopeOption {
	if runID == "" {
		return opts
	}
	return append([]EnvelopeOption{WithRunID(runID)}, opts...)
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) EnvelopeOption {
	return func(e *envelope) {
		e.now = now
	}
}

func newEnvelope(opts []EnvelopeOption) envelope {
	e := envelope{
		runID: uuid.NewString(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// document builds the envelope for one result.
func (e envelope) document(res domain.ReportResult) Document {
	doc := Document{
		RunID:       e.runID,
		Report:      res.Name,
		GeneratedAt: e.now().UTC(),
		Columns:     res.Columns,
		Rows:        res.Rows,
	}
	if doc.Columns == nil {
		doc.Columns = []string{}
	}
	if doc.Rows == nil {
		doc.Rows = []domain.Row{}
	}
	if res.Err != nil {
		doc.Error = res.Err.Error()
	}
	return doc
}

// JSONRenderer writes one indented JSON document per report.
type JSONRenderer struct {
	env envelope
}

// NewJSON creates a JSON renderer.
func NewJSON(opts ...EnvelopeOption) *JSONRenderer {
	return &JSONRenderer{env: newEnvelope(opts)}
}

// Name returns the output format name.
func (j *JSONRenderer) Name() string {
	return domain.FormatJSON.String()
}

// RunID returns the identifier stamped on every document.
func (j *JSONRenderer) RunID() string {
	return j.env.runID
}

// Document returns the envelope for res without encoding it.
func (j *JSONRenderer) Document(res domain.ReportResult) Document {
	return j.env.document(res)
}

// Render writes res as a JSON document.
func (j *JSONRenderer) Render(w io.Writer, res domain.ReportResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j.env.document(res)); err != nil {
		return fmt.Errorf("encoding %s: %w", res.Name, err)
	}
	return nil
}
