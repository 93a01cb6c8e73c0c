package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure YAMLRenderer implements the interface.
var _ driven.Renderer = (*YAMLRenderer)(nil)

// yamlDocument mirrors Document with rows kept in column order.
type yamlDocument struct {
	Document `yaml:",inline"`
	Rows     []yaml.MapSlice `yaml:"rows"`
}

// YAMLRenderer writes one YAML document per report, each starting with "---".
type YAMLRenderer struct {
	env envelope
}

// NewYAML creates a YAML renderer.
func NewYAML(opts ...EnvelopeOption) *YAMLRenderer {
	return &YAMLRenderer{env: newEnvelope(opts)}
}

// Name returns the output format name.
func (y *YAMLRenderer) Name() string {
	return domain.FormatYAML.String()
}

// Render writes res as a YAML document.
func (y *YAMLRenderer) Render(w io.Writer, res domain.ReportResult) error {
	doc := yamlDocument{
		Document: y.env.document(res),
		Rows:     make([]yaml.MapSlice, 0, len(res.Rows)),
	}
	for _, row := range res.Rows {
		item := make(yaml.MapSlice, 0, len(res.Columns))
		for _, col := range res.Columns {
			item = append(item, yaml.MapItem{Key: col, Value: row[col]})
		}
		doc.Rows = append(doc.Rows, item)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", res.Name, err)
	}
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
