package reports

import (
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/reports/average"
	"github.com/custodia-labs/ecoreport/internal/reports/population"
)

// RegisterDefaults registers all built-in reports with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register("average-gdp", wrap(average.NewGDP()))
	r.Register("average-gdp-growth", wrap(average.NewGDPGrowth()))
	r.Register("average-inflation", wrap(average.NewInflation()))
	r.Register("average-unemployment", wrap(average.NewUnemployment()))
	r.Register("continent-population", wrap(population.NewContinent()))
}

// NewDefaultRegistry creates a registry holding the built-in reports.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// wrap turns a stateless report into a builder.
func wrap(report driven.Report) driven.ReportBuilder {
	return func() (driven.Report, error) {
		return report, nil
	}
}
