// Package average provides per-country mean reports over one indicator.
package average

import (
	"context"
	"sort"
	"strconv"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure Report implements the interface.
var _ driven.Report = (*Report)(nil)

// Report averages one indicator per country.
// Countries with no present value are left out. Rows are sorted by the
// mean, descending; equal means keep dataset order.
type Report struct {
	name        string
	description string
	indicator   domain.Indicator
	field       string
}

// New creates an average report for indicator. The output row has the
// fields "country" and field.
func New(name, description string, indicator domain.Indicator, field string) *Report {
	return &Report{
		name:        name,
		description: description,
		indicator:   indicator,
		field:       field,
	}
}

// NewGDP creates the average-gdp report.
func NewGDP() *Report {
	return New("average-gdp", "Average GDP per country, highest first", domain.IndicatorGDP, "avg_gdp")
}

// NewGDPGrowth creates the average-gdp-growth report.
func NewGDPGrowth() *Report {
	return New("average-gdp-growth", "Average GDP growth rate per country, highest first", domain.IndicatorGDPGrowth, "avg_gdp_growth")
}

// NewInflation creates the average-inflation report.
func NewInflation() *Report {
	return New("average-inflation", "Average inflation rate per country, highest first", domain.IndicatorInflation, "avg_inflation")
}

// NewUnemployment creates the average-unemployment report.
func NewUnemployment() *Report {
	return New("average-unemployment", "Average unemployment rate per country, highest first", domain.IndicatorUnemployment, "avg_unemployment")
}

// Name returns the report identifier.
func (r *Report) Name() string {
	return r.name
}

// Description returns a one-line summary.
func (r *Report) Description() string {
	return r.description
}

// Columns returns the output fields.
func (r *Report) Columns() []string {
	return []string{"country", r.field}
}

type countryMean struct {
	country string
	mean    float64
}

// Generate computes the mean of present values for each country.
func (r *Report) Generate(ctx context.Context, ds *domain.Dataset) ([]domain.Row, error) {
	means := make([]countryMean, 0, ds.Len())

	ds.Each(func(country string, records []domain.EconomicRecord) {
		var sum float64
		var n int
		for _, rec := range records {
			if v, ok := rec.Value(r.indicator).Get(); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			return
		}
		means = append(means, countryMean{country: country, mean: Round2(sum / float64(n))})
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(means, func(i, j int) bool {
		return means[i].mean > means[j].mean
	})

	rows := make([]domain.Row, 0, len(means))
	for _, m := range means {
		rows = append(rows, domain.Row{
			"country": m.country,
			r.field:   m.mean,
		})
	}
	return rows, nil
}

// Round2 rounds the exact binary value of v to two decimal places. Only
// values exactly halfway between two candidates round to even.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
