// Package population provides population reports.
package population

import (
	"context"
	"sort"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
)

// Ensure ContinentReport implements the interface.
var _ driven.Report = (*ContinentReport)(nil)

// ContinentReport sums population per continent.
// Each country contributes the population of its latest year that has one,
// under that record's continent. Countries without any population are
// left out.
type ContinentReport struct{}

// NewContinent creates the continent-population report.
func NewContinent() *ContinentReport {
	return &ContinentReport{}
}

// Name returns the report identifier.
func (r *ContinentReport) Name() string {
	return "continent-population"
}

// Description returns a one-line summary.
func (r *ContinentReport) Description() string {
	return "Total population per continent from each country's latest year, largest first"
}

// Columns returns the output fields.
func (r *ContinentReport) Columns() []string {
	return []string{"continent", "countries", "population"}
}

type continentTotal struct {
	continent  string
	countries  int64
	population int64
}

// Generate computes the per-continent totals.
func (r *ContinentReport) Generate(ctx context.Context, ds *domain.Dataset) ([]domain.Row, error) {
	var totals []*continentTotal
	byName := make(map[string]*continentTotal)

	ds.Each(func(_ string, records []domain.EconomicRecord) {
		latest, ok := latestWithPopulation(records)
		if !ok {
			return
		}
		pop, _ := latest.Population.Get()

		t, seen := byName[latest.Continent]
		if !seen {
			t = &continentTotal{continent: latest.Continent}
			byName[latest.Continent] = t
			totals = append(totals, t)
		}
		t.countries++
		t.population += pop
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].population > totals[j].population
	})

	rows := make([]domain.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, domain.Row{
			"continent":  t.continent,
			"countries":  t.countries,
			"population": t.population,
		})
	}
	return rows, nil
}

// latestWithPopulation returns the record with the highest year that has a
// population. For a repeated year the later record wins.
func latestWithPopulation(records []domain.EconomicRecord) (domain.EconomicRecord, bool) {
	var best domain.EconomicRecord
	found := false
	for _, rec := range records {
		if !rec.Population.Valid() {
			continue
		}
		if !found || rec.Year >= best.Year {
			best = rec
			found = true
		}
	}
	return best, found
}
