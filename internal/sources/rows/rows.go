// Package rows converts header-keyed text rows into economic observations.
// It is shared by every tabular source so CSV and spreadsheet inputs obey
// the same column and coercion rules.
package rows

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// Column names every input must provide.
const (
	ColCountry      = "country"
	ColYear         = "year"
	ColGDP          = "gdp"
	ColGDPGrowth    = "gdp_growth"
	ColInflation    = "inflation"
	ColUnemployment = "unemployment"
	ColPopulation   = "population"
	ColContinent    = "continent"
)

// Required lists the required columns in canonical order.
var Required = []string{
	ColCountry, ColYear, ColGDP, ColGDPGrowth,
	ColInflation, ColUnemployment, ColPopulation, ColContinent,
}

var errNotFinite = errors.New("value is not finite")

// HeaderIndex maps a trimmed column name to its position.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// This should be called once per file, then reused for all rows.
// When a name repeats, the last occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// Parser converts the data rows of one file.
type Parser struct {
	header []string
	idx    HeaderIndex
}

// NewParser creates a parser for rows following header.
func NewParser(header []string) *Parser {
	cleaned := make([]string, len(header))
	for i, h := range header {
		cleaned[i] = strings.TrimSpace(h)
	}
	return &Parser{header: cleaned, idx: MakeHeaderIndex(cleaned)}
}

// Header returns the trimmed header.
func (p *Parser) Header() []string {
	return p.header
}

// Parse converts one data row. line is the 1-based source line, used only
// for error attribution. Failures are returned as *domain.RowError.
func (p *Parser) Parse(line int, row []string) (domain.Observation, error) {
	cells := make(map[string]string, len(Required))
	for _, col := range Required {
		pos, ok := p.idx[col]
		if !ok || pos >= len(row) {
			return domain.Observation{}, &domain.RowError{
				Line: line, Kind: domain.ErrMissingColumn, Column: col, Raw: p.raw(row),
			}
		}
		cells[col] = row[pos]
	}

	fail := func(col string, err error) error {
		return &domain.RowError{Line: line, Kind: domain.ErrRowConversion, Column: col, Raw: p.raw(row), Err: err}
	}

	year, err := strconv.Atoi(strings.TrimSpace(cells[ColYear]))
	if err != nil {
		return domain.Observation{}, fail(ColYear, err)
	}

	rec := domain.EconomicRecord{
		Year:      year,
		Continent: strings.TrimSpace(cells[ColContinent]),
	}

	floats := []struct {
		col string
		dst *domain.Optional[float64]
	}{
		{ColGDP, &rec.GDP},
		{ColGDPGrowth, &rec.GDPGrowth},
		{ColInflation, &rec.Inflation},
		{ColUnemployment, &rec.Unemployment},
	}
	for _, f := range floats {
		v, err := ParseFloat(cells[f.col])
		if err != nil {
			return domain.Observation{}, fail(f.col, err)
		}
		*f.dst = v
	}

	rec.Population, err = ParseInt(cells[ColPopulation])
	if err != nil {
		return domain.Observation{}, fail(ColPopulation, err)
	}

	return domain.Observation{
		Country: strings.TrimSpace(cells[ColCountry]),
		Record:  rec,
	}, nil
}

// raw renders the row as column=value pairs in header order.
// Cells beyond the header are listed by position.
func (p *Parser) raw(row []string) string {
	parts := make([]string, 0, len(row))
	for i, v := range row {
		name := fmt.Sprintf("#%d", i+1)
		if i < len(p.header) {
			name = p.header[i]
		}
		parts = append(parts, name+"="+v)
	}
	return strings.Join(parts, ", ")
}

// ParseFloat parses an optional float cell.
// Empty (after trimming) is absent; anything else must be a finite number.
func ParseFloat(s string) (domain.Optional[float64], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.None[float64](), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.None[float64](), err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.None[float64](), fmt.Errorf("%q: %w", s, errNotFinite)
	}
	return domain.Some(v), nil
}

// ParseInt parses an optional base-10 integer cell.
// Empty (after trimming) is absent. Decimal forms such as "1380000000.0"
// are rejected even when numerically integral.
func ParseInt(s string) (domain.Optional[int64], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.None[int64](), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return domain.None[int64](), err
	}
	return domain.Some(v), nil
}
