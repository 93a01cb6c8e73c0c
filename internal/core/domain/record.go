package domain

// EconomicRecord is one country-year observation.
// Year and Continent are always populated; every indicator is independently optional.
type EconomicRecord struct {
	// Year is the observation year.
	Year int

	// GDP is gross domestic product.
	GDP Optional[float64]

	// GDPGrowth is the year-on-year GDP growth rate.
	GDPGrowth Optional[float64]

	// Inflation is the inflation rate.
	Inflation Optional[float64]

	// Unemployment is the unemployment rate.
	Unemployment Optional[float64]

	// Population is the head count. Only integral source values are accepted.
	Population Optional[int64]

	// Continent is the continent name, whitespace trimmed.
	Continent string
}

// Observation pairs a country with one of its records.
// Sources emit observations in file row order.
type Observation struct {
	// Country is the dataset key, whitespace trimmed.
	Country string

	// Record is the parsed row.
	Record EconomicRecord
}

// Indicator names a numeric field of EconomicRecord.
type Indicator string

// Numeric indicators that reports can aggregate.
const (
	IndicatorGDP          Indicator = "gdp"
	IndicatorGDPGrowth    Indicator = "gdp_growth"
	IndicatorInflation    Indicator = "inflation"
	IndicatorUnemployment Indicator = "unemployment"
)

// IsValid returns true if the indicator is recognised.
func (i Indicator) IsValid() bool {
	switch i {
	case IndicatorGDP, IndicatorGDPGrowth, IndicatorInflation, IndicatorUnemployment:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Indicator) String() string {
	return string(i)
}

// Value returns the record's value for the given indicator.
// Unknown indicators are reported as absent.
func (r EconomicRecord) Value(i Indicator) Optional[float64] {
	switch i {
	case IndicatorGDP:
		return r.GDP
	case IndicatorGDPGrowth:
		return r.GDPGrowth
	case IndicatorInflation:
		return r.Inflation
	case IndicatorUnemployment:
		return r.Unemployment
	default:
		return None[float64]()
	}
}
