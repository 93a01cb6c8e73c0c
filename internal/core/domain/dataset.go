package domain

// Dataset maps country names to their records.
// Countries iterate in the order they were first appended, and records
// keep file-then-row order. Once ingestion hands a Dataset to reports it
// is treated as read-only; accessors return copies.
type Dataset struct {
	order   []string
	records map[string][]EconomicRecord
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		records: make(map[string][]EconomicRecord),
	}
}

// Append adds a record to the country's sequence, creating the key on first use.
// Records are never merged or deduplicated.
func (d *Dataset) Append(country string, rec EconomicRecord) {
	if d.records == nil {
		d.records = make(map[string][]EconomicRecord)
	}
	if _, ok := d.records[country]; !ok {
		d.order = append(d.order, country)
	}
	d.records[country] = append(d.records[country], rec)
}

// AppendObservations appends each observation in order.
func (d *Dataset) AppendObservations(obs []Observation) {
	for i := range obs {
		d.Append(obs[i].Country, obs[i].Record)
	}
}

// Countries returns country keys in first-insertion order.
func (d *Dataset) Countries() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Records returns a copy of the records for a country.
// The boolean is false if the country is not present.
func (d *Dataset) Records(country string) ([]EconomicRecord, bool) {
	if d == nil {
		return nil, false
	}
	recs, ok := d.records[country]
	if !ok {
		return nil, false
	}
	out := make([]EconomicRecord, len(recs))
	copy(out, recs)
	return out, true
}

// Each calls fn for every country in insertion order.
// The records slice passed to fn is a copy.
func (d *Dataset) Each(fn func(country string, records []EconomicRecord)) {
	if d == nil {
		return
	}
	for _, country := range d.order {
		recs, _ := d.Records(country)
		fn(country, recs)
	}
}

// Len returns the number of countries.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// IsEmpty returns true if the dataset has no countries.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// RecordCount returns the total number of records across all countries.
func (d *Dataset) RecordCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, recs := range d.records {
		n += len(recs)
	}
	return n
}
