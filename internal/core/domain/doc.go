// Package domain defines the core business entities for ecoreport.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - EconomicRecord: One country-year observation
//   - Optional: An explicitly absent-or-present numeric value
//   - Dataset: The ordered, read-only mapping of country to records
//   - Row / ReportResult: The output of a report
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
