// Package file stores ecoreport settings as TOML on disk.
//
// The default location is ~/.ecoreport/config.toml. Nested tables are
// flattened to dot-notation keys ("output.format", "input.delimiter") so
// the rest of the application never sees the file layout.
package file
