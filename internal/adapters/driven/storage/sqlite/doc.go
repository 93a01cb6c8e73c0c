// Package sqlite stores pipeline run history in SQLite.
//
// It uses modernc.org/sqlite, a pure Go driver, so the binary still builds
// without CGO. Only run metadata is stored: input paths, requested reports,
// counts and errors. Ingested rows are never written.
//
// # Schema
//
// The schema is managed through numbered migrations embedded from the
// migrations/ directory (001_runs.up.sql and so on). Applied versions are
// tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.ecoreport/history.db
package sqlite
