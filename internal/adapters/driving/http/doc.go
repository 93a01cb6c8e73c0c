// Package http serves the report pipeline over a read-only HTTP API.
//
// Every request to /reports/{name} re-reads the configured input files;
// nothing is cached between requests.
package http
