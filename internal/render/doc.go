// Package render presents report results in the supported output formats.
//
// Every renderer takes the rows exactly as the report produced them;
// formatting only changes how values are displayed, never which rows appear
// or in what order.
package render
