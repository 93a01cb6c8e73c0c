// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Source: Reads one input file into observations
//   - SourceRegistry: Selects a source by file extension
//   - Report: Transforms a dataset into output rows
//   - ReportRegistry: Resolves report identifiers
//   - ConfigStore: Application configuration
//   - RunHistoryStore: Metadata of past pipeline runs
//
// # Presentation Interfaces
//
// Renderers are used by the driving adapters, not by services:
//
//   - Renderer: Writes one report result
//   - BatchRenderer: Writes all results of a run as one document
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, source, report, or render package
package driven
