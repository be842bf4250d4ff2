// Package tasks runs the long-running operations around the grid editor with real-time progress reporting.
//
// # Import
//
// [Importer] reads album lists from JSON or YAML files:
//
//  1. The file is read and YAML is converted to JSON
//  2. The document is validated against an embedded JSON schema
//  3. Records are deduplicated by normalized title and subtitle and converted to albums of the pallete's kind
//
// The host loads the resulting albums into a pallete. [Watch] re-runs a callback whenever an import file is saved.
//
// # Bulk Export
//
// [BulkExport] writes several saved charts with a worker pool and records the outcome in a manifest.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
