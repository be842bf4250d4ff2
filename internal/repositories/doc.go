// Package repositories implements SQLite persistence for saved charts and the live workspace.
//
// Key Implementations:
//   - [ChartRepository] : named board snapshots with soft deletes
//   - [SettingsRepository] : key-value settings
//   - [Workspace] : the live board and layout, stored as settings
//
// Sequence numbers provide stable, human-readable ordering (e.g., chart #3) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
