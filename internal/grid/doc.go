// Package grid reconciles moves of albums between the fixed-size chart grid and the pallete lists.
//
// # Reconciliation
//
// Every function in this package takes a [models.Board] and returns a new one; the input is never modified.
// Unresolvable identifiers and disallowed placements are no-ops that return the input board, never errors.
//
//   - [DragOver] : Moves the dragged album into the container under the pointer, evicting or padding so the
//     grid keeps exactly rows × columns slots
//   - [DragEnd] : Reorders within one container; dropping onto a placeholder swaps, anything else shifts
//   - [AutoFill] : Fills grid placeholders from the custom pallete, then the lastfm pallete
//   - [Clear] : Returns grid albums to their palletes and resets the grid to placeholders
//   - [Resize] : Pads or truncates the grid to new dimensions
//
// # Drag Sessions
//
// A [DragSession] carries the item displaced from a full grid while one gesture is in progress so a later
// [DragOver] in the same gesture can put it back. It is created at gesture start and discarded at the end.
//
// # Editor
//
// [Editor] owns the single live board and current session behind a mutex. Hosts (the TUI, the HTTP API)
// drive every operation through it so events are applied one at a time.
package grid
