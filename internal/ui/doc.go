// Package ui implements an interactive terminal chart editor using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [BoardView] : The grid beside the custom and lastfm palletes, with a keyboard cursor
//  2. [FindView] : Filterable list of every album on the board; enter jumps to the selection
//  3. [ImportView] : Progress while an import file is read into a pallete
//
// Drag gestures map onto the keyboard: space picks up the album under the cursor, moving the cursor into
// another pane hovers it there, space again drops it and esc cancels. Every edit goes through the shared
// [grid.Editor], so a server or another front end driving the same editor sees the same board.
//
// Import progress flows through a channel from the [tasks.Importer], in the same non-blocking way as the
// other long-running tasks. Cell text is truncated by display width so wide titles keep the grid aligned.
package ui
