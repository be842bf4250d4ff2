// Package models defines domain entities and persistence interfaces for the gridx album chart editor.
//
// The package contains three categories of types:
//
// 1. Items: the closed sum type placed into containers
//   - [Placeholder] : An empty slot reserving a position in a fixed-length container
//   - [Album] : A content item, either imported from listening history ([KindLastFM]) or user-made ([KindCustom])
//
// 2. Containers: the Container Map the reconciler operates on
//   - [Container] : A named, ordered list of items with accepted kinds and optional length bounds
//   - [Board] : The mapping from container name to [Container]
//
// 3. Persistent Entities: Database-backed models with full lifecycle management
//   - [Chart] : A named board snapshot saved by the user
//
// Boards are values. Every operation that changes one returns a new Board and leaves the input untouched.
// [BoardRecord] and [ItemRecord] are the JSON wire form shared by persistence, the HTTP API and exporters.
package models
