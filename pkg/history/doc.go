// Package history provides a generic linear undo/redo container.
//
// # Overview
//
// A [History] holds a past/present/future triple over any value type:
//
//   - [History.Set] and [History.Update] push the present onto the past,
//     install a new present, and clear the future
//   - [History.Undo] and [History.Redo] walk the timeline in either direction
//   - [History.Present] always returns a defined value
//
// Clearing the future on every Set is deliberate: history is a line, not a
// tree. Redo is only valid along the most recent undo path, and a new edit
// after an undo discards the abandoned branch. Undo followed by redo
// restores the exact prior value.
//
// # Value semantics
//
// The container stores whatever values it is handed. For undo/redo to be
// correct the stored values must be treated as immutable per version:
// mutate-in-place edits leak across snapshots. Produce a fresh value on
// every transition (darkroom's asset collections are rebuilt slices, so a
// plain assignment is enough).
//
// A History is not goroutine-safe; callers serialize access the same way
// they serialize the mutations themselves.
package history
