// Package studio implements the asset workspace: a versioned collection
// of images with an active asset and a marked set layered on top.
//
// # Overview
//
// The [Registry] is the single owner of workspace state. Every way an
// asset can appear - importing files, cropping a selection out of an
// existing asset, promoting an edit-service result - goes through a
// registry mutation, and every mutation pushes a new [Collection]
// snapshot onto an undo history.
//
// # History Semantics
//
// History is linear. Undo walks back through snapshots, redo walks
// forward, and any fresh mutation after an undo discards the redo
// branch. A batch import is one snapshot: undoing it removes the whole
// batch at once.
//
// # Pointer State
//
// Two pieces of state live outside the history:
//
//   - The active asset ID: the asset shown in the preview and the
//     target of extraction.
//   - The marked set: the assets selected as inputs for the next edit.
//
// Both survive undo and redo. After every mutation they are reconciled
// against the current collection: marked IDs for assets that no longer
// exist are dropped, and if the active asset disappeared the first
// asset in the collection takes over.
//
// # Extraction
//
// [Registry.ExtractRegion] takes a source asset ID and a selection in
// display pixels, maps the selection into the source's pixels, clamps
// it to the source bounds, and crops. Selections smaller than [MinSelectionSize] on
// either edge are rejected as accidental drags.
//
// # Provenance
//
// Every derived asset records the ID of the asset it came from in its
// ParentID field. The provenance package turns these links into a
// renderable derivation graph.
//
// # Concurrency
//
// A Registry is not safe for concurrent use; callers serialize access.
package studio
