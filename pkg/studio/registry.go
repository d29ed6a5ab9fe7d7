package studio

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/google/uuid"

	"github.com/jverel/darkroom/pkg/errors"
	"github.com/jverel/darkroom/pkg/geom"
	"github.com/jverel/darkroom/pkg/history"
	"github.com/jverel/darkroom/pkg/imgio"
	"github.com/jverel/darkroom/pkg/observability"
)

// MinSelectionSize is the smallest selection edge, in display pixels,
// that ExtractRegion accepts. Smaller drags are treated as accidental.
const MinSelectionSize = 10

// Registry owns the asset collection, its undo history, and the
// pointer state layered on top (active asset, marked set).
//
// The collection is versioned: every mutation pushes a new snapshot
// onto the history, and Undo/Redo walk between snapshots. The active
// asset ID and the marked set are NOT versioned - they persist across
// history moves and are reconciled against whatever collection the
// move lands on.
//
// A Registry is not safe for concurrent use. The TUI drives it from
// a single event loop; the HTTP server serializes mutations with a
// mutex.
type Registry struct {
	hist     *history.History[Collection]
	activeID string
	marked   map[string]bool
	newID    func() string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		hist:   history.New(Collection{}),
		marked: make(map[string]bool),
		newID:  uuid.NewString,
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Collection returns the current snapshot.
func (r *Registry) Collection() Collection {
	return r.hist.Present()
}

// ActiveID returns the ID of the active asset, or "" if the
// collection is empty.
func (r *Registry) ActiveID() string {
	return r.activeID
}

// Active returns the active asset.
func (r *Registry) Active() (Asset, bool) {
	return r.hist.Present().Find(r.activeID)
}

// IsMarked reports whether the asset is in the marked set.
func (r *Registry) IsMarked(id string) bool {
	return r.marked[id]
}

// Marked returns the IDs in the marked set, sorted for determinism.
func (r *Registry) Marked() []string {
	ids := make([]string, 0, len(r.marked))
	for id := range r.marked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CanUndo reports whether an earlier snapshot exists.
func (r *Registry) CanUndo() bool {
	return r.hist.CanUndo()
}

// CanRedo reports whether a later snapshot exists.
func (r *Registry) CanRedo() bool {
	return r.hist.CanRedo()
}

// =============================================================================
// Mutations
// =============================================================================

// Import adds a batch of decoded images as new assets.
//
// The whole batch lands in a single history snapshot, so one undo
// removes all of them. If the collection had no active asset before
// the import, the first new asset becomes active and marked.
func (r *Registry) Import(ctx context.Context, decoded []imgio.Decoded) []Asset {
	return r.importBatch(ctx, decoded, 0)
}

// ImportFiles decodes the files at paths and imports the results.
//
// Files that fail to decode are skipped; each failure is returned as
// one error and does not prevent the remaining files from importing.
func (r *Registry) ImportFiles(ctx context.Context, paths []string) ([]Asset, []error) {
	decoded, errs := imgio.DecodeAll(paths)
	assets := r.importBatch(ctx, decoded, len(errs))
	return assets, errs
}

func (r *Registry) importBatch(ctx context.Context, decoded []imgio.Decoded, skipped int) []Asset {
	if len(decoded) == 0 {
		observability.Studio().OnImport(ctx, 0, skipped)
		return nil
	}

	assets := make([]Asset, len(decoded))
	for i, d := range decoded {
		assets[i] = Asset{
			ID:     r.newID(),
			Name:   d.Name,
			MIME:   d.MIME,
			Origin: OriginImport,
			Image:  d.Image,
		}
	}

	// Newest first: the batch lands at the front of the collection,
	// keeping display/recency order, in batch order among themselves.
	next := r.hist.Present().clone()
	next.Assets = append(append([]Asset{}, assets...), next.Assets...)
	r.hist.Set(next)

	if r.activeID == "" {
		r.activeID = assets[0].ID
		r.marked[assets[0].ID] = true
	}
	r.reconcile()

	observability.Studio().OnImport(ctx, len(assets), skipped)
	return assets
}

// ExtractRegion crops a display-space selection out of the asset with
// the given ID and adds the result as a new asset.
//
// sel is the committed selection in display pixels; displayW and
// displayH are the dimensions of the display surface the selection
// was drawn on. The selection is mapped to source pixels and clamped
// to the source bounds before cropping.
//
// An unknown sourceID is rejected with [errors.ErrCodeAssetNotFound]
// and leaves the registry untouched. Selections with either edge
// below [MinSelectionSize] are rejected with
// [errors.ErrCodeInvalidRect]. The new asset is prepended to the
// collection, becomes active, and is added to the marked set.
func (r *Registry) ExtractRegion(ctx context.Context, sourceID string, sel geom.Rect, displayW, displayH float64) (Asset, error) {
	source, ok := r.hist.Present().Find(sourceID)
	if !ok {
		return Asset{}, errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", sourceID)
	}
	if !sel.MinSize(MinSelectionSize) {
		return Asset{}, errors.New(errors.ErrCodeInvalidRect,
			"selection %s is below the %dpx minimum", sel, MinSelectionSize)
	}

	srcW, srcH := source.Width(), source.Height()
	mapped := geom.MapToSource(sel, displayW, displayH, float64(srcW), float64(srcH))
	px := mapped.ToPixels(srcW, srcH)
	if px.Empty() {
		return Asset{}, errors.New(errors.ErrCodeInvalidRect,
			"selection %s maps outside the source image", sel)
	}

	asset := Asset{
		ID:       r.newID(),
		Name:     fmt.Sprintf("crop of %s", source.Name),
		MIME:     "image/png",
		Origin:   OriginExtract,
		ParentID: source.ID,
		Image:    imgio.Crop(source.Image, px),
	}

	r.hist.Set(r.hist.Present().prepend(asset))
	r.activeID = asset.ID
	r.marked[asset.ID] = true
	r.reconcile()

	observability.Studio().OnExtract(ctx, source.ID, px.Dx(), px.Dy())
	return asset, nil
}

// PromoteResult adds an image returned by the edit service as a new
// asset. The asset is prepended and becomes active, but is not
// marked: edit results are reviewed before they join the next edit's
// inputs.
func (r *Registry) PromoteResult(ctx context.Context, name string, img image.Image, parentID string) (Asset, error) {
	if err := errors.ValidateAssetName(name); err != nil {
		return Asset{}, err
	}
	if img == nil {
		return Asset{}, errors.New(errors.ErrCodeInvalidInput, "promoted image must not be nil")
	}

	asset := Asset{
		ID:       r.newID(),
		Name:     name,
		MIME:     "image/png",
		Origin:   OriginEdit,
		ParentID: parentID,
		Image:    img,
	}

	r.hist.Set(r.hist.Present().prepend(asset))
	r.activeID = asset.ID
	r.reconcile()

	observability.Studio().OnPromote(ctx, asset.ID)
	return asset, nil
}

// Remove deletes the asset with the given ID from the collection.
func (r *Registry) Remove(id string) error {
	if !r.hist.Present().Contains(id) {
		return errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", id)
	}
	r.hist.Set(r.hist.Present().remove(id))
	r.reconcile()
	return nil
}

// Rename changes an asset's display name.
func (r *Registry) Rename(id, name string) error {
	if err := errors.ValidateAssetName(name); err != nil {
		return err
	}
	next := r.hist.Present().clone()
	for i := range next.Assets {
		if next.Assets[i].ID == id {
			next.Assets[i].Name = name
			r.hist.Set(next)
			return nil
		}
	}
	return errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", id)
}

// SetActive makes the asset with the given ID the active asset.
func (r *Registry) SetActive(id string) error {
	if !r.hist.Present().Contains(id) {
		return errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", id)
	}
	r.activeID = id
	return nil
}

// ToggleMark flips the asset's membership in the marked set.
// Toggling an ID that is not in the collection is a no-op.
func (r *Registry) ToggleMark(id string) {
	if !r.hist.Present().Contains(id) {
		return
	}
	if r.marked[id] {
		delete(r.marked, id)
	} else {
		r.marked[id] = true
	}
}

// =============================================================================
// History
// =============================================================================

// Undo steps back to the previous snapshot. It returns false if there
// is no earlier snapshot. The active asset and marked set are
// reconciled against the restored collection.
func (r *Registry) Undo(ctx context.Context) bool {
	if !r.hist.Undo() {
		return false
	}
	r.reconcile()
	observability.Studio().OnHistoryMove(ctx, "undo", r.hist.Present().Len())
	return true
}

// Redo steps forward to the next snapshot. It returns false if there
// is no later snapshot.
func (r *Registry) Redo(ctx context.Context) bool {
	if !r.hist.Redo() {
		return false
	}
	r.reconcile()
	observability.Studio().OnHistoryMove(ctx, "redo", r.hist.Present().Len())
	return true
}

// reconcile repairs the pointer state after the collection changed.
//
// Marked IDs that no longer resolve to an asset are dropped. If the
// active ID no longer resolves, the first asset in the collection
// becomes active (or "" when the collection is empty).
func (r *Registry) reconcile() {
	c := r.hist.Present()

	for id := range r.marked {
		if !c.Contains(id) {
			delete(r.marked, id)
		}
	}

	if !c.Contains(r.activeID) {
		if c.Len() > 0 {
			r.activeID = c.Assets[0].ID
		} else {
			r.activeID = ""
		}
	}
}
