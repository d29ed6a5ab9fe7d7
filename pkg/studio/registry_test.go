package studio

import (
	"context"
	"image"
	"testing"

	"github.com/jverel/darkroom/pkg/errors"
	"github.com/jverel/darkroom/pkg/geom"
	"github.com/jverel/darkroom/pkg/imgio"
)

func testImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func testDecoded(name string, w, h int) imgio.Decoded {
	return imgio.Decoded{Image: testImage(w, h), MIME: "image/png", Name: name}
}

func TestImportBatchIsOneSnapshot(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	assets := r.Import(ctx, []imgio.Decoded{
		testDecoded("a.png", 10, 10),
		testDecoded("b.png", 10, 10),
		testDecoded("c.png", 10, 10),
	})
	if len(assets) != 3 {
		t.Fatalf("imported %d assets, want 3", len(assets))
	}
	if r.Collection().Len() != 3 {
		t.Fatalf("collection has %d assets, want 3", r.Collection().Len())
	}

	// The batch is one history step: one undo removes all of it.
	if !r.Undo(ctx) {
		t.Fatal("Undo failed")
	}
	if r.Collection().Len() != 0 {
		t.Errorf("collection has %d assets after undo, want 0", r.Collection().Len())
	}
}

func TestImportPrependsNewestFirst(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.Import(ctx, []imgio.Decoded{testDecoded("first.png", 10, 10)})
	r.Import(ctx, []imgio.Decoded{testDecoded("second.png", 10, 10)})

	names := collectionNames(r.Collection())
	want := []string{"second.png", "first.png"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Fatalf("collection order = %v, want %v", names, want)
	}

	// A batch lands at the front as a unit, keeping its own order.
	r.Import(ctx, []imgio.Decoded{
		testDecoded("b1.png", 10, 10),
		testDecoded("b2.png", 10, 10),
	})
	names = collectionNames(r.Collection())
	want = []string{"b1.png", "b2.png", "second.png", "first.png"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("collection order = %v, want %v", names, want)
		}
	}
}

func collectionNames(c Collection) []string {
	names := make([]string, c.Len())
	for i, a := range c.Assets {
		names[i] = a.Name
	}
	return names
}

func TestImportActivatesAndMarksFirst(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	assets := r.Import(ctx, []imgio.Decoded{
		testDecoded("a.png", 10, 10),
		testDecoded("b.png", 10, 10),
	})

	if r.ActiveID() != assets[0].ID {
		t.Errorf("active = %q, want first imported %q", r.ActiveID(), assets[0].ID)
	}
	if !r.IsMarked(assets[0].ID) {
		t.Error("first imported asset should be marked")
	}
	if r.IsMarked(assets[1].ID) {
		t.Error("second imported asset should not be marked")
	}

	// A later import into a non-empty workspace leaves the active asset alone.
	more := r.Import(ctx, []imgio.Decoded{testDecoded("c.png", 10, 10)})
	if r.ActiveID() != assets[0].ID {
		t.Errorf("active changed to %q after second import", r.ActiveID())
	}
	if r.IsMarked(more[0].ID) {
		t.Error("later imports should not be auto-marked")
	}
}

func TestExtractRegion(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	source := r.Import(ctx, []imgio.Decoded{testDecoded("photo.png", 2000, 1000)})[0]

	// A 2000x1000 source shown on a 500x250 surface is scaled by 1/4,
	// so a 100x50 selection at (100,50) covers source pixels
	// (400,200)-(800,400).
	sel := geom.Rect{X: 100, Y: 50, W: 100, H: 50}
	asset, err := r.ExtractRegion(ctx, source.ID, sel, 500, 250)
	if err != nil {
		t.Fatalf("ExtractRegion failed: %v", err)
	}

	if asset.Width() != 400 || asset.Height() != 200 {
		t.Errorf("extracted %dx%d, want 400x200", asset.Width(), asset.Height())
	}
	if asset.Origin != OriginExtract {
		t.Errorf("origin = %v, want extract", asset.Origin)
	}
	if asset.ParentID != source.ID {
		t.Errorf("parent = %q, want %q", asset.ParentID, source.ID)
	}

	// The new asset is prepended, active, and marked.
	if r.Collection().Assets[0].ID != asset.ID {
		t.Error("extracted asset should be first in the collection")
	}
	if r.ActiveID() != asset.ID {
		t.Error("extracted asset should be active")
	}
	if !r.IsMarked(asset.ID) {
		t.Error("extracted asset should be marked")
	}
}

func TestExtractRegionRejectsSmallSelection(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	r.Import(ctx, []imgio.Decoded{testDecoded("photo.png", 100, 100)})

	before := r.Collection().Len()
	_, err := r.ExtractRegion(ctx, r.ActiveID(), geom.Rect{X: 0, Y: 0, W: 5, H: 5}, 100, 100)
	if err == nil {
		t.Fatal("expected error for tiny selection")
	}
	if !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Errorf("code = %v, want ErrCodeInvalidRect", errors.GetCode(err))
	}
	if r.Collection().Len() != before {
		t.Error("rejected extraction must not change the collection")
	}
}

func TestExtractRegionUnknownSource(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	r.Import(ctx, []imgio.Decoded{testDecoded("photo.png", 100, 100)})

	before := r.Collection().Len()
	_, err := r.ExtractRegion(ctx, "no-such-id", geom.Rect{W: 50, H: 50}, 100, 100)
	if !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Errorf("code = %v, want ErrCodeAssetNotFound", errors.GetCode(err))
	}
	if r.Collection().Len() != before {
		t.Error("rejected extraction must not change the collection")
	}
}

func TestUndoReconcilesActiveAsset(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	a := r.Import(ctx, []imgio.Decoded{testDecoded("a.png", 10, 10)})[0]
	bc := r.Import(ctx, []imgio.Decoded{
		testDecoded("b.png", 10, 10),
		testDecoded("c.png", 10, 10),
	})

	if err := r.SetActive(bc[0].ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	// Undo removes b and c; the active pointer must fall back to a
	// surviving asset.
	if !r.Undo(ctx) {
		t.Fatal("Undo failed")
	}
	if r.ActiveID() != a.ID {
		t.Errorf("active = %q after undo, want %q", r.ActiveID(), a.ID)
	}
}

func TestMarkedSetPrunedOnRemoval(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	assets := r.Import(ctx, []imgio.Decoded{
		testDecoded("a.png", 10, 10),
		testDecoded("b.png", 10, 10),
		testDecoded("c.png", 10, 10),
	})
	a, b := assets[0], assets[1]

	r.ToggleMark(b.ID) // marked = {a, b}
	if len(r.Marked()) != 2 {
		t.Fatalf("marked = %v, want two IDs", r.Marked())
	}

	if err := r.Remove(b.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	marked := r.Marked()
	if len(marked) != 1 || marked[0] != a.ID {
		t.Errorf("marked = %v after removal, want [%s]", marked, a.ID)
	}
}

func TestMarkedSetSurvivesUndoRedo(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	a := r.Import(ctx, []imgio.Decoded{testDecoded("a.png", 10, 10)})[0]
	b := r.Import(ctx, []imgio.Decoded{testDecoded("b.png", 10, 10)})[0]
	r.ToggleMark(b.ID)

	// Undo drops b from the collection, so b leaves the marked set.
	r.Undo(ctx)
	if r.IsMarked(b.ID) {
		t.Error("b should be unmarked while absent from the collection")
	}
	if !r.IsMarked(a.ID) {
		t.Error("a should stay marked across undo")
	}

	// Redo brings b back, but marks are not resurrected.
	r.Redo(ctx)
	if r.IsMarked(b.ID) {
		t.Error("redo must not resurrect b's mark")
	}
}

func TestMutationClearsRedo(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.Import(ctx, []imgio.Decoded{testDecoded("a.png", 10, 10)})
	r.Import(ctx, []imgio.Decoded{testDecoded("b.png", 10, 10)})
	r.Undo(ctx)

	if !r.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}
	r.Import(ctx, []imgio.Decoded{testDecoded("c.png", 10, 10)})
	if r.CanRedo() {
		t.Error("a fresh mutation must discard the redo branch")
	}
}

func TestToggleMarkUnknownID(t *testing.T) {
	r := NewRegistry()
	r.ToggleMark("no-such-id")
	if len(r.Marked()) != 0 {
		t.Errorf("marked = %v, want empty", r.Marked())
	}
}

func TestPromoteResult(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	parent := r.Import(ctx, []imgio.Decoded{testDecoded("a.png", 10, 10)})[0]

	asset, err := r.PromoteResult(ctx, "edited", testImage(20, 20), parent.ID)
	if err != nil {
		t.Fatalf("PromoteResult failed: %v", err)
	}
	if asset.Origin != OriginEdit {
		t.Errorf("origin = %v, want edit", asset.Origin)
	}
	if r.ActiveID() != asset.ID {
		t.Error("promoted asset should be active")
	}
	if r.IsMarked(asset.ID) {
		t.Error("promoted asset should not be auto-marked")
	}
}

func TestPromoteResultValidation(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	if _, err := r.PromoteResult(ctx, "", testImage(10, 10), ""); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := r.PromoteResult(ctx, "ok", nil, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("code = %v, want ErrCodeInvalidInput", errors.GetCode(err))
	}
}

func TestRename(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	a := r.Import(ctx, []imgio.Decoded{testDecoded("a.png", 10, 10)})[0]

	if err := r.Rename(a.ID, "renamed.png"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	got, _ := r.Collection().Find(a.ID)
	if got.Name != "renamed.png" {
		t.Errorf("name = %q, want renamed.png", got.Name)
	}

	// Renames are undoable like any other mutation.
	r.Undo(ctx)
	got, _ = r.Collection().Find(a.ID)
	if got.Name != "a.png" {
		t.Errorf("name = %q after undo, want a.png", got.Name)
	}

	if err := r.Rename("no-such-id", "x"); !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Errorf("code = %v, want ErrCodeAssetNotFound", errors.GetCode(err))
	}
}

func TestRemoveUnknownID(t *testing.T) {
	r := NewRegistry()
	if err := r.Remove("no-such-id"); !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Errorf("code = %v, want ErrCodeAssetNotFound", errors.GetCode(err))
	}
}

func TestUndoRedoAtBoundaries(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	if r.Undo(ctx) {
		t.Error("Undo on a fresh registry should return false")
	}
	if r.Redo(ctx) {
		t.Error("Redo on a fresh registry should return false")
	}
}
