package history

import (
	"slices"
	"testing"
)

func TestSetUndoRedo(t *testing.T) {
	h := New(0)
	h.Set(1)
	h.Set(2)
	h.Set(3)

	if got := h.Present(); got != 3 {
		t.Fatalf("Present = %d, want 3", got)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Fatalf("CanUndo/CanRedo = %v/%v, want true/false", h.CanUndo(), h.CanRedo())
	}

	if !h.Undo() {
		t.Fatal("Undo returned false with non-empty past")
	}
	if got := h.Present(); got != 2 {
		t.Fatalf("Present after undo = %d, want 2", got)
	}

	if !h.Redo() {
		t.Fatal("Redo returned false with non-empty future")
	}
	if got := h.Present(); got != 3 {
		t.Fatalf("Present after redo = %d, want 3", got)
	}
}

// Undoing n times then redoing n times must walk the exact same states in
// reverse and then forward again, ending where it started.
func TestRoundTrip(t *testing.T) {
	states := []int{0, 1, 2, 3, 4, 5}

	h := New(states[0])
	for _, s := range states[1:] {
		h.Set(s)
	}

	var seen []int
	for h.Undo() {
		seen = append(seen, h.Present())
	}
	want := []int{4, 3, 2, 1, 0}
	if !slices.Equal(seen, want) {
		t.Fatalf("undo walk = %v, want %v", seen, want)
	}
	if h.CanUndo() {
		t.Fatal("CanUndo = true at the start of history")
	}

	seen = seen[:0]
	for h.Redo() {
		seen = append(seen, h.Present())
	}
	want = []int{1, 2, 3, 4, 5}
	if !slices.Equal(seen, want) {
		t.Fatalf("redo walk = %v, want %v", seen, want)
	}
	if got := h.Present(); got != 5 {
		t.Fatalf("Present after round trip = %d, want 5", got)
	}
}

func TestSetClearsFuture(t *testing.T) {
	h := New(0)
	h.Set(1)
	h.Set(2)
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("CanRedo = false after undo")
	}

	h.Set(10)

	if h.CanRedo() {
		t.Fatal("CanRedo = true after a new Set; future must be discarded")
	}
	if h.Redo() {
		t.Fatal("Redo took a step after the future was discarded")
	}
	if got := h.Present(); got != 10 {
		t.Fatalf("Present = %d, want 10", got)
	}

	// The abandoned branch is gone but the prior line is intact.
	h.Undo()
	if got := h.Present(); got != 1 {
		t.Fatalf("Present after undo = %d, want 1", got)
	}
}

func TestNoOpAtBounds(t *testing.T) {
	h := New("only")

	if h.Undo() {
		t.Error("Undo on fresh history should be a no-op")
	}
	if h.Redo() {
		t.Error("Redo on fresh history should be a no-op")
	}
	if got := h.Present(); got != "only" {
		t.Errorf("Present = %q, want %q", got, "only")
	}
}

func TestUpdate(t *testing.T) {
	h := New([]string{"a"})
	h.Update(func(cur []string) []string {
		next := append([]string{"b"}, cur...)
		return next
	})

	if got := h.Present(); !slices.Equal(got, []string{"b", "a"}) {
		t.Fatalf("Present = %v, want [b a]", got)
	}

	h.Undo()
	if got := h.Present(); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("Present after undo = %v, want [a]", got)
	}
}

func TestDepth(t *testing.T) {
	h := New(0)
	for i := 1; i <= 4; i++ {
		h.Set(i)
	}
	if got := h.Depth(); got != 4 {
		t.Fatalf("Depth = %d, want 4", got)
	}
	h.Undo()
	if got := h.Depth(); got != 3 {
		t.Fatalf("Depth after undo = %d, want 3", got)
	}
}
