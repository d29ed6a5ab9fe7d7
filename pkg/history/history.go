package history

// History is a linear undo/redo container over values of type T.
// The zero value is not usable; create instances with [New] so present is
// always defined.
type History[T any] struct {
	past    []T
	present T
	future  []T
}

// New creates a History with the given initial present value and empty
// past and future.
func New[T any](initial T) *History[T] {
	return &History[T]{present: initial}
}

// Present returns the current value.
func (h *History[T]) Present() T {
	return h.present
}

// Set installs v as the new present. The old present is appended to the
// past and the future is cleared, discarding any redo path.
func (h *History[T]) Set(v T) {
	h.past = append(h.past, h.present)
	h.present = v
	h.future = nil
}

// Update applies fn to the present and installs the result via [History.Set].
// It exists so callers can derive the next version from the current one
// without reading and writing in two steps.
func (h *History[T]) Update(fn func(T) T) {
	h.Set(fn(h.present))
}

// Undo steps back to the most recent past value. The displaced present is
// pushed onto the front of the future. Undo reports whether a step was
// taken; with an empty past it is a no-op.
func (h *History[T]) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]T{h.present}, h.future...)
	h.present = last
	return true
}

// Redo steps forward to the nearest future value. The displaced present is
// appended to the past. Redo reports whether a step was taken; with an
// empty future it is a no-op.
func (h *History[T]) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}

// CanUndo reports whether the past is non-empty.
func (h *History[T]) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether the future is non-empty.
func (h *History[T]) CanRedo() bool {
	return len(h.future) > 0
}

// Depth returns the number of past versions currently held.
func (h *History[T]) Depth() int {
	return len(h.past)
}
