// Package selection tracks an in-progress or committed rectangular
// selection over the active asset's display surface.
//
// A [Machine] moves through three states:
//
//	Empty → Dragging → Committed
//
// [Machine.Begin] starts a drag from Empty or Committed (starting over an
// old committed rect replaces it). [Machine.Update] is only meaningful while
// dragging and recomputes the pending rect from the fixed anchor.
// [Machine.End] commits whatever is pending, even a zero-area click;
// extraction applies its own minimum-size gate separately. [Machine.Reset]
// returns to Empty from any state and must be called whenever the active
// asset changes, since a selection is meaningless against a different image.
//
// All coordinates are display-space pixels. The machine performs no
// clamping; callers clamp per their own drag policy before or after commit.
package selection

import "github.com/jverel/darkroom/pkg/geom"

// State identifies where the machine is in the drag lifecycle.
type State int

const (
	// Empty means no selection exists and none is being made.
	Empty State = iota
	// Dragging means a drag is in progress and the pending rect follows
	// the pointer.
	Dragging
	// Committed means a drag has finished and the pending rect is fixed.
	Committed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// Machine is the selection state machine. The zero value is an Empty
// machine ready for use.
type Machine struct {
	state   State
	anchor  geom.Point
	pending geom.Rect
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	return m.state
}

// Pending returns the current selection rect. It is the zero rect while
// Empty, follows the pointer while Dragging, and is fixed once Committed.
func (m *Machine) Pending() geom.Rect {
	return m.pending
}

// Begin starts a new drag anchored at p. It is only valid from Empty or
// Committed; calling it mid-drag is ignored so a stray extra press cannot
// re-anchor an active gesture. The pending rect starts as a zero-area rect
// at the anchor.
func (m *Machine) Begin(p geom.Point) {
	if m.state == Dragging {
		return
	}
	m.state = Dragging
	m.anchor = p
	m.pending = geom.Rect{X: p.X, Y: p.Y}
}

// Update recomputes the pending rect for pointer position p. Outside of
// Dragging it is a no-op.
func (m *Machine) Update(p geom.Point) {
	if m.state != Dragging {
		return
	}
	m.pending = geom.Normalize(m.anchor, p)
}

// End commits the drag unconditionally, including zero-area rects. Outside
// of Dragging it is a no-op.
func (m *Machine) End() {
	if m.state != Dragging {
		return
	}
	m.state = Committed
}

// Reset discards any pending or committed selection from any state.
func (m *Machine) Reset() {
	m.state = Empty
	m.anchor = geom.Point{}
	m.pending = geom.Rect{}
}
