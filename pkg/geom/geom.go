package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in display or pointer space.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle with non-negative extent.
// Construct rects from user gestures with [Normalize] so the invariant holds.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Empty reports whether the rect has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// MinSize reports whether both extents are at least n units.
// Used as the extraction gate for degenerate click-selections.
func (r Rect) MinSize(n float64) bool {
	return r.W >= n && r.H >= n
}

// String returns the rect in "x,y wxh" form for logs and error messages.
func (r Rect) String() string {
	return fmt.Sprintf("%.1f,%.1f %.1fx%.1f", r.X, r.Y, r.W, r.H)
}

// FitScale returns the largest scale that fits a srcW×srcH image fully
// inside a boxW×boxH area while preserving aspect ratio:
// min(boxW/srcW, boxH/srcH).
//
// Source dimensions must be positive. A box with zero (or negative) area
// yields 0, and callers must not render at scale 0.
func FitScale(srcW, srcH, boxW, boxH float64) float64 {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0
	}
	return math.Min(boxW/srcW, boxH/srcH)
}

// DisplaySize returns the integer dimensions of the display buffer for a
// source scaled by scale: round(srcW*scale) × round(srcH*scale).
func DisplaySize(srcW, srcH, scale float64) (w, h int) {
	return int(math.Round(srcW * scale)), int(math.Round(srcH * scale))
}

// PointerToDisplay translates a pointer position into the display surface's
// coordinate space by subtracting the surface origin. The result may be
// negative or exceed the surface; clamping is left to the caller because
// clamp-during-drag versus clamp-at-commit is a UX decision.
func PointerToDisplay(pointer, surfaceOrigin Point) Point {
	return pointer.Sub(surfaceOrigin)
}

// Normalize returns the rectangle spanned by a fixed anchor and a moving
// point, with non-negative width and height and the origin at the true
// top-left. Dragging in any quadrant direction from the anchor yields the
// same rect as the mirrored drag.
func Normalize(anchor, current Point) Rect {
	return Rect{
		X: math.Min(anchor.X, current.X),
		Y: math.Min(anchor.Y, current.Y),
		W: math.Abs(current.X - anchor.X),
		H: math.Abs(current.Y - anchor.Y),
	}
}

// Clamp restricts r to the area [0,0 w×h], shrinking it as needed.
// An r entirely outside the area collapses to a zero-extent rect on the
// nearest edge.
func Clamp(r Rect, w, h float64) Rect {
	x0 := math.Min(math.Max(r.X, 0), w)
	y0 := math.Min(math.Max(r.Y, 0), h)
	x1 := math.Min(math.Max(r.X+r.W, 0), w)
	y1 := math.Min(math.Max(r.Y+r.H, 0), h)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// MapToSource scales a display-space rect into source space using
// independent X and Y ratios (srcW/displayW, srcH/displayH). The ratios are
// kept separate on purpose: rounding the display buffer to whole pixels can
// desync them from the ideal aspect ratio, and folding them into one scale
// would drift the mapping on the longer axis.
//
// The result is fractional. Rounding to pixel bounds belongs to the
// extraction step, via [Rect.ToPixels].
func MapToSource(r Rect, displayW, displayH, srcW, srcH float64) Rect {
	if displayW <= 0 || displayH <= 0 {
		return Rect{}
	}
	rx := srcW / displayW
	ry := srcH / displayH
	return Rect{
		X: r.X * rx,
		Y: r.Y * ry,
		W: r.W * rx,
		H: r.H * ry,
	}
}

// ToPixels converts a fractional source-space rect into an integer pixel
// rectangle bounded by a w×h image.
//
// Policy: the origin is floored (keeping it inside the selected area) and
// the extent is rounded (keeping the pixel count closest to the ideal at
// fractional scale boundaries), then the result is intersected with the
// image bounds. The returned rectangle may be empty.
func (r Rect) ToPixels(w, h int) image.Rectangle {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := x0 + int(math.Round(r.W))
	y1 := y0 + int(math.Round(r.H))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, w, h))
}
