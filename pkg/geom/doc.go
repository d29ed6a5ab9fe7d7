// Package geom provides the coordinate math between a scaled display
// surface and the source pixel space of an image.
//
// # Overview
//
// Darkroom renders images into a preview area that is usually smaller than
// the image itself. Selections are made in that display space and must be
// mapped back to source pixels before any extraction happens. This package
// holds the pure functions for that mapping:
//
//   - [FitScale]: largest aspect-preserving scale that fits a source into a box
//   - [DisplaySize]: integer display buffer dimensions for a given scale
//   - [PointerToDisplay]: translate pointer coordinates into surface space
//   - [Normalize]: turn an anchor/cursor pair into a non-negative rect
//   - [MapToSource]: scale a display rect into fractional source coordinates
//   - [Rect.ToPixels]: the rounding policy for pixel-buffer slicing
//
// # Coordinate spaces
//
// Three spaces are involved:
//
//   - Pointer space: raw event coordinates, relative to some outer surface
//   - Display space: pixels of the rendered (downscaled) preview buffer
//   - Source space: pixels of the original, full-resolution image
//
// All functions are pure and hold no state. None of them clamp unless the
// name says so: whether a drag is clamped during motion or only at commit is
// a caller policy, not a geometric fact.
//
// # Rounding
//
// [MapToSource] returns fractional coordinates because the X and Y scale
// ratios can differ slightly once display dimensions are rounded to whole
// pixels. [Rect.ToPixels] applies the single rounding policy used everywhere
// in darkroom: floor the origin, round the extent, clamp to the bounds.
package geom
