package geom

import (
	"image"
	"math"
	"testing"
)

func TestFitScale(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, boxW, boxH float64
		want                   float64
	}{
		{"wide source limited by width", 2000, 1000, 500, 500, 0.25},
		{"very wide source", 2000, 500, 500, 500, 0.25},
		{"tall source limited by height", 500, 2000, 500, 500, 0.25},
		{"upscale small source", 100, 100, 500, 500, 5},
		{"exact fit", 500, 500, 500, 500, 1},
		{"zero-area box", 2000, 1000, 0, 500, 0},
		{"zero-height box", 2000, 1000, 500, 0, 0},
		{"invalid source", 0, 1000, 500, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitScale(tt.srcW, tt.srcH, tt.boxW, tt.boxH)
			if got != tt.want {
				t.Errorf("FitScale(%v, %v, %v, %v) = %v, want %v",
					tt.srcW, tt.srcH, tt.boxW, tt.boxH, got, tt.want)
			}
		})
	}
}

func TestDisplaySize(t *testing.T) {
	w, h := DisplaySize(2000, 1000, 0.25)
	if w != 500 || h != 250 {
		t.Errorf("DisplaySize = %dx%d, want 500x250", w, h)
	}

	// Rounding, not truncation: 333*0.5 = 166.5 rounds up.
	w, h = DisplaySize(333, 333, 0.5)
	if w != 167 || h != 167 {
		t.Errorf("DisplaySize = %dx%d, want 167x167", w, h)
	}
}

func TestPointerToDisplay(t *testing.T) {
	p := PointerToDisplay(Point{X: 120, Y: 80}, Point{X: 100, Y: 50})
	if p.X != 20 || p.Y != 30 {
		t.Errorf("PointerToDisplay = %+v, want {20 30}", p)
	}

	// No clamping: positions left of or above the surface stay negative.
	p = PointerToDisplay(Point{X: 90, Y: 40}, Point{X: 100, Y: 50})
	if p.X != -10 || p.Y != -10 {
		t.Errorf("PointerToDisplay = %+v, want {-10 -10}", p)
	}
}

func TestNormalize(t *testing.T) {
	anchor := Point{X: 50, Y: 50}
	want := Rect{X: 10, Y: 20, W: 40, H: 30}

	got := Normalize(anchor, Point{X: 10, Y: 20})
	if got != want {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}

	// Dragging toward any of the four quadrants never yields a negative extent.
	quadrants := []Point{
		{X: 90, Y: 90},
		{X: 10, Y: 90},
		{X: 90, Y: 10},
		{X: 10, Y: 10},
	}
	for _, cur := range quadrants {
		r := Normalize(anchor, cur)
		if r.W < 0 || r.H < 0 {
			t.Errorf("Normalize(%+v, %+v) has negative extent: %+v", anchor, cur, r)
		}
		if r.W != 40 || r.H != 40 {
			t.Errorf("Normalize(%+v, %+v) = %+v, want 40x40 extent", anchor, cur, r)
		}
	}

	// Zero-area click.
	r := Normalize(anchor, anchor)
	if !r.Empty() {
		t.Errorf("Normalize(p, p) = %+v, want empty", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"inside", Rect{10, 10, 50, 50}, Rect{10, 10, 50, 50}},
		{"overhang right-bottom", Rect{80, 80, 50, 50}, Rect{80, 80, 20, 20}},
		{"overhang left-top", Rect{-10, -10, 50, 50}, Rect{0, 0, 40, 40}},
		{"fully outside", Rect{200, 200, 50, 50}, Rect{100, 100, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.r, 100, 100)
			if got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.r, got, tt.want)
			}
		})
	}
}

func TestMapToSource(t *testing.T) {
	// 2000x1000 fit into 500x500: scale 0.25, display buffer 500x250.
	scale := FitScale(2000, 1000, 500, 500)
	dw, dh := DisplaySize(2000, 1000, scale)

	got := MapToSource(Rect{X: 100, Y: 50, W: 100, H: 50}, float64(dw), float64(dh), 2000, 1000)
	want := Rect{X: 400, Y: 200, W: 400, H: 200}
	if got != want {
		t.Errorf("MapToSource = %+v, want %+v", got, want)
	}

	// Aspect not matching the box-limiting axis: 2000x500 into 500x500
	// gives a 500x125 display buffer, ratios 4.0 on both axes.
	scale = FitScale(2000, 500, 500, 500)
	dw, dh = DisplaySize(2000, 500, scale)
	if dw != 500 || dh != 125 {
		t.Fatalf("display buffer = %dx%d, want 500x125", dw, dh)
	}

	got = MapToSource(Rect{X: 100, Y: 25, W: 50, H: 25}, float64(dw), float64(dh), 2000, 500)
	want = Rect{X: 400, Y: 100, W: 200, H: 100}
	if got != want {
		t.Errorf("MapToSource = %+v, want %+v", got, want)
	}

	// Degenerate display buffer maps to nothing.
	if got := MapToSource(Rect{X: 1, Y: 1, W: 1, H: 1}, 0, 0, 100, 100); got != (Rect{}) {
		t.Errorf("MapToSource with zero display = %+v, want zero rect", got)
	}
}

func TestMapToSource_IndependentRatios(t *testing.T) {
	// A 999x333 source in a 100x100 box rounds to a 100x33 display buffer,
	// which makes the X and Y ratios unequal. The mapping must not collapse
	// them into one.
	scale := FitScale(999, 333, 100, 100)
	dw, dh := DisplaySize(999, 333, scale)

	r := MapToSource(Rect{X: 0, Y: 0, W: float64(dw), H: float64(dh)}, float64(dw), float64(dh), 999, 333)
	if math.Abs(r.W-999) > 1e-9 || math.Abs(r.H-333) > 1e-9 {
		t.Errorf("full-surface rect maps to %+v, want full source 999x333", r)
	}
}

func TestRect_ToPixels(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		w, h int
		want image.Rectangle
	}{
		{"integral", Rect{400, 200, 400, 200}, 2000, 1000, image.Rect(400, 200, 800, 400)},
		{"fractional origin floors", Rect{10.7, 10.2, 20, 20}, 100, 100, image.Rect(10, 10, 30, 30)},
		{"fractional extent rounds", Rect{0, 0, 10.5, 10.4}, 100, 100, image.Rect(0, 0, 11, 10)},
		{"clamped to bounds", Rect{90, 90, 20, 20}, 100, 100, image.Rect(90, 90, 100, 100)},
		{"outside bounds is empty", Rect{200, 200, 10, 10}, 100, 100, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.ToPixels(tt.w, tt.h)
			if got != tt.want {
				t.Errorf("ToPixels(%+v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestRect_MinSize(t *testing.T) {
	if (Rect{W: 5, H: 50}).MinSize(10) {
		t.Error("5x50 should fail the 10-unit gate")
	}
	if (Rect{W: 50, H: 5}).MinSize(10) {
		t.Error("50x5 should fail the 10-unit gate")
	}
	if !(Rect{W: 10, H: 10}).MinSize(10) {
		t.Error("10x10 should pass the 10-unit gate")
	}
}
