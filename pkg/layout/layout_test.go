package layout

import (
	"testing"
)

// area is a test helper that creates a Rect at origin with the given size.
func area(w, h int) Rect {
	return Rect{X: 0, Y: 0, Width: w, Height: h}
}

// assertRectsEqual fails the test if got and want differ.
func assertRectsEqual(t *testing.T, label string, got, want []Rect) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len(got)=%d, want %d\ngot:  %v\nwant: %v", label, len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %v, want %v", label, i, got[i], want[i])
		}
	}
}

// --- Fill constraints ---

func TestSingleFillFillsEntireArea(t *testing.T) {
	rects := Split(area(100, 50), Horizontal, 0, Fill{1})
	assertRectsEqual(t, "single fill", rects, []Rect{
		{X: 0, Y: 0, Width: 100, Height: 50},
	})
}

func TestFillWeightedRatio(t *testing.T) {
	rects := Split(area(90, 30), Horizontal, 0, Fill{2}, Fill{1})
	assertRectsEqual(t, "fill 2:1", rects, []Rect{
		{X: 0, Y: 0, Width: 60, Height: 30},
		{X: 60, Y: 0, Width: 30, Height: 30},
	})
}

func TestFillZeroWeightTreatedAsOne(t *testing.T) {
	rects := Split(area(80, 20), Horizontal, 0, Fill{0}, Fill{0})
	assertRectsEqual(t, "fill zero weight", rects, []Rect{
		{X: 0, Y: 0, Width: 40, Height: 20},
		{X: 40, Y: 0, Width: 40, Height: 20},
	})
}

func TestFillRemainderGoesToLast(t *testing.T) {
	rects := Split(area(10, 1), Horizontal, 0, Fill{1}, Fill{1}, Fill{1})
	assertRectsEqual(t, "fill remainder", rects, []Rect{
		{X: 0, Y: 0, Width: 3, Height: 1},
		{X: 3, Y: 0, Width: 3, Height: 1},
		{X: 6, Y: 0, Width: 4, Height: 1},
	})
}

// --- Length and Min constraints ---

func TestLengthPlusFillWithSpacing(t *testing.T) {
	rects := Split(area(100, 20), Horizontal, 1, Fill{1}, Length{48})
	assertRectsEqual(t, "fill+length", rects, []Rect{
		{X: 0, Y: 0, Width: 51, Height: 20},
		{X: 52, Y: 0, Width: 48, Height: 20},
	})
}

func TestMinGrowsLikeFill(t *testing.T) {
	rects := Split(area(50, 10), Horizontal, 0, Min{10}, Length{20})
	assertRectsEqual(t, "min grows", rects, []Rect{
		{X: 0, Y: 0, Width: 30, Height: 10},
		{X: 30, Y: 0, Width: 20, Height: 10},
	})
}

func TestOverflowShrinksFromEnd(t *testing.T) {
	rects := Split(area(30, 5), Horizontal, 0, Length{20}, Length{20})
	assertRectsEqual(t, "overflow", rects, []Rect{
		{X: 0, Y: 0, Width: 20, Height: 5},
		{X: 20, Y: 0, Width: 10, Height: 5},
	})
}

func TestVerticalSplit(t *testing.T) {
	rects := Split(Rect{X: 2, Y: 3, Width: 40, Height: 30}, Vertical, 1, Length{5}, Fill{1})
	assertRectsEqual(t, "vertical", rects, []Rect{
		{X: 2, Y: 3, Width: 40, Height: 5},
		{X: 2, Y: 9, Width: 40, Height: 24},
	})
}

func TestNoConstraints(t *testing.T) {
	if rects := Split(area(10, 10), Horizontal, 0); rects != nil {
		t.Errorf("expected nil, got %v", rects)
	}
}

// --- Rect ---

func TestRectInner(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 48, Height: 22}.Inner(1)
	if r != (Rect{X: 1, Y: 1, Width: 46, Height: 20}) {
		t.Errorf("unexpected inner rect %v", r)
	}
	if !(Rect{Width: 1, Height: 1}).Inner(2).Empty() {
		t.Error("expected inner rect of a tiny area to be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 10, Height: 2}
	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{5, 5, true},
		{14, 6, true},
		{15, 5, false},
		{5, 7, false},
		{4, 5, false},
	} {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestColumns(t *testing.T) {
	for _, tt := range []struct{ width, cell, want int }{
		{100, 20, 5},
		{19, 20, 1},
		{50, 0, 1},
	} {
		if got := Columns(tt.width, tt.cell); got != tt.want {
			t.Errorf("Columns(%d,%d): expected %d, got %d", tt.width, tt.cell, tt.want, got)
		}
	}
}
