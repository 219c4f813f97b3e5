// Package layout splits terminal areas into sub-regions from declarative
// constraints.
//
// Constraint types:
//   - Length(n): fixed size in cells
//   - Min(n): at least n cells, grows with Fill items
//   - Fill(w): remaining space proportional to weight
//
// Split allocates Length and Min first, shares the rest between Fill and
// Min items by weight (Min counts as weight 1), and shrinks from the last
// item backwards when the area is too small.
package layout

// Rect is a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether the rectangle has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner returns the rectangle shrunk by margin on every side.
func (r Rect) Inner(margin int) Rect {
	inner := Rect{
		X:      r.X + margin,
		Y:      r.Y + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}

// Contains reports whether the cell (px, py) lies inside r.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.Width && py >= r.Y && py < r.Y+r.Height
}

// Direction is the axis along which Split divides an area.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Constraint sizes one region along the split axis.
type Constraint interface {
	constraint()
}

// Length is a fixed size in cells.
type Length struct{ Value int }

// Min is at least Value cells and grows like Fill{1}.
type Min struct{ Value int }

// Fill takes remaining space in proportion to Weight.
type Fill struct{ Weight int }

func (Length) constraint() {}
func (Min) constraint()    {}
func (Fill) constraint()   {}

// Split divides area along dir, leaving spacing cells between regions.
func Split(area Rect, dir Direction, spacing int, constraints ...Constraint) []Rect {
	n := len(constraints)
	if n == 0 {
		return nil
	}

	total := area.Width
	if dir == Vertical {
		total = area.Height
	}
	available := max(total-spacing*(n-1), 0)

	allocs := make([]int, n)
	weights := make([]int, n)
	used, totalWeight := 0, 0
	for i, c := range constraints {
		switch v := c.(type) {
		case Length:
			allocs[i] = max(v.Value, 0)
		case Min:
			allocs[i] = max(v.Value, 0)
			weights[i] = 1
		case Fill:
			weights[i] = max(v.Weight, 1)
		}
		used += allocs[i]
		totalWeight += weights[i]
	}

	if rest := available - used; rest > 0 && totalWeight > 0 {
		last := -1
		for i := range weights {
			if weights[i] > 0 {
				last = i
			}
		}
		given := 0
		for i := range allocs {
			if weights[i] == 0 {
				continue
			}
			share := rest * weights[i] / totalWeight
			if i == last {
				share = rest - given
			}
			allocs[i] += share
			given += share
		}
	}

	for over, i := used-available, n-1; over > 0 && i >= 0; i-- {
		cut := min(over, allocs[i])
		allocs[i] -= cut
		over -= cut
	}

	rects := make([]Rect, n)
	offset := 0
	for i, a := range allocs {
		switch dir {
		case Horizontal:
			rects[i] = Rect{X: area.X + offset, Y: area.Y, Width: a, Height: area.Height}
		case Vertical:
			rects[i] = Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: a}
		}
		offset += a + spacing
	}
	return rects
}

// Columns returns how many cells of cellWidth fit across width, at least 1.
func Columns(width, cellWidth int) int {
	if cellWidth <= 0 {
		return 1
	}
	return max(width/cellWidth, 1)
}
