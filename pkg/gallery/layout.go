package gallery

import (
	"gitlab.com/tinyland/lab/photo-groove/pkg/layout"
)

const (
	minWidth    = 40
	canvasWidth = 48
	canvasLines = 20
)

// tileWidth is the inner width of a thumbnail tile.
func tileWidth(s ThumbnailSize) int {
	switch s {
	case Small:
		return 12
	case Large:
		return 28
	}
	return 18
}

// Body places the thumbnail grid and the canvas for a terminal width.
type Body struct {
	Grid       layout.Rect
	Canvas     layout.Rect // including the border
	Columns    int
	SideBySide bool
}

// CanvasCells is the paintable area inside the canvas border.
func (b Body) CanvasCells() (width, height int) {
	inner := b.Canvas.Inner(1)
	return inner.Width, inner.Height
}

// Arrange lays out the body for the given width and thumbnail size. The
// canvas sits right of the grid when at least one tile column fits beside
// it, and below the grid otherwise.
func Arrange(width int, size ThumbnailSize) Body {
	width = max(width, minWidth)
	tile := tileWidth(size) + 2
	canvasH := canvasLines + 2

	var b Body
	if width >= canvasWidth+tile+2 {
		cols := layout.Split(layout.Rect{Width: width, Height: canvasH}, layout.Horizontal, 1,
			layout.Fill{Weight: 1},
			layout.Length{Value: canvasWidth},
		)
		b.Grid, b.Canvas, b.SideBySide = cols[0], cols[1], true
	} else {
		b.Grid = layout.Rect{Width: width}
		b.Canvas = layout.Rect{Width: min(canvasWidth, width), Height: canvasH}
	}
	b.Columns = layout.Columns(b.Grid.Width, tile)
	return b
}
