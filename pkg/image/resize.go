package image

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Default cell size in pixels when the terminal does not report one.
const (
	defaultCellW = 8
	defaultCellH = 16
)

// ResizeToFit scales img down to fit widthCells x heightCells terminal
// cells of cellW x cellH pixels, keeping the aspect ratio, and sharpens the
// result slightly. Images that already fit are returned unchanged.
func ResizeToFit(img image.Image, widthCells, heightCells, cellW, cellH int) image.Image {
	if img == nil {
		return nil
	}
	if cellW <= 0 {
		cellW = defaultCellW
	}
	if cellH <= 0 {
		cellH = defaultCellH
	}
	maxW := max(widthCells, 1) * cellW
	maxH := max(heightCells, 1) * cellH

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img
	}
	return imaging.Sharpen(imaging.Fit(img, maxW, maxH, imaging.Lanczos), 0.5)
}

// FitCells scales img to the half-block pixel grid of widthCells x
// heightCells: one pixel per column and two per row. Unlike ResizeToFit it
// also scales up, since every cell must carry a pixel.
func FitCells(img image.Image, widthCells, heightCells int) *image.NRGBA {
	maxW := max(widthCells, 1)
	maxH := max(heightCells, 1) * 2

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	dstW := max(int(math.Round(float64(b.Dx())*scale)), 1)
	dstH := max(int(math.Round(float64(b.Dy())*scale)), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// CellsFor returns the smallest cell grid, within maxCols x maxRows, that
// shows an imgW x imgH image at its aspect ratio.
func CellsFor(imgW, imgH, cellW, cellH, maxCols, maxRows int) (cols, rows int) {
	if imgW <= 0 || imgH <= 0 {
		return 1, 1
	}
	if cellW <= 0 {
		cellW = defaultCellW
	}
	if cellH <= 0 {
		cellH = defaultCellH
	}
	natCols := float64(imgW) / float64(cellW)
	natRows := float64(imgH) / float64(cellH)

	scale := math.Min(1, math.Min(float64(maxCols)/natCols, float64(maxRows)/natRows))
	cols = max(int(math.Ceil(natCols*scale)), 1)
	rows = max(int(math.Ceil(natRows*scale)), 1)
	return min(cols, max(maxCols, 1)), min(rows, max(maxRows, 1))
}

// ToNRGBA returns img as *image.NRGBA, converting when necessary.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
