package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
	"gitlab.com/tinyland/lab/photo-groove/pkg/config"
	"gitlab.com/tinyland/lab/photo-groove/pkg/terminal"
)

// --- helpers ---------------------------------------------------------------

func makeImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func makeGradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func makeCaps(proto terminal.GraphicsProtocol) terminal.Capabilities {
	return terminal.Capabilities{
		Term:     terminal.TermGhostty,
		Protocol: proto,
		Size:     terminal.Size{Cols: 80, Rows: 24, CellW: 8, CellH: 16},
	}
}

func halfblocks() *Renderer {
	return NewRenderer(makeCaps(terminal.ProtocolHalfblocks), config.ImageConfig{MaxCacheSizeMB: 8})
}

func samePixels(a, b *image.NRGBA) bool {
	return a.Bounds() == b.Bounds() && bytes.Equal(a.Pix, b.Pix)
}

// --- protocol --------------------------------------------------------------

func TestNewRenderer_UsesDetectedProtocol(t *testing.T) {
	r := NewRenderer(makeCaps(terminal.ProtocolKitty), config.ImageConfig{Protocol: "auto"})
	if r.Protocol() != terminal.ProtocolKitty {
		t.Errorf("expected kitty, got %v", r.Protocol())
	}
}

func TestNewRenderer_ConfigOverride(t *testing.T) {
	r := NewRenderer(makeCaps(terminal.ProtocolKitty), config.ImageConfig{Protocol: "halfblocks"})
	if r.Protocol() != terminal.ProtocolHalfblocks {
		t.Errorf("expected halfblocks override, got %v", r.Protocol())
	}
}

func TestRender_Disabled(t *testing.T) {
	r := NewRenderer(makeCaps(terminal.ProtocolNone), config.ImageConfig{})
	_, err := r.Render(makeImage(2, 2, color.White), 4, 4)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestRender_NilImage(t *testing.T) {
	if _, err := halfblocks().Render(nil, 10, 10); err == nil {
		t.Error("expected error for nil image")
	}
}

// --- halfblocks -------------------------------------------------------------

func TestRenderHalfblocks_SolidColor(t *testing.T) {
	out, err := halfblocks().Render(makeImage(4, 4, color.NRGBA{R: 255, A: 255}), 4, 2)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") {
		t.Error("expected red foreground escape")
	}
	if !strings.Contains(out, "▀") {
		t.Error("expected upper half block")
	}
	if !strings.HasSuffix(out, "\x1b[0m") {
		t.Error("expected trailing reset")
	}
	if lines := strings.Count(out, "\n") + 1; lines != 2 {
		t.Errorf("expected 2 lines for 2 rows, got %d", lines)
	}
}

func TestRenderHalfblocks_Transparent(t *testing.T) {
	out := renderHalfblocks(makeImage(2, 2, color.NRGBA{}))
	if strings.Contains(out, "▀") || !strings.Contains(out, " ") {
		t.Errorf("expected spaces for transparent pixels, got %q", out)
	}
}

func TestRenderHalfblocks_OddHeight(t *testing.T) {
	out := renderHalfblocks(makeImage(3, 3, color.NRGBA{G: 255, A: 255}))
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines for 3 pixel rows, got %q", out)
	}
	if !strings.Contains(out, "\x1b[49m▀") {
		t.Error("expected last row to use default background")
	}
}

func TestRender_CachedOnSecondCall(t *testing.T) {
	r := halfblocks()
	img := makeImage(4, 4, color.NRGBA{R: 128, G: 64, B: 32, A: 255})

	out1, err := r.Render(img, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := r.Render(img, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if out1 != out2 {
		t.Error("cached output should match")
	}
	if hits := r.Cache().Stats().Hits; hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", hits)
	}
	if _, err := r.Render(img, 6, 5); err != nil {
		t.Fatal(err)
	}
	if n := r.Cache().Stats().Entries; n != 2 {
		t.Errorf("expected separate entries per size, got %d", n)
	}
}

// --- cache -----------------------------------------------------------------

func TestCache_LRUEviction(t *testing.T) {
	c := NewCache(1)
	big := strings.Repeat("x", 600*1024)
	k := func(i int) CacheKey { return CacheKey{Protocol: "p", Width: i} }

	c.Put(k(1), big)
	c.Put(k(2), big)
	if _, ok := c.Get(k(1)); ok {
		t.Error("expected oldest entry evicted")
	}
	if _, ok := c.Get(k(2)); !ok {
		t.Error("expected newest entry kept")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", c.Stats().Evictions)
	}
}

func TestCache_PromoteOnGet(t *testing.T) {
	c := NewCache(1)
	chunk := strings.Repeat("x", 400*1024)
	k := func(i int) CacheKey { return CacheKey{Width: i} }

	c.Put(k(1), chunk)
	c.Put(k(2), chunk)
	c.Get(k(1))
	c.Put(k(3), chunk)

	if _, ok := c.Get(k(2)); ok {
		t.Error("expected least recently used entry evicted")
	}
	if _, ok := c.Get(k(1)); !ok {
		t.Error("expected promoted entry kept")
	}
}

func TestCache_UpdateAndInvalidate(t *testing.T) {
	c := NewCache(0)
	key := CacheKey{Protocol: "halfblocks"}
	c.Put(key, "aaaa")
	c.Put(key, "bb")
	if s := c.Stats(); s.Entries != 1 || s.SizeBytes != 2 {
		t.Errorf("expected 1 entry of 2 bytes, got %+v", s)
	}
	c.Invalidate()
	if s := c.Stats(); s.Entries != 0 || s.SizeBytes != 0 {
		t.Errorf("expected empty cache, got %+v", s)
	}
}

func TestHashImage(t *testing.T) {
	a := makeGradientImage(16, 16)
	if hashImage(a) != hashImage(makeGradientImage(16, 16)) {
		t.Error("expected stable hash")
	}
	if hashImage(a) == hashImage(makeGradientImage(16, 17)) {
		t.Error("expected size to change hash")
	}
	if hashImage(makeGradientImage(600, 400)) == hashImage(makeImage(600, 400, color.Black)) {
		t.Error("expected sampled hash to differ for different content")
	}
}

// --- resize ----------------------------------------------------------------

func TestResizeToFit(t *testing.T) {
	img := makeGradientImage(800, 400)
	out := ResizeToFit(img, 10, 10, 8, 16)
	b := out.Bounds()
	if b.Dx() > 80 || b.Dy() > 160 {
		t.Errorf("expected fit within 80x160, got %dx%d", b.Dx(), b.Dy())
	}
	if b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("expected aspect preserved at 80x40, got %dx%d", b.Dx(), b.Dy())
	}

	small := makeImage(10, 10, color.White)
	if ResizeToFit(small, 10, 10, 8, 16) != image.Image(small) {
		t.Error("expected small image returned unchanged")
	}
	if ResizeToFit(nil, 1, 1, 0, 0) != nil {
		t.Error("expected nil for nil image")
	}
}

func TestFitCells(t *testing.T) {
	out := FitCells(makeGradientImage(100, 50), 20, 10)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Errorf("expected 20x10 pixel grid, got %v", out.Bounds())
	}
	up := FitCells(makeImage(2, 2, color.White), 8, 8)
	if up.Bounds().Dx() != 8 || up.Bounds().Dy() != 8 {
		t.Errorf("expected upscale to 8x8, got %v", up.Bounds())
	}
}

func TestCellsFor(t *testing.T) {
	cols, rows := CellsFor(800, 400, 8, 16, 40, 40)
	if cols != 40 || rows != 10 {
		t.Errorf("expected 40x10, got %dx%d", cols, rows)
	}
	cols, rows = CellsFor(80, 160, 8, 16, 100, 100)
	if cols != 10 || rows != 10 {
		t.Errorf("expected natural size 10x10, got %dx%d", cols, rows)
	}
	if c, r := CellsFor(0, 10, 8, 16, 10, 10); c != 1 || r != 1 {
		t.Errorf("expected 1x1 for empty image, got %dx%d", c, r)
	}
}

// --- decode ----------------------------------------------------------------

func TestDecodeBytes_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, makeGradientImage(5, 3)); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestDecodeBytes_Invalid(t *testing.T) {
	if _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

// --- filters ---------------------------------------------------------------

func TestFilters_ZeroIsIdentity(t *testing.T) {
	img := makeGradientImage(32, 24)
	if !samePixels(img, Hue(img, 0)) {
		t.Error("Hue(0) changed pixels")
	}
	if !samePixels(img, Ripple(img, 0)) {
		t.Error("Ripple(0) changed pixels")
	}
	if !samePixels(img, Noise(img, 0, 7)) {
		t.Error("Noise(0) changed pixels")
	}
	zero := []bridge.Filter{{Name: "Hue"}, {Name: "Ripple"}, {Name: "Noise"}}
	if !samePixels(img, ApplyFilters(img, zero, 7)) {
		t.Error("ApplyFilters with zero amounts changed pixels")
	}
}

func TestHue_Rotates(t *testing.T) {
	red := makeImage(2, 2, color.NRGBA{R: 255, A: 255})
	out := Hue(red, 1.0/3)
	c := out.NRGBAAt(0, 0)
	if c.G < 250 || c.R > 5 || c.B > 5 {
		t.Errorf("expected red rotated 120 degrees to green, got %+v", c)
	}
	if c.A != 255 {
		t.Errorf("expected alpha kept, got %d", c.A)
	}
}

func TestRipple_DisplacesRows(t *testing.T) {
	img := makeGradientImage(60, 60)
	out := Ripple(img, 1)
	if samePixels(img, out) {
		t.Error("expected ripple to move pixels")
	}
	if out.Bounds() != img.Bounds() {
		t.Errorf("expected same bounds, got %v", out.Bounds())
	}
	// Row 0 has sin(0) = 0 displacement.
	for x := 0; x < 60; x++ {
		if out.NRGBAAt(x, 0) != img.NRGBAAt(x, 0) {
			t.Fatalf("row 0 moved at x=%d", x)
		}
	}
}

func TestNoise_DeterministicPerSeed(t *testing.T) {
	img := makeImage(16, 16, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	a := Noise(img, 1, 42)
	b := Noise(img, 1, 42)
	c := Noise(img, 1, 43)
	if !samePixels(a, b) {
		t.Error("expected same seed to give same noise")
	}
	if samePixels(a, c) {
		t.Error("expected different seeds to differ")
	}
	for i := 0; i < len(a.Pix); i += 4 {
		d := int(a.Pix[i]) - 128
		if d < -96 || d > 96 {
			t.Fatalf("offset %d outside magnitude", d)
		}
		if a.Pix[i] != a.Pix[i+1] || a.Pix[i] != a.Pix[i+2] {
			t.Fatalf("expected luminance-only noise, got %v", a.Pix[i:i+4])
		}
	}
}

// --- async -----------------------------------------------------------------

func TestAsyncRenderer_Submit(t *testing.T) {
	ar := NewAsyncRenderer(halfblocks())
	defer ar.Close()

	select {
	case res := <-ar.Submit(context.Background(), makeImage(4, 4, color.White), 4, 2):
		if res.Err != nil {
			t.Fatalf("async render error: %v", res.Err)
		}
		if res.Rendered == "" {
			t.Error("expected output")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("async render timed out")
	}
}

func TestAsyncRenderer_CancelledContext(t *testing.T) {
	ar := NewAsyncRendererWithWorkers(halfblocks(), 1)
	defer ar.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-ar.Submit(ctx, makeImage(4, 4, color.White), 4, 2)
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", res.Err)
	}
}

func TestAsyncRenderer_Closed(t *testing.T) {
	ar := NewAsyncRenderer(halfblocks())
	ar.Close()
	ar.Close()

	res := <-ar.Submit(context.Background(), makeImage(2, 2, color.White), 2, 1)
	if !errors.Is(res.Err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", res.Err)
	}
}
