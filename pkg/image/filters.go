package image

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
)

// noiseMagnitude is the largest luminance offset Noise adds at amount 1.
const noiseMagnitude = 96

// ApplyFilters runs Hue, Ripple and Noise over img in that order. Amounts
// are in [0, 1]; filters missing from the list are skipped. seed makes the
// noise pattern reproducible.
func ApplyFilters(img image.Image, filters []bridge.Filter, seed uint64) *image.NRGBA {
	out := imaging.Clone(img)
	req := bridge.Request{Filters: filters}
	if a, ok := req.Amount(bridge.FilterHue); ok {
		out = Hue(out, a)
	}
	if a, ok := req.Amount(bridge.FilterRipple); ok {
		out = Ripple(out, a)
	}
	if a, ok := req.Amount(bridge.FilterNoise); ok {
		out = Noise(out, a, seed)
	}
	return out
}

// Hue rotates every pixel's hue by amount * 360 degrees.
func Hue(img image.Image, amount float64) *image.NRGBA {
	amount = clamp01(amount)
	if amount == 0 || amount == 1 {
		return imaging.Clone(img)
	}
	shift := amount * 360
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		h, s, v := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hsv()
		r, g, b := colorful.Hsv(math.Mod(h+shift, 360), s, v).Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	})
}

// Ripple displaces rows horizontally along a sine wave with amplitude
// amount * width / 20 and a wavelength of a sixth of the height.
func Ripple(img image.Image, amount float64) *image.NRGBA {
	amount = clamp01(amount)
	src := imaging.Clone(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	amp := amount * float64(w) / 20
	if amp == 0 || w == 0 || h == 0 {
		return src
	}
	wavelength := max(float64(h)/6, 1)

	dst := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		dx := int(math.Round(amp * math.Sin(2*math.Pi*float64(y)/wavelength)))
		for x := 0; x < w; x++ {
			sx := min(max(x+dx, 0), w-1)
			dst.SetNRGBA(b.Min.X+x, b.Min.Y+y, src.NRGBAAt(b.Min.X+sx, b.Min.Y+y))
		}
	}
	return dst
}

// Noise adds a per-pixel luminance offset of up to amount * 96 drawn from a
// generator seeded with seed.
func Noise(img image.Image, amount float64, seed uint64) *image.NRGBA {
	amount = clamp01(amount)
	if amount == 0 {
		return imaging.Clone(img)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	mag := amount * noiseMagnitude

	// Sequential: the pattern must depend on seed alone.
	src := imaging.Clone(img)
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			d := int(math.Round((rng.Float64()*2 - 1) * mag))
			c.R = clampByte(int(c.R) + d)
			c.G = clampByte(int(c.G) + d)
			c.B = clampByte(int(c.B) + d)
			src.SetNRGBA(x, y, c)
		}
	}
	return src
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
