package image

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/blacktop/go-termimg"

	"gitlab.com/tinyland/lab/photo-groove/pkg/config"
	"gitlab.com/tinyland/lab/photo-groove/pkg/terminal"
)

// ErrDisabled is returned by Render when the protocol is "none".
var ErrDisabled = errors.New("image rendering is disabled (protocol=none)")

// Renderer turns images into terminal output for one graphics protocol,
// caching results by content and target size.
type Renderer struct {
	protocol terminal.GraphicsProtocol
	cellW    int
	cellH    int
	cache    *Cache
}

// NewRenderer creates a Renderer for the detected capabilities. A protocol
// named in cfg other than "auto" overrides detection.
func NewRenderer(caps terminal.Capabilities, cfg config.ImageConfig) *Renderer {
	proto := caps.Protocol
	if p, ok, err := terminal.ParseProtocol(cfg.Protocol); ok && err == nil {
		proto = p
	}
	return &Renderer{
		protocol: proto,
		cellW:    caps.Size.CellW,
		cellH:    caps.Size.CellH,
		cache:    NewCache(cfg.MaxCacheSizeMB),
	}
}

// Protocol returns the active protocol.
func (r *Renderer) Protocol() terminal.GraphicsProtocol {
	return r.protocol
}

// Cache returns the rendered output cache.
func (r *Renderer) Cache() *Cache {
	return r.cache
}

// Render converts img to terminal output fitting width x height cells.
func (r *Renderer) Render(img image.Image, width, height int) (string, error) {
	if img == nil {
		return "", errors.New("image is nil")
	}
	if r.protocol == terminal.ProtocolNone {
		return "", ErrDisabled
	}

	key := CacheKey{
		Protocol: r.protocol.String(),
		Width:    width,
		Height:   height,
		Hash:     hashImage(img),
	}
	if s, ok := r.cache.Get(key); ok {
		return s, nil
	}

	var (
		out string
		err error
	)
	switch r.protocol {
	case terminal.ProtocolKitty:
		out, err = r.renderTermimg(img, termimg.Kitty, width, height)
	case terminal.ProtocolITerm2:
		out, err = r.renderTermimg(img, termimg.ITerm2, width, height)
	case terminal.ProtocolSixel:
		out, err = r.renderTermimg(img, termimg.Sixel, width, height)
	default:
		out = renderHalfblocks(FitCells(img, width, height))
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", r.protocol, err)
	}

	r.cache.Put(key, out)
	return out, nil
}

// renderTermimg delegates Kitty, iTerm2 and Sixel output to go-termimg.
func (r *Renderer) renderTermimg(img image.Image, proto termimg.Protocol, width, height int) (string, error) {
	ti := termimg.New(ResizeToFit(img, width, height, r.cellW, r.cellH))
	if ti == nil {
		return "", errors.New("go-termimg: failed to create image wrapper")
	}
	ti.Protocol(proto).Size(width, height).Scale(termimg.ScaleFit)
	return ti.Render()
}

// renderHalfblocks writes one cell per pixel column and two pixel rows per
// line: the upper half block takes the top pixel as foreground and the
// bottom pixel as background.
func renderHalfblocks(img image.Image) string {
	src := ToNRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(w * ((h + 1) / 2) * 40)

	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteString("\x1b[0m\n")
		}
		for x := 0; x < w; x++ {
			top := src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			hasBottom := y+1 < h
			bot := top
			if hasBottom {
				bot = src.NRGBAAt(b.Min.X+x, b.Min.Y+y+1)
			}

			switch {
			case top.A == 0 && (!hasBottom || bot.A == 0):
				sb.WriteString("\x1b[0m ")
			case top.A == 0:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▄", bot.R, bot.G, bot.B)
			case !hasBottom || bot.A == 0:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▀", top.R, top.G, top.B)
			default:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
					top.R, top.G, top.B, bot.R, bot.G, bot.B)
			}
		}
	}
	sb.WriteString("\x1b[0m")
	return sb.String()
}
