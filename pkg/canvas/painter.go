// Package canvas paints the selected photo with the gallery's filters. It
// is the gallery's filter bridge: the UI pushes paint requests and reads
// back activity strings and rendered frames, never waiting on either.
package canvas

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	stdimage "image"
	"log/slog"
	"path"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
	"gitlab.com/tinyland/lab/photo-groove/pkg/cache"
	"gitlab.com/tinyland/lab/photo-groove/pkg/image"
)

// Default canvas size in cells.
const (
	DefaultWidth  = 46
	DefaultHeight = 20
)

const activityBuffer = 16

// Fetcher downloads raw image bytes. *photo.Fetcher satisfies it.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Frame is one painted canvas.
type Frame struct {
	URL      string
	Rendered string

	// Raw is set when Rendered is a graphics protocol escape sequence
	// rather than text cells.
	Raw bool
}

// Options configures a Painter.
type Options struct {
	Fetcher  Fetcher
	Store    *cache.Store // optional disk cache for downloads
	Renderer *image.AsyncRenderer
	Width    int
	Height   int
	Logger   *slog.Logger
}

var (
	_ bridge.Sink   = (*Painter)(nil)
	_ bridge.Source = (*Painter)(nil)
)

// Painter turns filter requests into frames on a single background worker.
// Pushes coalesce: while a paint is running only the newest request is
// kept.
type Painter struct {
	fetcher  Fetcher
	store    *cache.Store
	renderer *image.AsyncRenderer
	logger   *slog.Logger

	activity chan string
	frames   chan Frame
	wake     chan struct{}

	mu      sync.Mutex
	pending *bridge.Request
	width   int
	height  int

	// last decoded download, reused while only filters change
	lastURL string
	lastImg stdimage.Image

	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// New returns a Painter. Call Start to begin painting.
func New(opts Options) *Painter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Painter{
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		renderer: opts.Renderer,
		logger:   logger.With("component", "canvas"),
		activity: make(chan string, activityBuffer),
		frames:   make(chan Frame, 1),
		wake:     make(chan struct{}, 1),
		width:    w,
		height:   h,
		done:     make(chan struct{}),
	}
}

// Activity implements bridge.Source. The channel is closed by Close.
func (p *Painter) Activity() <-chan string { return p.activity }

// Frames delivers painted frames. Only the newest unread frame is kept.
// The channel is closed by Close.
func (p *Painter) Frames() <-chan Frame { return p.frames }

// Push implements bridge.Sink. It never blocks and replaces any request
// that has not started painting yet.
func (p *Painter) Push(req bridge.Request) {
	p.mu.Lock()
	p.pending = &req
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Resize changes the canvas size for subsequent paints.
func (p *Painter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if width > 0 {
		p.width = width
	}
	if height > 0 {
		p.height = height
	}
}

// Start launches the worker. It reports "Initializing canvas (<protocol>)"
// before the first paint.
func (p *Painter) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		ctx, p.cancel = context.WithCancel(ctx)
		p.report(fmt.Sprintf("Initializing canvas (%s)", p.renderer.Renderer().Protocol()))
		go p.run(ctx)
	})
}

// Close stops the worker and closes the Activity and Frames channels.
func (p *Painter) Close() {
	p.closeOnce.Do(func() {
		p.startOnce.Do(func() { close(p.done) })
		if p.cancel != nil {
			p.cancel()
		}
		<-p.done
		close(p.activity)
		close(p.frames)
	})
}

func (p *Painter) run(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.wake:
		}

		req, ok := p.take()
		if !ok {
			continue
		}
		file := path.Base(req.URL)
		p.report("Painting " + file)

		start := time.Now()
		frame, err := p.Paint(ctx, req)
		switch {
		case errors.Is(err, errSuperseded):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("paint failed", "url", req.URL, "error", err)
			p.report("Paint failed: " + err.Error())
			continue
		}

		p.publish(frame)
		elapsed := time.Since(start).Round(time.Millisecond)
		p.logger.Debug("painted", "url", req.URL, "elapsed", elapsed)
		p.report(fmt.Sprintf("Painted %s in %s", file, elapsed))
	}
}

var errSuperseded = errors.New("superseded by a newer request")

// Paint runs one request synchronously: download (through the disk cache),
// decode, filter and render.
func (p *Painter) Paint(ctx context.Context, req bridge.Request) (Frame, error) {
	img, err := p.load(ctx, req.URL)
	if err != nil {
		return Frame{}, err
	}

	filtered := image.ApplyFilters(img, req.Filters, seedFor(req.URL))
	if p.hasPending() {
		return Frame{}, errSuperseded
	}

	p.mu.Lock()
	w, h := p.width, p.height
	p.mu.Unlock()

	res := <-p.renderer.Submit(ctx, filtered, w, h)
	if res.Err != nil {
		return Frame{}, res.Err
	}
	return Frame{
		URL:      req.URL,
		Rendered: res.Rendered,
		Raw:      !p.renderer.Renderer().Protocol().Inline(),
	}, nil
}

// load returns the decoded image for url, reusing the previous download
// when the URL has not changed.
func (p *Painter) load(ctx context.Context, url string) (stdimage.Image, error) {
	p.mu.Lock()
	if p.lastURL == url && p.lastImg != nil {
		img := p.lastImg
		p.mu.Unlock()
		return img, nil
	}
	p.mu.Unlock()

	if p.fetcher == nil {
		return nil, errors.New("no fetcher configured")
	}

	var (
		data []byte
		err  error
	)
	if p.store != nil {
		var hit bool
		data, hit, err = p.store.Fetch(ctx, url, p.fetcher.FetchBytes)
		p.logger.Debug("download", "url", url, "cache_hit", hit)
	} else {
		data, err = p.fetcher.FetchBytes(ctx, url)
	}
	if err != nil {
		return nil, err
	}

	img, err := image.DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.lastURL, p.lastImg = url, img
	p.mu.Unlock()
	return img, nil
}

func (p *Painter) take() (bridge.Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return bridge.Request{}, false
	}
	req := *p.pending
	p.pending = nil
	return req, true
}

func (p *Painter) hasPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// publish replaces any unread frame with f. The worker is the only sender.
func (p *Painter) publish(f Frame) {
	select {
	case <-p.frames:
	default:
	}
	p.frames <- f
}

// report sends an activity string, dropping it if the reader is behind.
func (p *Painter) report(s string) {
	select {
	case p.activity <- s:
	default:
		p.logger.Debug("activity dropped", "activity", s)
	}
}

// seedFor derives the noise seed from the photo URL so repeated paints of
// one photo show the same grain.
func seedFor(url string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(url))
	return h.Sum64()
}
