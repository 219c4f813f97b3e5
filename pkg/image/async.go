package image

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"
)

// ErrClosed is returned for work submitted after Close.
var ErrClosed = errors.New("async renderer closed")

const defaultWorkers = 2

// Result is the outcome of one asynchronous render.
type Result struct {
	Rendered string
	Err      error
	Elapsed  time.Duration
}

type renderJob struct {
	ctx    context.Context
	img    image.Image
	width  int
	height int
	out    chan Result
}

// AsyncRenderer runs Renderer.Render on a bounded worker pool so the UI
// goroutine never blocks on encoding.
type AsyncRenderer struct {
	renderer *Renderer
	jobs     chan renderJob
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewAsyncRenderer starts a pool with the default number of workers.
func NewAsyncRenderer(r *Renderer) *AsyncRenderer {
	return NewAsyncRendererWithWorkers(r, defaultWorkers)
}

// NewAsyncRendererWithWorkers starts a pool with the given worker count.
func NewAsyncRendererWithWorkers(r *Renderer, workers int) *AsyncRenderer {
	if workers <= 0 {
		workers = defaultWorkers
	}
	ar := &AsyncRenderer{
		renderer: r,
		jobs:     make(chan renderJob, workers*4),
	}
	for range workers {
		ar.wg.Add(1)
		go ar.worker()
	}
	return ar
}

// Renderer returns the wrapped renderer.
func (ar *AsyncRenderer) Renderer() *Renderer {
	return ar.renderer
}

// Submit queues img for rendering and returns a channel that receives
// exactly one Result. A job whose ctx is done before a worker picks it up
// is skipped with ctx.Err().
func (ar *AsyncRenderer) Submit(ctx context.Context, img image.Image, width, height int) <-chan Result {
	out := make(chan Result, 1)

	ar.mu.Lock()
	defer ar.mu.Unlock()
	if ar.closed {
		out <- Result{Err: ErrClosed}
		return out
	}

	job := renderJob{ctx: ctx, img: img, width: width, height: height, out: out}
	select {
	case ar.jobs <- job:
	default:
		// Queue full: render on a fresh goroutine rather than block.
		go ar.run(job)
	}
	return out
}

// Close stops accepting work and waits for queued jobs to finish.
func (ar *AsyncRenderer) Close() {
	ar.mu.Lock()
	if ar.closed {
		ar.mu.Unlock()
		return
	}
	ar.closed = true
	close(ar.jobs)
	ar.mu.Unlock()
	ar.wg.Wait()
}

func (ar *AsyncRenderer) worker() {
	defer ar.wg.Done()
	for job := range ar.jobs {
		ar.run(job)
	}
}

func (ar *AsyncRenderer) run(job renderJob) {
	if err := job.ctx.Err(); err != nil {
		job.out <- Result{Err: err}
		return
	}
	start := time.Now()
	s, err := ar.renderer.Render(job.img, job.width, job.height)
	job.out <- Result{Rendered: s, Err: err, Elapsed: time.Since(start)}
}
