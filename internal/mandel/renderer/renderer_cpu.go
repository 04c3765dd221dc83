package renderer

import (
	"context"
	"runtime"

	"github.com/cwbudde/mandelcl/internal/mandel"
	"golang.org/x/sync/errgroup"
)

// CPURenderer evaluates the same escape-time function as mandelbrot.cl on the
// host, one row per task.
type CPURenderer struct {
	workers int
}

// NewCPURenderer creates a CPU renderer using at most workers goroutines.
// workers <= 0 means GOMAXPROCS.
func NewCPURenderer(workers int) *CPURenderer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &CPURenderer{workers: workers}
}

// Name identifies the backend in logs.
func (r *CPURenderer) Name() string {
	return string(BackendCPU)
}

// Render fills a new pixel buffer for view.
func (r *CPURenderer) Render(ctx context.Context, view mandel.View) (*mandel.Pixels, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	pixels := mandel.NewPixels(view.Width, view.Height)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for y := 0; y < view.Height; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := pixels.Row(y)
			for x := range row {
				row[x] = escapeColor(view, x, y)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pixels, nil
}

// escapeColor mirrors draw_mandelbrot for work-item (ix, iy).
func escapeColor(view mandel.View, ix, iy int) uint32 {
	w := float32(view.Width)
	h := float32(view.Height)

	scale := view.Magnification / w
	cr := view.CenterX + (float32(ix)-0.5*w)*scale
	ci := view.CenterY + (float32(iy)-0.5*h)*scale
	maxIter := int(view.MaxIterations)

	var zr, zi float32
	n := 0
	for n < maxIter && zr*zr+zi*zi <= 4 {
		t := zr*zr - zi*zi + cr
		zi = 2*zr*zi + ci
		zr = t
		n++
	}

	if n >= maxIter {
		return mandel.PackRGBA(0, 0, 0, 0xFF)
	}

	t := float32(n) / view.MaxIterations
	u := 1 - t
	red := uint32(9 * u * t * t * t * 255)
	green := uint32(15 * u * u * t * t * 255)
	blue := uint32(8.5 * u * u * u * t * 255)

	return 0xFF000000 | blue<<16 | green<<8 | red
}
