package pipeline

import (
	"context"
	"log/slog"

	"github.com/cwbudde/mandelcl/internal/mandel"
	"github.com/cwbudde/mandelcl/internal/mandel/renderer"
	"github.com/cwbudde/mandelcl/internal/ppm"
)

// Config describes one render run. Zero fields take the fixed defaults.
type Config struct {
	Backend    string
	KernelPath string
	OutputPath string
	View       mandel.View
}

func (c Config) withDefaults() Config {
	if c.KernelPath == "" {
		c.KernelPath = mandel.DefaultKernelPath
	}
	if c.OutputPath == "" {
		c.OutputPath = mandel.DefaultOutputPath
	}
	if c.View == (mandel.View{}) {
		c.View = mandel.DefaultView()
	}
	return c
}

var newRenderer = renderer.NewRendererForBackend

// Execute runs the pipeline once: set up the backend, render, write the
// image, release the backend. Resources are released even when a step fails.
// The returned Run is never nil; the error, if any, is a *mandel.StageError.
func Execute(ctx context.Context, cfg Config) (*Run, error) {
	cfg = cfg.withDefaults()
	run := NewRun(string(renderer.NormalizeBackend(cfg.Backend)), cfg.OutputPath)

	slog.Info("Starting render",
		"run_id", run.ID,
		"backend", run.Backend,
		"kernel", cfg.KernelPath,
		"width", cfg.View.Width,
		"height", cfg.View.Height,
		"iterations", cfg.View.MaxIterations,
	)

	rend, cleanup, err := newRenderer(cfg.Backend, renderer.Options{
		KernelPath: cfg.KernelPath,
		OnStage:    run.Advance,
	})
	if cleanup == nil {
		cleanup = func() {}
	}
	released := false
	release := func() {
		if !released {
			released = true
			cleanup()
		}
	}
	defer release()

	if err != nil {
		return run, run.fail(err)
	}
	run.Advance(mandel.StageProgramBuilt)

	pixels, err := rend.Render(ctx, cfg.View)
	if err != nil {
		return run, run.fail(err)
	}
	run.Advance(mandel.StageDispatched)

	if err := ppm.WriteFile(cfg.OutputPath, pixels); err != nil {
		return run, run.fail(err)
	}
	run.Advance(mandel.StageImageWritten)

	release()
	run.Advance(mandel.StageResourcesReleased)
	run.Advance(mandel.StageTerminated)

	run.stampElapsed()
	slog.Info("Render complete",
		"run_id", run.ID,
		"backend", rend.Name(),
		"path", cfg.OutputPath,
		"bytes", ppm.Size(pixels.Width, pixels.Height),
		"elapsed", run.Elapsed,
	)

	return run, nil
}
