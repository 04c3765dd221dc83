//go:build gpu

package renderer

import (
	"context"
	"testing"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

func BenchmarkRender(b *testing.B) {
	view := mandel.DefaultView()
	ctx := context.Background()

	b.Run("CPU", func(b *testing.B) {
		renderer := NewCPURenderer(0)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := renderer.Render(ctx, view); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("OpenCL", func(b *testing.B) {
		rend, cleanup := newOpenCLOrSkip(b, Options{KernelPath: kernelPath(b)})
		defer cleanup()

		// Warm-up once so the output buffer is allocated before timing.
		if _, err := rend.Render(ctx, view); err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := rend.Render(ctx, view); err != nil {
				b.Fatal(err)
			}
		}
	})
}
