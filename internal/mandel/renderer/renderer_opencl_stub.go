//go:build !gpu

package renderer

import (
	"fmt"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

// NewOpenCLRenderer creates an OpenCL GPU-based renderer (stub for non-GPU builds)
func NewOpenCLRenderer(_ Options) (mandel.Renderer, func(), error) {
	return nil, noopCleanup, fmt.Errorf("%w: build without GPU tag", ErrBackendUnavailable)
}
