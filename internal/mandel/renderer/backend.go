package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

// Backend identifies a renderer implementation.
type Backend string

const (
	BackendCPU    Backend = "cpu"
	BackendOpenCL Backend = "opencl"
)

var (
	// ErrUnknownBackend is returned when the name does not match a known backend.
	ErrUnknownBackend = errors.New("unknown renderer backend")
	// ErrBackendUnavailable indicates the backend is not available in this build.
	ErrBackendUnavailable = errors.New("renderer backend unavailable")
)

var noopCleanup = func() {}

// Options configures renderer construction.
type Options struct {
	// KernelPath is the OpenCL source file. Defaults to mandel.DefaultKernelPath.
	KernelPath string
	// OnStage is called as device-side setup progresses. May be nil.
	OnStage mandel.StageFunc
}

func (o Options) kernelPath() string {
	if o.KernelPath == "" {
		return mandel.DefaultKernelPath
	}
	return o.KernelPath
}

func (o Options) reach(stage mandel.Stage) {
	if o.OnStage != nil {
		o.OnStage(stage)
	}
}

// NormalizeBackend maps arbitrary user input to a canonical backend identifier.
func NormalizeBackend(name string) Backend {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gpu", "opencl", "cl":
		return BackendOpenCL
	case "cpu":
		return BackendCPU
	default:
		return Backend(name)
	}
}

// SupportedBackends returns the list of backends understood by the factory.
func SupportedBackends() []Backend {
	return []Backend{BackendOpenCL, BackendCPU}
}

// NewRendererForBackend constructs the requested renderer and returns a cleanup
// hook that releases everything it acquired. The hook is never nil.
func NewRendererForBackend(name string, opts Options) (mandel.Renderer, func(), error) {
	backend := NormalizeBackend(name)

	switch backend {
	case BackendCPU:
		return NewCPURenderer(0), noopCleanup, nil
	case BackendOpenCL:
		return NewOpenCLRenderer(opts)
	default:
		return nil, noopCleanup, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownBackend, name, backendList())
	}
}

func backendList() string {
	names := make([]string, 0, len(SupportedBackends()))
	for _, b := range SupportedBackends() {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}
