//go:build gpu

package renderer

/*
#cgo LDFLAGS: -lOpenCL
#define CL_TARGET_OPENCL_VERSION 120
#define CL_USE_DEPRECATED_OPENCL_1_2_APIS
#include <CL/cl.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/cwbudde/mandelcl/internal/mandel"
	"github.com/cwbudde/mandelcl/internal/mandel/gpu"
)

type openCLRenderer struct {
	runtime *gpu.Runtime

	context C.cl_context
	queue   C.cl_command_queue
	device  C.cl_device_id
	program C.cl_program
	kernel  C.cl_kernel

	output      C.cl_mem
	outputBytes int
}

// NewOpenCLRenderer selects the GPU, creates its context and queue, and builds
// the kernel program. On failure everything acquired so far is released.
func NewOpenCLRenderer(opts Options) (mandel.Renderer, func(), error) {
	dev, err := gpu.SelectDevice()
	if err != nil {
		return nil, noopCleanup, err
	}
	opts.reach(mandel.StageDeviceSelected)

	rt, err := gpu.NewRuntime(dev)
	if err != nil {
		return nil, noopCleanup, err
	}
	opts.reach(mandel.StageContextReady)

	r := &openCLRenderer{
		runtime: rt,
		context: C.cl_context(rt.ContextPtr()),
		queue:   C.cl_command_queue(rt.QueuePtr()),
		device:  C.cl_device_id(rt.DevicePtr()),
	}

	if err := r.build(opts.kernelPath()); err != nil {
		r.release()
		return nil, noopCleanup, err
	}
	opts.reach(mandel.StageProgramBuilt)

	slog.Info("OpenCL backend initialised",
		"platform", rt.Platform.Name,
		"device", rt.Device.Name,
		"vendor", rt.Device.Vendor,
		"compute_units", rt.Device.MaxComputeUnits,
	)

	return r, r.release, nil
}

func (r *openCLRenderer) Name() string {
	return string(BackendOpenCL)
}

func (r *openCLRenderer) build(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", mandel.ErrKernelSource, err)
	}

	source := C.CString(string(src))
	defer C.free(unsafe.Pointer(source))
	length := C.size_t(len(src))

	var status C.cl_int
	r.program = C.clCreateProgramWithSource(r.context, 1, &source, &length, &status)
	if status != C.CL_SUCCESS {
		r.program = nil
		return fmt.Errorf("%w: %w", mandel.ErrBuildFailed, clError("clCreateProgramWithSource", status))
	}

	// No options and no device list: build for every device of the context.
	status = C.clBuildProgram(r.program, 0, nil, nil, nil, nil)
	if status != C.CL_SUCCESS {
		buildLog := r.buildLog()
		if buildLog != "" {
			slog.Error("OpenCL build log", "path", path, "log", buildLog)
		}
		return fmt.Errorf("%w: %w", mandel.ErrBuildFailed, clError("clBuildProgram", status))
	}

	kernelName := C.CString(mandel.KernelEntryPoint)
	defer C.free(unsafe.Pointer(kernelName))
	r.kernel = C.clCreateKernel(r.program, kernelName, &status)
	if status != C.CL_SUCCESS {
		r.kernel = nil
		return fmt.Errorf("%w: %s: %w", mandel.ErrKernelMissing, mandel.KernelEntryPoint, clError("clCreateKernel", status))
	}

	return nil
}

func (r *openCLRenderer) buildLog() string {
	if r.program == nil || r.device == nil {
		return ""
	}

	var logSize C.size_t
	if status := C.clGetProgramBuildInfo(r.program, r.device, C.CL_PROGRAM_BUILD_LOG, 0, nil, &logSize); status != C.CL_SUCCESS {
		slog.Error("OpenCL: failed to fetch build log size", "err", clError("clGetProgramBuildInfo", status))
		return ""
	}
	if logSize == 0 {
		return ""
	}

	buf := make([]byte, int(logSize))
	if status := C.clGetProgramBuildInfo(r.program, r.device, C.CL_PROGRAM_BUILD_LOG, logSize, unsafe.Pointer(&buf[0]), nil); status != C.CL_SUCCESS {
		slog.Error("OpenCL: failed to fetch build log", "err", clError("clGetProgramBuildInfo", status))
		return ""
	}

	if buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}

// Render binds the arguments, runs one 2-D dispatch and reads the whole
// output buffer back. The host blocks until the queue has drained.
func (r *openCLRenderer) Render(ctx context.Context, view mandel.View) (*mandel.Pixels, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pixels := mandel.NewPixels(view.Width, view.Height)

	if err := r.ensureOutput(pixels.ByteSize()); err != nil {
		return nil, err
	}

	if err := r.bind(gpu.ArgsForView(view)); err != nil {
		return nil, err
	}

	nd := gpu.WorkSize(view.Width, view.Height)
	global := [2]C.size_t{C.size_t(nd.Global[0]), C.size_t(nd.Global[1])}
	local := [2]C.size_t{C.size_t(nd.Local[0]), C.size_t(nd.Local[1])}

	slog.Debug("Dispatching kernel",
		"kernel", mandel.KernelEntryPoint,
		"global_size", nd.Global,
		"local_size", nd.Local,
	)

	status := C.clEnqueueNDRangeKernel(r.queue, r.kernel, 2, nil, &global[0], &local[0], 0, nil, nil)
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrDispatchFailed, clError("clEnqueueNDRangeKernel", status))
	}

	status = C.clEnqueueReadBuffer(r.queue, r.output, C.CL_TRUE, 0, C.size_t(pixels.ByteSize()), unsafe.Pointer(&pixels.Data[0]), 0, nil, nil)
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrDispatchFailed, clError("clEnqueueReadBuffer(output)", status))
	}

	status = C.clFinish(r.queue)
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrDispatchFailed, clError("clFinish", status))
	}

	return pixels, nil
}

// ensureOutput allocates the write-only output buffer, replacing it when the
// image size changes.
func (r *openCLRenderer) ensureOutput(size int) error {
	if r.output != nil && r.outputBytes == size {
		return nil
	}
	if r.output != nil {
		C.clReleaseMemObject(r.output)
		r.output = nil
	}

	var status C.cl_int
	r.output = C.clCreateBuffer(r.context, C.CL_MEM_WRITE_ONLY, C.size_t(size), nil, &status)
	if status != C.CL_SUCCESS {
		r.output = nil
		return fmt.Errorf("%w: %w", mandel.ErrBufferCreate, clError("clCreateBuffer(output)", status))
	}
	r.outputBytes = size
	return nil
}

func (r *openCLRenderer) bind(args gpu.KernelArgs) error {
	for _, b := range args.Bindings() {
		var status C.cl_int
		index := C.cl_uint(b.Index)

		switch b.Kind {
		case gpu.ArgFloat:
			v := C.cl_float(b.Float)
			status = C.clSetKernelArg(r.kernel, index, C.size_t(unsafe.Sizeof(v)), unsafe.Pointer(&v))
		case gpu.ArgInt:
			v := C.cl_int(b.Int)
			status = C.clSetKernelArg(r.kernel, index, C.size_t(unsafe.Sizeof(v)), unsafe.Pointer(&v))
		case gpu.ArgBuffer:
			status = C.clSetKernelArg(r.kernel, index, C.size_t(unsafe.Sizeof(r.output)), unsafe.Pointer(&r.output))
		}

		if status != C.CL_SUCCESS {
			return fmt.Errorf("%w: %w", mandel.ErrDispatchFailed, clError("clSetKernelArg("+b.Name+")", status))
		}
	}
	return nil
}

// release frees device resources in the order kernel, buffer, queue, program,
// context. Handles already released are skipped, so it is safe to call twice.
func (r *openCLRenderer) release() {
	if r.kernel != nil {
		C.clReleaseKernel(r.kernel)
		r.kernel = nil
	}
	if r.output != nil {
		C.clReleaseMemObject(r.output)
		r.output = nil
		r.outputBytes = 0
	}
	if r.runtime != nil {
		r.runtime.ReleaseQueue()
		r.queue = nil
	}
	if r.program != nil {
		C.clReleaseProgram(r.program)
		r.program = nil
	}
	if r.runtime != nil {
		r.runtime.Close()
		r.runtime = nil
		r.context = nil
	}
}

func clError(prefix string, status C.cl_int) error {
	return gpu.StatusError(prefix, int32(status))
}
