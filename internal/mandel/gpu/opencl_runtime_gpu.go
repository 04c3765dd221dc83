//go:build gpu

package gpu

/*
#cgo LDFLAGS: -lOpenCL
#define CL_TARGET_OPENCL_VERSION 120
#define CL_USE_DEPRECATED_OPENCL_1_2_APIS
#include <CL/cl.h>

// cl_khr_icd reports this when no platform is installed.
#define MANDEL_PLATFORM_NOT_FOUND_KHR -1001

static const char* mandel_cl_error_string(cl_int status) {
	switch (status) {
	case CL_SUCCESS: return "CL_SUCCESS";
	case CL_DEVICE_NOT_FOUND: return "CL_DEVICE_NOT_FOUND";
	case CL_DEVICE_NOT_AVAILABLE: return "CL_DEVICE_NOT_AVAILABLE";
	case CL_COMPILER_NOT_AVAILABLE: return "CL_COMPILER_NOT_AVAILABLE";
	case CL_MEM_OBJECT_ALLOCATION_FAILURE: return "CL_MEM_OBJECT_ALLOCATION_FAILURE";
	case CL_OUT_OF_RESOURCES: return "CL_OUT_OF_RESOURCES";
	case CL_OUT_OF_HOST_MEMORY: return "CL_OUT_OF_HOST_MEMORY";
	case CL_PROFILING_INFO_NOT_AVAILABLE: return "CL_PROFILING_INFO_NOT_AVAILABLE";
	case CL_MEM_COPY_OVERLAP: return "CL_MEM_COPY_OVERLAP";
	case CL_BUILD_PROGRAM_FAILURE: return "CL_BUILD_PROGRAM_FAILURE";
	case CL_MAP_FAILURE: return "CL_MAP_FAILURE";
	case CL_INVALID_VALUE: return "CL_INVALID_VALUE";
	case CL_INVALID_DEVICE_TYPE: return "CL_INVALID_DEVICE_TYPE";
	case CL_INVALID_PLATFORM: return "CL_INVALID_PLATFORM";
	case CL_INVALID_DEVICE: return "CL_INVALID_DEVICE";
	case CL_INVALID_CONTEXT: return "CL_INVALID_CONTEXT";
	case CL_INVALID_QUEUE_PROPERTIES: return "CL_INVALID_QUEUE_PROPERTIES";
	case CL_INVALID_COMMAND_QUEUE: return "CL_INVALID_COMMAND_QUEUE";
	case CL_INVALID_HOST_PTR: return "CL_INVALID_HOST_PTR";
	case CL_INVALID_MEM_OBJECT: return "CL_INVALID_MEM_OBJECT";
	case CL_INVALID_BINARY: return "CL_INVALID_BINARY";
	case CL_INVALID_BUILD_OPTIONS: return "CL_INVALID_BUILD_OPTIONS";
	case CL_INVALID_PROGRAM: return "CL_INVALID_PROGRAM";
	case CL_INVALID_PROGRAM_EXECUTABLE: return "CL_INVALID_PROGRAM_EXECUTABLE";
	case CL_INVALID_KERNEL_NAME: return "CL_INVALID_KERNEL_NAME";
	case CL_INVALID_KERNEL_DEFINITION: return "CL_INVALID_KERNEL_DEFINITION";
	case CL_INVALID_KERNEL: return "CL_INVALID_KERNEL";
	case CL_INVALID_ARG_INDEX: return "CL_INVALID_ARG_INDEX";
	case CL_INVALID_ARG_VALUE: return "CL_INVALID_ARG_VALUE";
	case CL_INVALID_ARG_SIZE: return "CL_INVALID_ARG_SIZE";
	case CL_INVALID_KERNEL_ARGS: return "CL_INVALID_KERNEL_ARGS";
	case CL_INVALID_WORK_DIMENSION: return "CL_INVALID_WORK_DIMENSION";
	case CL_INVALID_WORK_GROUP_SIZE: return "CL_INVALID_WORK_GROUP_SIZE";
	case CL_INVALID_WORK_ITEM_SIZE: return "CL_INVALID_WORK_ITEM_SIZE";
	case CL_INVALID_GLOBAL_OFFSET: return "CL_INVALID_GLOBAL_OFFSET";
	case CL_INVALID_EVENT_WAIT_LIST: return "CL_INVALID_EVENT_WAIT_LIST";
	case CL_INVALID_EVENT: return "CL_INVALID_EVENT";
	case CL_INVALID_OPERATION: return "CL_INVALID_OPERATION";
	case CL_INVALID_BUFFER_SIZE: return "CL_INVALID_BUFFER_SIZE";
	default: return "CL_UNKNOWN_ERROR";
	}
}

static cl_command_queue mandel_create_queue(cl_context ctx, cl_device_id device, cl_int *status) {
	return clCreateCommandQueue(ctx, device, 0, status);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

// Device is the GPU chosen by SelectDevice.
type Device struct {
	platformID C.cl_platform_id
	deviceID   C.cl_device_id
	Platform   PlatformInfo
	Info       DeviceInfo
}

// Runtime owns the OpenCL context and command queue bound to one device.
type Runtime struct {
	deviceID C.cl_device_id
	context  C.cl_context
	queue    C.cl_command_queue
	Platform PlatformInfo
	Device   DeviceInfo
}

// SelectDevice returns the first GPU device of the first platform. There is
// no fallback to CPU devices or to later platforms.
func SelectDevice() (*Device, error) {
	var count C.cl_uint
	status := C.clGetPlatformIDs(0, nil, &count)
	if status == C.MANDEL_PLATFORM_NOT_FOUND_KHR || count == 0 {
		return nil, ErrNoDevices
	}
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrDeviceNotFound, statusError("clGetPlatformIDs", status))
	}

	var platform C.cl_platform_id
	status = C.clGetPlatformIDs(1, &platform, nil)
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrDeviceNotFound, statusError("clGetPlatformIDs", status))
	}

	var device C.cl_device_id
	status = C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, 1, &device, nil)
	if status == C.CL_DEVICE_NOT_FOUND {
		return nil, ErrNoDevices
	}
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrDeviceNotFound, statusError("clGetDeviceIDs", status))
	}

	platformInfo, err := buildPlatformInfo(platform)
	if err != nil {
		return nil, err
	}
	deviceInfo, err := buildDeviceInfo(device)
	if err != nil {
		return nil, err
	}
	deviceInfo.Selected = true

	return &Device{
		platformID: platform,
		deviceID:   device,
		Platform:   platformInfo,
		Info:       deviceInfo,
	}, nil
}

// NewRuntime creates a context scoped to exactly dev and one in-order command
// queue on it.
func NewRuntime(dev *Device) (*Runtime, error) {
	if dev == nil {
		return nil, ErrNoDevices
	}

	var status C.cl_int

	context := C.clCreateContext(nil, 1, &dev.deviceID, nil, nil, &status)
	if status != C.CL_SUCCESS {
		return nil, fmt.Errorf("%w: %w", mandel.ErrContextCreate, statusError("clCreateContext", status))
	}

	queue := C.mandel_create_queue(context, dev.deviceID, &status)
	if status != C.CL_SUCCESS {
		C.clReleaseContext(context)
		return nil, fmt.Errorf("%w: %w", mandel.ErrContextCreate, statusError("clCreateCommandQueue", status))
	}

	return &Runtime{
		deviceID: dev.deviceID,
		context:  context,
		queue:    queue,
		Platform: dev.Platform,
		Device:   dev.Info,
	}, nil
}

// ContextPtr exposes the cl_context handle to other cgo packages.
func (r *Runtime) ContextPtr() unsafe.Pointer {
	return unsafe.Pointer(r.context)
}

// QueuePtr exposes the cl_command_queue handle to other cgo packages.
func (r *Runtime) QueuePtr() unsafe.Pointer {
	return unsafe.Pointer(r.queue)
}

// DevicePtr exposes the cl_device_id handle to other cgo packages.
func (r *Runtime) DevicePtr() unsafe.Pointer {
	return unsafe.Pointer(r.deviceID)
}

// ReleaseQueue releases the command queue ahead of the context. It is safe to
// call more than once.
func (r *Runtime) ReleaseQueue() {
	if r == nil || r.queue == nil {
		return
	}
	C.clReleaseCommandQueue(r.queue)
	r.queue = nil
}

// Close releases OpenCL resources.
func (r *Runtime) Close() {
	if r == nil {
		return
	}
	r.ReleaseQueue()
	if r.context != nil {
		C.clReleaseContext(r.context)
		r.context = nil
	}
}

// EnumeratePlatforms returns discovered platforms with all of their devices.
func EnumeratePlatforms() ([]PlatformInfo, error) {
	var count C.cl_uint
	status := C.clGetPlatformIDs(0, nil, &count)
	if status == C.MANDEL_PLATFORM_NOT_FOUND_KHR || count == 0 {
		return nil, nil
	}
	if status != C.CL_SUCCESS {
		return nil, statusError("clGetPlatformIDs(count)", status)
	}

	platformIDs := make([]C.cl_platform_id, int(count))
	status = C.clGetPlatformIDs(count, &platformIDs[0], nil)
	if status != C.CL_SUCCESS {
		return nil, statusError("clGetPlatformIDs(list)", status)
	}

	out := make([]PlatformInfo, 0, int(count))
	for _, pid := range platformIDs {
		info, err := buildPlatformInfo(pid)
		if err != nil {
			return nil, err
		}

		devices, err := enumerateDevices(pid)
		if err != nil && !errors.Is(err, ErrNoDevices) {
			return nil, err
		}
		info.Devices = devices

		out = append(out, info)
	}

	markSelected(out)
	return out, nil
}

// StatusError formats an OpenCL status code returned by call.
func StatusError(call string, status int32) error {
	return statusError(call, C.cl_int(status))
}

func enumerateDevices(platform C.cl_platform_id) ([]DeviceInfo, error) {
	var count C.cl_uint
	status := C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_ALL, 0, nil, &count)
	if status == C.CL_DEVICE_NOT_FOUND {
		return nil, ErrNoDevices
	}
	if status != C.CL_SUCCESS {
		return nil, statusError("clGetDeviceIDs(count)", status)
	}
	if count == 0 {
		return nil, ErrNoDevices
	}

	deviceIDs := make([]C.cl_device_id, int(count))
	status = C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_ALL, count, &deviceIDs[0], nil)
	if status != C.CL_SUCCESS {
		return nil, statusError("clGetDeviceIDs(list)", status)
	}

	devices := make([]DeviceInfo, 0, int(count))
	for _, id := range deviceIDs {
		info, err := buildDeviceInfo(id)
		if err != nil {
			return nil, err
		}
		devices = append(devices, info)
	}

	return devices, nil
}

func buildPlatformInfo(id C.cl_platform_id) (PlatformInfo, error) {
	name, err := getPlatformString(id, C.CL_PLATFORM_NAME)
	if err != nil {
		return PlatformInfo{}, err
	}
	vendor, err := getPlatformString(id, C.CL_PLATFORM_VENDOR)
	if err != nil {
		return PlatformInfo{}, err
	}
	version, err := getPlatformString(id, C.CL_PLATFORM_VERSION)
	if err != nil {
		return PlatformInfo{}, err
	}

	return PlatformInfo{
		Name:    name,
		Vendor:  vendor,
		Version: version,
	}, nil
}

func buildDeviceInfo(id C.cl_device_id) (DeviceInfo, error) {
	name, err := getDeviceString(id, C.CL_DEVICE_NAME)
	if err != nil {
		return DeviceInfo{}, err
	}
	vendor, err := getDeviceString(id, C.CL_DEVICE_VENDOR)
	if err != nil {
		return DeviceInfo{}, err
	}
	version, err := getDeviceString(id, C.CL_DEVICE_VERSION)
	if err != nil {
		return DeviceInfo{}, err
	}

	var rawType C.cl_device_type
	status := C.clGetDeviceInfo(id, C.CL_DEVICE_TYPE, C.size_t(unsafe.Sizeof(rawType)), unsafe.Pointer(&rawType), nil)
	if status != C.CL_SUCCESS {
		return DeviceInfo{}, statusError("clGetDeviceInfo(type)", status)
	}

	var computeUnits C.cl_uint
	status = C.clGetDeviceInfo(id, C.CL_DEVICE_MAX_COMPUTE_UNITS, C.size_t(unsafe.Sizeof(computeUnits)), unsafe.Pointer(&computeUnits), nil)
	if status != C.CL_SUCCESS {
		return DeviceInfo{}, statusError("clGetDeviceInfo(computeUnits)", status)
	}

	var workGroup C.size_t
	status = C.clGetDeviceInfo(id, C.CL_DEVICE_MAX_WORK_GROUP_SIZE, C.size_t(unsafe.Sizeof(workGroup)), unsafe.Pointer(&workGroup), nil)
	if status != C.CL_SUCCESS {
		return DeviceInfo{}, statusError("clGetDeviceInfo(workGroup)", status)
	}

	return DeviceInfo{
		Name:            name,
		Vendor:          vendor,
		Version:         version,
		Type:            mapDeviceType(rawType),
		MaxComputeUnits: uint32(computeUnits),
		MaxWorkGroup:    uint64(workGroup),
	}, nil
}

func getPlatformString(id C.cl_platform_id, param C.cl_platform_info) (string, error) {
	var size C.size_t
	status := C.clGetPlatformInfo(id, param, 0, nil, &size)
	if status != C.CL_SUCCESS {
		return "", statusError("clGetPlatformInfo(size)", status)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, int(size))
	status = C.clGetPlatformInfo(id, param, size, unsafe.Pointer(&buf[0]), nil)
	if status != C.CL_SUCCESS {
		return "", statusError("clGetPlatformInfo(value)", status)
	}

	return trimNull(buf), nil
}

func getDeviceString(id C.cl_device_id, param C.cl_device_info) (string, error) {
	var size C.size_t
	status := C.clGetDeviceInfo(id, param, 0, nil, &size)
	if status != C.CL_SUCCESS {
		return "", statusError("clGetDeviceInfo(size)", status)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, int(size))
	status = C.clGetDeviceInfo(id, param, size, unsafe.Pointer(&buf[0]), nil)
	if status != C.CL_SUCCESS {
		return "", statusError("clGetDeviceInfo(value)", status)
	}

	return trimNull(buf), nil
}

func trimNull(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	if buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}

func mapDeviceType(dt C.cl_device_type) DeviceType {
	switch {
	case dt&C.CL_DEVICE_TYPE_GPU != 0:
		return DeviceTypeGPU
	case dt&C.CL_DEVICE_TYPE_CPU != 0:
		return DeviceTypeCPU
	case dt&C.CL_DEVICE_TYPE_ACCELERATOR != 0:
		return DeviceTypeAccelerator
	case dt&C.CL_DEVICE_TYPE_DEFAULT != 0:
		return DeviceTypeDefault
	default:
		return DeviceTypeUnknown
	}
}

func statusError(prefix string, status C.cl_int) error {
	return fmt.Errorf("%s: %s (%d)", prefix, C.GoString(C.mandel_cl_error_string(status)), int(status))
}
