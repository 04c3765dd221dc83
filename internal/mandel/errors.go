package mandel

import "errors"

// Failure reasons. Errors returned by the gpu, renderer, ppm and pipeline
// packages wrap one of these; use errors.Is to classify them.
var (
	ErrDeviceNotFound = errors.New("no GPU device found")
	ErrContextCreate  = errors.New("compute context creation failed")
	ErrKernelSource   = errors.New("kernel source unreadable")
	ErrBuildFailed    = errors.New("program build failed")
	ErrKernelMissing  = errors.New("kernel entry point missing")
	ErrBufferCreate   = errors.New("device buffer allocation failed")
	ErrDispatchFailed = errors.New("kernel dispatch failed")
	ErrWriteFailed    = errors.New("image write failed")
)

// StageError records the stage a run had reached when a step failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return "after " + e.Stage.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Reason returns the failure reason wrapped by err, or nil if err does not
// carry one of the sentinels above.
func Reason(err error) error {
	for _, reason := range []error{
		ErrDeviceNotFound,
		ErrContextCreate,
		ErrKernelSource,
		ErrBuildFailed,
		ErrKernelMissing,
		ErrBufferCreate,
		ErrDispatchFailed,
		ErrWriteFailed,
	} {
		if errors.Is(err, reason) {
			return reason
		}
	}
	return nil
}
