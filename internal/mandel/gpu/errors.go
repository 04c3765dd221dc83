package gpu

import (
	"fmt"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

// ErrNoDevices indicates that the first platform exposes no GPU device.
var ErrNoDevices = fmt.Errorf("%w: no OpenCL GPU device on the first platform", mandel.ErrDeviceNotFound)
