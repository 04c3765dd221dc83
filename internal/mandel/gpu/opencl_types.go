package gpu

// DeviceType describes the class of an OpenCL device.
type DeviceType string

const (
	DeviceTypeGPU         DeviceType = "GPU"
	DeviceTypeCPU         DeviceType = "CPU"
	DeviceTypeAccelerator DeviceType = "Accelerator"
	DeviceTypeDefault     DeviceType = "Default"
	DeviceTypeUnknown     DeviceType = "Unknown"
)

// DeviceInfo captures metadata about an OpenCL device.
type DeviceInfo struct {
	Name            string
	Vendor          string
	Version         string
	Type            DeviceType
	MaxComputeUnits uint32
	MaxWorkGroup    uint64
	// Selected marks the device SelectDevice picks.
	Selected bool
}

// PlatformInfo captures metadata about an OpenCL platform and its devices.
type PlatformInfo struct {
	Name    string
	Vendor  string
	Version string
	Devices []DeviceInfo
}

// markSelected flags the first GPU of the first platform, mirroring SelectDevice.
func markSelected(platforms []PlatformInfo) {
	if len(platforms) == 0 {
		return
	}
	for i := range platforms[0].Devices {
		if platforms[0].Devices[i].Type == DeviceTypeGPU {
			platforms[0].Devices[i].Selected = true
			return
		}
	}
}
