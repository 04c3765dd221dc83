//go:build !gpu

package gpu

import "fmt"

// ErrNotBuilt indicates the binary was built without GPU support.
var ErrNotBuilt = fmt.Errorf("opencl support requires building with '-tags gpu'")

// EnumeratePlatforms returns an error when GPU support is not compiled in.
func EnumeratePlatforms() ([]PlatformInfo, error) {
	return nil, ErrNotBuilt
}
