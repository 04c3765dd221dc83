//go:build gpu

package gpu

import (
	"errors"
	"testing"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

func TestSelectDeviceIsGPU(t *testing.T) {
	dev, err := SelectDevice()
	if errors.Is(err, mandel.ErrDeviceNotFound) {
		t.Skipf("No GPU device: %v", err)
	}
	if err != nil {
		t.Fatalf("SelectDevice failed: %v", err)
	}

	if dev.Info.Type != DeviceTypeGPU {
		t.Errorf("Expected GPU device, got %s", dev.Info.Type)
	}
	if !dev.Info.Selected {
		t.Error("Selected device should be marked")
	}
}

func TestNewRuntimeAndClose(t *testing.T) {
	dev, err := SelectDevice()
	if errors.Is(err, mandel.ErrDeviceNotFound) {
		t.Skipf("No GPU device: %v", err)
	}
	if err != nil {
		t.Fatalf("SelectDevice failed: %v", err)
	}

	rt, err := NewRuntime(dev)
	if err != nil {
		t.Fatalf("NewRuntime failed: %v", err)
	}

	if rt.ContextPtr() == nil || rt.QueuePtr() == nil || rt.DevicePtr() == nil {
		t.Error("Expected non-nil OpenCL handles")
	}

	rt.ReleaseQueue()
	if rt.QueuePtr() != nil {
		t.Error("Queue should be nil after ReleaseQueue")
	}

	rt.Close()
	rt.Close()
	if rt.ContextPtr() != nil {
		t.Error("Context should be nil after Close")
	}
}

func TestEnumeratePlatformsMarksSelection(t *testing.T) {
	platforms, err := EnumeratePlatforms()
	if err != nil {
		t.Fatalf("EnumeratePlatforms failed: %v", err)
	}

	selected := 0
	for _, p := range platforms {
		for _, d := range p.Devices {
			if d.Selected {
				selected++
				if d.Type != DeviceTypeGPU {
					t.Errorf("Selected device %q is %s, expected GPU", d.Name, d.Type)
				}
			}
		}
	}
	if selected > 1 {
		t.Errorf("Expected at most one selected device, got %d", selected)
	}
}
