package mandel

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestDefaultView(t *testing.T) {
	v := DefaultView()

	if v.Width != 1200 || v.Height != 640 {
		t.Errorf("Expected 1200x640, got %dx%d", v.Width, v.Height)
	}
	if v.CenterX != -0.5 || v.CenterY != 0 {
		t.Errorf("Expected center (-0.5, 0), got (%g, %g)", v.CenterX, v.CenterY)
	}
	if v.Magnification != 4.5 {
		t.Errorf("Expected magnification 4.5, got %g", v.Magnification)
	}
	if v.MaxIterations != 50 {
		t.Errorf("Expected 50 iterations, got %g", v.MaxIterations)
	}
	if err := v.Validate(); err != nil {
		t.Errorf("Default view should be valid: %v", err)
	}
}

func TestViewValidate(t *testing.T) {
	tests := []struct {
		name string
		view View
	}{
		{"zero width", View{Width: 0, Height: 10, Magnification: 1, MaxIterations: 1}},
		{"negative height", View{Width: 10, Height: -1, Magnification: 1, MaxIterations: 1}},
		{"no iterations", View{Width: 10, Height: 10, Magnification: 1, MaxIterations: 0}},
		{"width above int32", View{Width: math.MaxInt32 + 1, Height: 10, Magnification: 1, MaxIterations: 1}},
		{"height above int32", View{Width: 10, Height: math.MaxInt32 + 1, Magnification: 1, MaxIterations: 1}},
		{"zero magnification", View{Width: 10, Height: 10, Magnification: 0, MaxIterations: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.view.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestPixelsLayout(t *testing.T) {
	p := NewPixels(4, 3)

	if len(p.Data) != 12 {
		t.Fatalf("Expected 12 pixels, got %d", len(p.Data))
	}
	if p.ByteSize() != 48 {
		t.Errorf("Expected 48 bytes, got %d", p.ByteSize())
	}

	p.Data[1*4+2] = 7
	if p.At(2, 1) != 7 {
		t.Errorf("At(2,1) = %d, expected 7", p.At(2, 1))
	}
	if row := p.Row(1); len(row) != 4 || row[2] != 7 {
		t.Errorf("Row(1) = %v, expected 4 pixels with 7 at index 2", row)
	}
}

func TestPackRGBA(t *testing.T) {
	got := PackRGBA(0x11, 0x22, 0x33, 0xFF)
	if got != 0xFF332211 {
		t.Errorf("PackRGBA = %#x, expected 0xff332211", got)
	}
}

func TestStagesAreOrdered(t *testing.T) {
	stages := Stages()
	if len(stages) != 8 {
		t.Fatalf("Expected 8 stages, got %d", len(stages))
	}
	if stages[0] != StageUninitialized || stages[len(stages)-1] != StageTerminated {
		t.Errorf("Unexpected first/last stage: %v, %v", stages[0], stages[len(stages)-1])
	}
	for i := 1; i < len(stages); i++ {
		if stages[i] <= stages[i-1] {
			t.Errorf("Stage %v does not follow %v", stages[i], stages[i-1])
		}
	}
	if Stage(99).String() != "unknown" {
		t.Errorf("Out-of-range stage should print as unknown")
	}
}

func TestStageErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("%w: clBuildProgram: CL_BUILD_PROGRAM_FAILURE (-11)", ErrBuildFailed)
	err := &StageError{Stage: StageContextReady, Err: cause}

	if !errors.Is(err, ErrBuildFailed) {
		t.Error("Expected StageError to unwrap to ErrBuildFailed")
	}
	if Reason(err) != ErrBuildFailed {
		t.Errorf("Reason = %v, expected ErrBuildFailed", Reason(err))
	}
	if got := err.Error(); got != "after context_ready: "+cause.Error() {
		t.Errorf("Unexpected message: %s", got)
	}
	if Reason(errors.New("other")) != nil {
		t.Error("Expected nil reason for untagged error")
	}
}
