package gpu

import "github.com/cwbudde/mandelcl/internal/mandel"

// ArgKind is the host type bound to a kernel argument slot.
type ArgKind int

const (
	ArgFloat ArgKind = iota
	ArgInt
	ArgBuffer
)

func (k ArgKind) String() string {
	switch k {
	case ArgFloat:
		return "float"
	case ArgInt:
		return "int"
	case ArgBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Binding is one clSetKernelArg call.
type Binding struct {
	Index uint32
	Name  string
	Kind  ArgKind
	Float float32
	Int   int32
}

// KernelArgs are the scalar arguments of draw_mandelbrot.
type KernelArgs struct {
	CenterX       float32
	CenterY       float32
	Magnification float32
	Iterations    float32
	Width         int32
	Height        int32
}

// ArgsForView converts a view to kernel arguments.
func ArgsForView(v mandel.View) KernelArgs {
	return KernelArgs{
		CenterX:       v.CenterX,
		CenterY:       v.CenterY,
		Magnification: v.Magnification,
		Iterations:    v.MaxIterations,
		Width:         int32(v.Width),
		Height:        int32(v.Height),
	}
}

// Bindings returns the eight argument slots in kernel order. Slot 6 is the
// output buffer; its handle is supplied by the caller. Slot 7 is the output
// row pitch, which is the image width again.
func (a KernelArgs) Bindings() []Binding {
	return []Binding{
		{Index: 0, Name: "x", Kind: ArgFloat, Float: a.CenterX},
		{Index: 1, Name: "y", Kind: ArgFloat, Float: a.CenterY},
		{Index: 2, Name: "mag", Kind: ArgFloat, Float: a.Magnification},
		{Index: 3, Name: "iterations", Kind: ArgFloat, Float: a.Iterations},
		{Index: 4, Name: "w", Kind: ArgInt, Int: a.Width},
		{Index: 5, Name: "h", Kind: ArgInt, Int: a.Height},
		{Index: 6, Name: "out", Kind: ArgBuffer},
		{Index: 7, Name: "pitch", Kind: ArgInt, Int: a.Width},
	}
}
