package mandel

import (
	"fmt"
	"math"
)

const (
	// KernelEntryPoint is the kernel function extracted from the built program.
	KernelEntryPoint = "draw_mandelbrot"

	// DefaultKernelPath is the kernel source file, relative to the working directory.
	DefaultKernelPath = "mandelbrot.cl"

	// DefaultOutputPath is the image file written by a render run.
	DefaultOutputPath = "mandelbrot.ppm"
)

// View holds the scalar parameters of one render.
type View struct {
	CenterX       float32 // Real part of the view center
	CenterY       float32 // Imaginary part of the view center
	Magnification float32 // Width of the view in the complex plane
	MaxIterations float32 // Escape-time iteration cap
	Width         int     // Image width in pixels
	Height        int     // Image height in pixels
}

// DefaultView returns the fixed parameters of the demo render.
func DefaultView() View {
	return View{
		CenterX:       -0.5,
		CenterY:       0,
		Magnification: 4.5,
		MaxIterations: 50,
		Width:         1200,
		Height:        640,
	}
}

// Validate reports whether the view describes a renderable image.
func (v View) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", v.Width, v.Height)
	}
	// The kernel takes both dimensions as int.
	if v.Width > math.MaxInt32 || v.Height > math.MaxInt32 {
		return fmt.Errorf("image size %dx%d exceeds the kernel's int range", v.Width, v.Height)
	}
	if v.MaxIterations < 1 {
		return fmt.Errorf("iteration count must be at least 1, got %g", v.MaxIterations)
	}
	if v.Magnification <= 0 {
		return fmt.Errorf("magnification must be positive, got %g", v.Magnification)
	}
	return nil
}

// PixelCount returns Width*Height.
func (v View) PixelCount() int {
	return v.Width * v.Height
}

// Pixels is the host-side pixel buffer: Width*Height packed colour values,
// row-major, top row first. Each value holds red in the low byte, then green,
// then blue, with alpha in the high byte.
type Pixels struct {
	Width  int
	Height int
	Data   []uint32
}

// NewPixels allocates a zeroed buffer for a width x height image.
func NewPixels(width, height int) *Pixels {
	return &Pixels{
		Width:  width,
		Height: height,
		Data:   make([]uint32, width*height),
	}
}

// Row returns the pixels of row y.
func (p *Pixels) Row(y int) []uint32 {
	return p.Data[y*p.Width : (y+1)*p.Width]
}

// At returns the pixel at (x, y).
func (p *Pixels) At(x, y int) uint32 {
	return p.Data[y*p.Width+x]
}

// ByteSize returns the size of the buffer in device memory.
func (p *Pixels) ByteSize() int {
	return len(p.Data) * 4
}

// PackRGBA packs channel values into the layout used by Pixels.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}
