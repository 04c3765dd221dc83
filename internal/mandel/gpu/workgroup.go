package gpu

// LocalSize is the fixed work-group shape: 256 work-items along x, 1 along y.
var LocalSize = [2]int{256, 1}

// Align rounds x up to the nearest multiple of y.
func Align(x, y int) int {
	return (x + y - 1) / y * y
}

// NDRange is a two-dimensional dispatch shape.
type NDRange struct {
	Global [2]int
	Local  [2]int
}

// WorkSize returns the dispatch covering a width x height image. Each global
// dimension is padded up to a whole number of work-groups, so the kernel sees
// work-items past the image edge and must bounds-check them.
func WorkSize(width, height int) NDRange {
	return NDRange{
		Global: [2]int{Align(width, LocalSize[0]), Align(height, LocalSize[1])},
		Local:  LocalSize,
	}
}

// Items returns the total number of work-items dispatched.
func (r NDRange) Items() int {
	return r.Global[0] * r.Global[1]
}
