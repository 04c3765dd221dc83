package gpu

import "testing"

func TestAlign(t *testing.T) {
	tests := []struct {
		x, y     int
		expected int
	}{
		{1200, 256, 1280},
		{640, 1, 640},
		{256, 256, 256},
		{257, 256, 512},
		{1, 256, 256},
		{0, 256, 0},
	}

	for _, tt := range tests {
		if got := Align(tt.x, tt.y); got != tt.expected {
			t.Errorf("Align(%d, %d) = %d, expected %d", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestWorkSizeDefaultImage(t *testing.T) {
	r := WorkSize(1200, 640)

	if r.Global != [2]int{1280, 640} {
		t.Errorf("Global = %v, expected [1280 640]", r.Global)
	}
	if r.Local != [2]int{256, 1} {
		t.Errorf("Local = %v, expected [256 1]", r.Local)
	}
	if r.Items() != 1280*640 {
		t.Errorf("Items = %d, expected %d", r.Items(), 1280*640)
	}
}

func TestWorkSizeCoversImage(t *testing.T) {
	for _, w := range []int{1, 7, 255, 256, 300, 1025} {
		for _, h := range []int{1, 3, 480} {
			r := WorkSize(w, h)
			for d, dim := range []int{w, h} {
				if r.Global[d] < dim {
					t.Errorf("%dx%d: global[%d]=%d does not cover %d", w, h, d, r.Global[d], dim)
				}
				if r.Global[d]%r.Local[d] != 0 {
					t.Errorf("%dx%d: global[%d]=%d is not a multiple of %d", w, h, d, r.Global[d], r.Local[d])
				}
				if r.Global[d]-dim >= r.Local[d] {
					t.Errorf("%dx%d: global[%d]=%d pads a whole extra group", w, h, d, r.Global[d])
				}
			}
		}
	}
}
