package kernel

import (
	"math"
	"testing"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		pos, size, total, minSize int
		wantStart, wantN          int
	}{
		{0, 64, 200, 8, 0, 64},
		{192, 64, 200, 8, 192, 8},
		{196, 8, 200, 8, 192, 8},
		{0, 64, 10, 8, 0, 10},
		{8, 8, 10, 8, 2, 8},
		{4, 2, 5, 2, 3, 2},
	}

	for _, tc := range tests {
		start, n := span(tc.pos, tc.size, tc.total, tc.minSize)
		if start != tc.wantStart || n != tc.wantN {
			t.Fatalf("span(%d, %d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.pos, tc.size, tc.total, tc.minSize, start, n, tc.wantStart, tc.wantN)
		}
	}
}

func TestOutputSize(t *testing.T) {
	w, h := OutputSize(96, 86)
	if w != 88 || h != 80 {
		t.Fatalf("OutputSize(96, 86) = %dx%d, want 88x80", w, h)
	}
}

func TestCheckGeometryAutoPitch(t *testing.T) {
	pitch, err := CheckGeometry(20*10, 20, 10, 20, 12*4, AutoPitch, 16, 10)
	if err != nil {
		t.Fatalf("CheckGeometry: %v", err)
	}
	if pitch != 12 {
		t.Fatalf("pitch = %d, want 12", pitch)
	}

	pitch, err = CheckGeometry(20*10, 20, 10, 20, 3*30+12, 30, 16, 10)
	if err != nil {
		t.Fatalf("CheckGeometry: %v", err)
	}
	if pitch != 30 {
		t.Fatalf("pitch = %d, want 30", pitch)
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		n, rows, pitch, width int
		want                  bool
	}{
		{200, 10, 20, 20, true},
		{199, 10, 20, 20, false},
		{192, 10, 20, 12, true},
		{191, 10, 20, 12, false},
		{11, 1, 1 << 20, 12, false},
		{12, 1, math.MaxInt, 12, true},
		{64, 1 << 20, math.MaxInt >> 19, 24, false},
		{math.MaxInt, 3, math.MaxInt / 2, 8, false},
	}

	for _, tc := range tests {
		if got := fits(tc.n, tc.rows, tc.pitch, tc.width); got != tc.want {
			t.Fatalf("fits(%d, %d, %d, %d) = %v, want %v", tc.n, tc.rows, tc.pitch, tc.width, got, tc.want)
		}
	}
}
