// Package generic provides pure Go fallback implementations of census
// extraction and cost aggregation.
package generic

import (
	"github.com/cwbudde/algo-sgm/internal/kernel"
	"github.com/cwbudde/algo-sgm/internal/simd"
	"github.com/cwbudde/algo-sgm/internal/tune"
)

// Policy is the geometry the generic backend reports and validates against.
// It matches the 128-bit backend so every backend accepts the same inputs.
var Policy = tune.Array128

// pair is one comparison of the census patch: bit is set when the pixel at
// (x0, y0) is darker than the pixel at (x1, y1).
type pair struct {
	x0, y0, x1, y1 int
	bit            uint
}

// pairs lists all 31 comparisons, ordered by bit.
var pairs = buildPairs()

func buildPairs() []pair {
	const (
		w = simd.FeatureWidth
		h = simd.FeatureHeight
		c = simd.FeatureHalfWidth
	)

	out := make([]pair, 0, 31)
	for dx := 0; dx < c; dx++ {
		// even rows first, then odd rows
		pos := uint(0)
		for _, start := range [2]int{0, 1} {
			for y := start; y < h; y += 2 {
				out = append(out, pair{x0: dx, y0: y, x1: w - 1 - dx, y1: h - 1 - y, bit: 8*uint(dx) + pos})
				pos++
			}
		}

		// centre column: rows (0,6), (2,4), (1,5)
		if dx < 3 {
			y := [3]int{0, 2, 1}[dx]
			out = append(out, pair{x0: c, y0: y, x1: c, y1: h - 1 - y, bit: 8*uint(dx) + 7})
		}
	}
	return out
}

// Extract computes census descriptors one pixel at a time.
func Extract(src []byte, width, height, srcPitch int, dst []uint32, dstPitch int) error {
	dstPitch, err := kernel.CheckGeometry(len(src), width, height, srcPitch, len(dst), dstPitch, Policy.HPatch(), Policy.VPatch())
	if err != nil {
		return err
	}

	outW, outH := kernel.OutputSize(width, height)
	for y := 0; y < outH; y++ {
		row := dst[y*dstPitch : y*dstPitch+outW]
		for x := range row {
			row[x] = descriptor(src[y*srcPitch+x:], srcPitch)
		}
	}
	return nil
}

func descriptor(patch []byte, pitch int) uint32 {
	var d uint32
	for _, p := range pairs {
		if patch[p.y0*pitch+p.x0] < patch[p.y1*pitch+p.x1] {
			d |= 1 << p.bit
		}
	}
	return d
}
