package testutil

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/cwbudde/algo-sgm/internal/simd"
)

// rowOrder is the order in which patch rows fill the seven comparison bits
// of a column pair: even rows first, then odd rows.
var rowOrder = [...]int{0, 2, 4, 6, 1, 3, 5}

// ReferenceCensus computes the descriptor of the 9x7 patch whose top-left
// pixel is src[0], with 31 explicit comparisons.
func ReferenceCensus(src []byte, pitch int) uint32 {
	at := func(x, y int) byte { return src[y*pitch+x] }

	var d uint32
	for dx := 0; dx < simd.FeatureHalfWidth; dx++ {
		for pos, y0 := range rowOrder {
			if at(dx, y0) < at(simd.FeatureWidth-1-dx, simd.FeatureHeight-1-y0) {
				d |= 1 << (8*dx + pos)
			}
		}
	}

	// Centre column, one vertical pair per group; (3,3) would be a
	// self-comparison and is never emitted.
	centre := simd.FeatureHalfWidth
	for group, y0 := range [...]int{0, 2, 1} {
		if at(centre, y0) < at(centre, simd.FeatureHeight-1-y0) {
			d |= 1 << (8*group + 7)
		}
	}
	return d
}

// ApplyCensus computes the full descriptor field of a width x height image
// with the reference rule. The result is packed with pitch width-8.
func ApplyCensus(src []byte, width, height, pitch int) []uint32 {
	outW := width - (simd.FeatureWidth - 1)
	outH := height - (simd.FeatureHeight - 1)
	if outW <= 0 || outH <= 0 {
		return nil
	}

	dst := make([]uint32, outW*outH)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			dst[y*outW+x] = ReferenceCensus(src[y*pitch+x:], pitch)
		}
	}
	return dst
}

// ReferenceCost returns the Hamming distance of two descriptors.
func ReferenceCost(a, b uint32) uint8 {
	return uint8(bits.OnesCount32(a ^ b))
}

// FormatDescriptor renders d as four space-separated bytes, most significant
// first, for readable test failures.
func FormatDescriptor(d uint32) string {
	var sb strings.Builder
	for i := 3; i >= 0; i-- {
		fmt.Fprintf(&sb, "%08b", byte(d>>(8*i)))
		if i > 0 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
