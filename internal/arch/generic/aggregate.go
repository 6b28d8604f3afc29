package generic

import (
	"math/bits"

	"github.com/cwbudde/algo-sgm/internal/simd"
)

// AggregatePatch writes dst[d*dstPitch+l] = popcount(left[l] ^ R[l+16-d]),
// with R = right[0] followed by right[1]. When edge is set, entries with
// l < d are 0.
func AggregatePatch(left *simd.LaneGroup, right *[2]simd.LaneGroup, dst []byte, dstPitch int, edge bool) {
	const n = simd.LaneGroupSize

	for d := 0; d < n; d++ {
		row := dst[d*dstPitch : d*dstPitch+n]
		for l := range row {
			if edge && l < d {
				row[l] = 0
				continue
			}
			j := l + n - d
			row[l] = uint8(bits.OnesCount32(left[l] ^ right[j/n][j%n]))
		}
	}
}
