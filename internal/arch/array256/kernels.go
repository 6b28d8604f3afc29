package array256

import (
	"github.com/cwbudde/algo-sgm/internal/kernel"
	"github.com/cwbudde/algo-sgm/internal/simd"
	"github.com/cwbudde/algo-sgm/internal/tune"
)

var (
	censusKernel    = mustCensus()
	aggregateKernel = kernel.NewAggregation[Ops, X1, P1, X2, W](Ops{})
)

func mustCensus() *kernel.Census[Ops, X1, P1, X2, W] {
	c, err := kernel.NewCensus[Ops, X1, P1, X2, W](Ops{}, tune.Array256)
	if err != nil {
		panic("array256: " + err.Error())
	}
	return c
}

// Extract computes census descriptors with the 256-bit kernel.
func Extract(src []byte, width, height, srcPitch int, dst []uint32, dstPitch int) error {
	return censusKernel.Extract(src, width, height, srcPitch, dst, dstPitch)
}

// AggregatePatch builds one 16x16 cost patch with the 256-bit kernel.
func AggregatePatch(left *simd.LaneGroup, right *[2]simd.LaneGroup, dst []byte, dstPitch int, edge bool) {
	aggregateKernel.AggregatePatch(left, right, dst, dstPitch, edge)
}
