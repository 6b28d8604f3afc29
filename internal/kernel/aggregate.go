package kernel

import "github.com/cwbudde/algo-sgm/internal/simd"

// Aggregation builds 16x16 Hamming cost patches with one register backend.
type Aggregation[O simd.Ops[X1, P1, X2, W], X1, P1, X2, W any] struct {
	ops O
}

// NewAggregation binds a backend to the aggregation engine.
func NewAggregation[O simd.Ops[X1, P1, X2, W], X1, P1, X2, W any](ops O) *Aggregation[O, X1, P1, X2, W] {
	return &Aggregation[O, X1, P1, X2, W]{ops: ops}
}

// AggregatePatch writes dst[d*dstPitch+l] = popcount(left[l] ^ R[l+16-d])
// for d, l in [0,16), with R = right[0] followed by right[1]. When edge is
// set, right[0] lies left of the image origin and entries with l < d are 0.
func (a *Aggregation[O, X1, P1, X2, W]) AggregatePatch(left *simd.LaneGroup, right *[2]simd.LaneGroup, dst []byte, dstPitch int, edge bool) {
	l := a.ops.LoadW(left)
	r0 := a.ops.LoadW(&right[0])
	r1 := a.ops.LoadW(&right[1])

	a.aggregate(l, r0, r1, dst, dstPitch, edge)
}

// aggregate sweeps the disparity range. Each register offset k covers n
// disparities; each shift step rotates the right groups by one descriptor,
// so row d = k*n + shift.
func (a *Aggregation[O, X1, P1, X2, W]) aggregate(left, right0, right1 W, dst []byte, dstPitch int, edge bool) {
	ops := a.ops
	n := ops.DescriptorsPerReg()
	groups := simd.LaneGroupSize / n

	for shift := 0; shift < n; shift++ {
		mask := simd.FillCost(0xff).ShiftUp(shift)

		for k := 0; k < groups; k++ {
			cost := ops.PopcntXorW(left, right0, right1, k)
			if edge {
				cost = cost.And(mask)
				mask = mask.ShiftUp(n)
			}
			cost.Store(dst[(k*n+shift)*dstPitch:])
		}

		right0, right1 = ops.ShiftUpW(right0, right1)
	}
}
