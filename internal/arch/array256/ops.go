// Package array256 is the 256-bit register backend: 32 byte lanes, one
// paired-row register covers 16 outputs of two image rows and one descriptor
// register holds 8 descriptors. Like array128 it emulates its registers with
// word-parallel byte lanes in portable Go.
package array256

import (
	"github.com/cwbudde/algo-sgm/internal/arch/swar"
	"github.com/cwbudde/algo-sgm/internal/simd"
)

const (
	lanes = 32
	half  = lanes / 2 // outputs per row
	words = lanes / 8 // uint64 words per byte-lane register
	descs = 8         // descriptors per W register
	hw    = words / 2 // words per row of a paired-row register
)

type (
	// X1 is one register of byte lanes.
	X1 [words]uint64

	// P1 flags a lane by setting its top bit.
	P1 [words]uint64

	// X2 holds two rows: lanes [0,16) are the near row, [16,32) the far row.
	// Lo carries the left column of each mirrored pair, Hi the right one.
	X2 struct {
		Lo, Hi X1
	}

	// W is a lane group of 16 descriptors in two registers.
	W [simd.LaneGroupSize / descs][descs]uint32
)

// Ops implements simd.Ops for 256-bit registers.
type Ops struct{}

var _ simd.Ops[X1, P1, X2, W] = Ops{}

func (Ops) Lanes() int { return lanes }

func (Ops) Clear(r *X1) { *r = X1{} }

func (Ops) LoadRow2(r *X2, src []byte, pitch int) {
	swar.Load(r.Lo[:hw], src)
	swar.Load(r.Lo[hw:], src[pitch:])
	swar.Load(r.Hi[:hw], src[8:])
	swar.Load(r.Hi[hw:], src[pitch+8:])
}

func (Ops) CmpRow2(a, b *X2) P1 {
	var p P1
	swar.Less(p[:], a.Lo[:], b.Hi[:])
	return p
}

func (Ops) SelectBit(acc *X1, p P1, bit uint) { swar.Select(acc[:], p[:], bit) }

func (Ops) TransposeRow2(a, b *X2) {
	swar.Swap(a.Lo[hw:], b.Lo[:hw])
	swar.Swap(a.Hi[hw:], b.Hi[:hw])
}

func (Ops) RollOutward2(r *X2, x int) {
	swar.Roll(r.Lo[:hw], r.Hi[:hw], x)
	swar.Roll(r.Lo[hw:], r.Hi[hw:], x)
}

func (Ops) Zip4(r0, r1, r2, r3 *X1) { swar.Zip4(r0[:], r1[:], r2[:], r3[:]) }

func (Ops) StoreFeature(r *X1, dst []uint32) { swar.Store(r[:], dst) }

func (Ops) DescriptorsPerReg() int { return descs }

func (Ops) LoadW(src *simd.LaneGroup) W {
	var r W
	for m := range r {
		copy(r[m][:], src[m*descs:])
	}
	return r
}

func (Ops) ClearW() W { return W{} }

func (Ops) PopcntXorW(left, right0, right1 W, offset int) simd.CostRow {
	var cost simd.CostRow
	n := len(left)

	for m := range left {
		j := n - offset + m
		reg := &right1
		if j < n {
			reg = &right0
		} else {
			j -= n
		}
		swar.PopcntXor(cost[m*descs:(m+1)*descs], left[m][:], reg[j][:])
	}
	return cost
}

func (Ops) ShiftUpW(right0, right1 W) (W, W) {
	carry := right1[len(right1)-1][descs-1]
	for m := range right0 {
		carry = swar.ShiftUp32(right0[m][:], carry)
	}
	for m := range right1 {
		carry = swar.ShiftUp32(right1[m][:], carry)
	}
	return right0, right1
}
