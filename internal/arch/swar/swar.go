// Package swar implements byte-lane and descriptor-lane register operations
// on plain machine words (SIMD within a register). The register backends
// bind these helpers to their fixed register widths.
//
// A byte-lane register is a slice of uint64 words: lane i lives in byte i%8
// of word i/8, little-endian. Predicates use the top bit of each byte lane.
package swar

import (
	"encoding/binary"
	"math/bits"
)

const (
	lsb = 0x0101010101010101
	msb = 0x8080808080808080
)

// MaxLanes is the widest byte-lane register Zip4 accepts.
const MaxLanes = 32

// Load fills r with 8*len(r) bytes of src.
func Load(r []uint64, src []byte) {
	src = src[:8*len(r)]
	for i := range r {
		r[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
}

// Lane returns byte lane i of r.
func Lane(r []uint64, i int) uint64 {
	return r[i>>3] >> (8 * uint(i&7)) & 0xff
}

// Less sets the top bit of every byte lane of p where a < b, unsigned, and
// clears every other bit.
func Less(p, a, b []uint64) {
	a, b = a[:len(p)], b[:len(p)]
	for i := range p {
		x, y := a[i], b[i]
		// Borrow-free per-lane x - y over the low seven bits.
		t := (x | msb) - (y &^ msb)
		p[i] = (^x&y | ^(x^y)&^t) & msb
	}
}

// Select replaces bit `bit` of every byte lane of acc with the top bit of the
// same lane of p. Other bits are preserved.
func Select(acc, p []uint64, bit uint) {
	p = p[:len(acc)]
	m := uint64(lsb) << bit
	for i := range acc {
		acc[i] = acc[i]&^m | p[i]>>(7-bit)
	}
}

// Swap exchanges the words of a and b.
func Swap(a, b []uint64) {
	b = b[:len(a)]
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// shiftDown moves every lane of r one position down and feeds in into the
// top lane.
func shiftDown(r []uint64, in uint64) {
	n := len(r) - 1
	for i := 0; i < n; i++ {
		r[i] = r[i]>>8 | r[i+1]<<56
	}
	r[n] = r[n]>>8 | in<<56
}

// shiftUp moves every lane of r one position up and feeds in into lane 0.
func shiftUp(r []uint64, in uint64) {
	for i := len(r) - 1; i > 0; i-- {
		r[i] = r[i]<<8 | r[i-1]>>56
	}
	r[0] = r[0]<<8 | in
}

// Roll advances one row of a paired-row register by a column: lo moves one
// column right and receives hi's lane h-8+2x, hi moves one column left and
// receives lo's lane 7-2x, where h is the lane count of the row.
func Roll(lo, hi []uint64, x int) {
	h := 8 * len(lo)
	inLo := Lane(hi, h-8+2*x)
	inHi := Lane(lo, 7-2*x)

	shiftDown(lo, inLo)
	shiftUp(hi, inHi)
}

// Zip4 packs four byte-lane accumulators into descriptors: byte k of the
// descriptor of lane j comes from lane j of register k. Afterwards register
// k holds the descriptors of lanes [k*L/4, (k+1)*L/4), two per word.
func Zip4(r0, r1, r2, r3 []uint64) {
	var d [MaxLanes]uint32
	n := 8 * len(r0)

	for j := range d[:n] {
		d[j] = uint32(Lane(r0, j)) | uint32(Lane(r1, j))<<8 | uint32(Lane(r2, j))<<16 | uint32(Lane(r3, j))<<24
	}

	q := n / 4
	for k, r := range [4][]uint64{r0, r1, r2, r3} {
		packed := d[k*q : (k+1)*q]
		for w := range r {
			r[w] = uint64(packed[2*w]) | uint64(packed[2*w+1])<<32
		}
	}
}

// Store writes the 2*len(r) descriptors packed in r to dst.
func Store(r []uint64, dst []uint32) {
	dst = dst[:2*len(r)]
	for w, v := range r {
		dst[2*w] = uint32(v)
		dst[2*w+1] = uint32(v >> 32)
	}
}

// PopcntXor sets cost[i] to the Hamming distance of left[i] and right[i].
func PopcntXor(cost []uint8, left, right []uint32) {
	left, right = left[:len(cost)], right[:len(cost)]
	for i := range cost {
		cost[i] = uint8(bits.OnesCount32(left[i] ^ right[i]))
	}
}

// ShiftUp32 moves every descriptor of r one lane up, feeds in into lane 0
// and returns the descriptor that fell off the top.
func ShiftUp32(r []uint32, in uint32) uint32 {
	out := r[len(r)-1]
	copy(r[1:], r[:len(r)-1])
	r[0] = in
	return out
}
