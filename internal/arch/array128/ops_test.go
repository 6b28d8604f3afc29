package array128

import (
	"math/bits"
	"testing"

	"github.com/cwbudde/algo-sgm/internal/arch/swar"
	"github.com/cwbudde/algo-sgm/internal/simd"
	"github.com/cwbudde/algo-sgm/internal/testutil"
)

const pitch = lanes + 8

func lane(r *X1, i int) byte { return byte(swar.Lane(r[:], i)) }

func setLane(r *X1, i int, v byte) {
	shift := 8 * uint(i%8)
	r[i/8] = r[i/8]&^(0xff<<shift) | uint64(v)<<shift
}

// rowsFixture returns a 2-row image where pixel (x, y) = 32*y + x.
func rowsFixture() []byte {
	src := make([]byte, 2*pitch)
	for y := 0; y < 2; y++ {
		for x := 0; x < pitch; x++ {
			src[y*pitch+x] = byte(32*y + x)
		}
	}
	return src
}

func TestLoadRow2(t *testing.T) {
	var r X2
	Ops{}.LoadRow2(&r, rowsFixture(), pitch)

	for row := 0; row < 2; row++ {
		for i := 0; i < half; i++ {
			if got, want := lane(&r.Lo, row*half+i), byte(32*row+i); got != want {
				t.Fatalf("Lo[%d] = %d, want %d", row*half+i, got, want)
			}
			if got, want := lane(&r.Hi, row*half+i), byte(32*row+8+i); got != want {
				t.Fatalf("Hi[%d] = %d, want %d", row*half+i, got, want)
			}
		}
	}
}

func TestCmpRow2SelectBit(t *testing.T) {
	ops := Ops{}

	var a, b X2
	for i := 0; i < lanes; i++ {
		setLane(&a.Lo, i, 200)
		setLane(&b.Hi, i, byte(199+i%3)) // 199 (false), 200 (tie, false), 201 (true)
	}

	for bit := uint(0); bit < 8; bit++ {
		var acc X1
		for i := 0; i < lanes; i++ {
			setLane(&acc, i, 0x5a)
		}
		ops.SelectBit(&acc, ops.CmpRow2(&a, &b), bit)

		for i := 0; i < lanes; i++ {
			want := uint8(0x5a) &^ (1 << bit)
			if i%3 == 2 {
				want |= 1 << bit
			}
			if got := lane(&acc, i); got != want {
				t.Fatalf("bit %d lane %d = %#x, want %#x", bit, i, got, want)
			}
		}
	}
}

func TestTransposeRow2SelfInverse(t *testing.T) {
	ops := Ops{}

	var a, b X2
	ops.LoadRow2(&a, rowsFixture(), pitch)
	for i := 0; i < lanes; i++ {
		setLane(&b.Lo, i, byte(200+i))
		setLane(&b.Hi, i, byte(100+i))
	}
	origA, origB := a, b

	ops.TransposeRow2(&a, &b)
	for i := 0; i < half; i++ {
		if lane(&a.Lo, half+i) != lane(&origB.Lo, i) || lane(&b.Lo, i) != lane(&origA.Lo, half+i) {
			t.Fatalf("Lo lane %d not exchanged", i)
		}
		if lane(&a.Hi, half+i) != lane(&origB.Hi, i) || lane(&b.Hi, i) != lane(&origA.Hi, half+i) {
			t.Fatalf("Hi lane %d not exchanged", i)
		}
		if lane(&a.Lo, i) != lane(&origA.Lo, i) || lane(&b.Lo, half+i) != lane(&origB.Lo, half+i) {
			t.Fatalf("untouched half modified at lane %d", i)
		}
	}

	ops.TransposeRow2(&a, &b)
	if a != origA || b != origB {
		t.Fatal("TransposeRow2 is not its own inverse")
	}
}

func TestRollOutward2(t *testing.T) {
	ops := Ops{}

	var r X2
	ops.LoadRow2(&r, rowsFixture(), pitch)

	for x := 0; x < simd.FeatureHalfWidth; x++ {
		ops.RollOutward2(&r, x)
		dx := x + 1

		for row := 0; row < 2; row++ {
			for i := 0; i < half; i++ {
				if got, want := lane(&r.Lo, row*half+i), byte(32*row+i+dx); got != want {
					t.Fatalf("after roll %d: Lo[%d] = %d, want %d", x, row*half+i, got, want)
				}
				if got, want := lane(&r.Hi, row*half+i), byte(32*row+i+8-dx); got != want {
					t.Fatalf("after roll %d: Hi[%d] = %d, want %d", x, row*half+i, got, want)
				}
			}
		}
	}
}

func TestZip4PacksDescriptors(t *testing.T) {
	var r [4]X1
	for g := range r {
		for i := 0; i < lanes; i++ {
			setLane(&r[g], i, byte(lanes*g+i))
		}
	}

	ops := Ops{}
	ops.Zip4(&r[0], &r[1], &r[2], &r[3])

	const q = lanes / 4
	var dst [lanes]uint32
	for k := range r {
		ops.StoreFeature(&r[k], dst[k*q:(k+1)*q])
	}

	for i, got := range dst {
		want := uint32(i) | uint32(lanes+i)<<8 | uint32(2*lanes+i)<<16 | uint32(3*lanes+i)<<24
		if got != want {
			t.Fatalf("lane %d descriptor = %#08x, want %#08x", i, got, want)
		}
	}
}

func TestShiftUpWRotates(t *testing.T) {
	desc := testutil.DeterministicDescriptors(3, 32)
	g0, g1 := testutil.LaneGroup(desc[:16]), testutil.LaneGroup(desc[16:])

	ops := Ops{}
	r0, r1 := ops.ShiftUpW(ops.LoadW(&g0), ops.LoadW(&g1))

	flat := func(i int) uint32 {
		if i < 16 {
			return r0[i/descs][i%descs]
		}
		return r1[(i-16)/descs][(i-16)%descs]
	}

	if flat(0) != desc[31] {
		t.Fatalf("carry lane = %#x, want %#x", flat(0), desc[31])
	}
	for i := 1; i < 32; i++ {
		if flat(i) != desc[i-1] {
			t.Fatalf("lane %d = %#x, want %#x", i, flat(i), desc[i-1])
		}
	}
}

func TestPopcntXorW(t *testing.T) {
	left := testutil.DeterministicDescriptors(4, 16)
	right := testutil.DeterministicDescriptors(5, 32)
	gl, g0, g1 := testutil.LaneGroup(left), testutil.LaneGroup(right[:16]), testutil.LaneGroup(right[16:])

	ops := Ops{}
	l, r0, r1 := ops.LoadW(&gl), ops.LoadW(&g0), ops.LoadW(&g1)

	for offset := 0; offset < simd.LaneGroupSize/descs; offset++ {
		cost := ops.PopcntXorW(l, r0, r1, offset)
		for i, got := range cost {
			want := uint8(bits.OnesCount32(left[i] ^ right[i+16-offset*descs]))
			if got != want {
				t.Fatalf("offset %d lane %d = %d, want %d", offset, i, got, want)
			}
		}
	}
}

func TestClear(t *testing.T) {
	ops := Ops{}
	x := X1{1, 2}
	ops.Clear(&x)
	if x != (X1{}) {
		t.Fatalf("Clear left %v", x)
	}
	if w := ops.ClearW(); w != (W{}) {
		t.Fatalf("ClearW returned %v", w)
	}
}
