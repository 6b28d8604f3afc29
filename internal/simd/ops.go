package simd

// Census patch geometry. The 31-bit descriptor layout depends on these exact
// values; the array lengths below fail to compile if either is edited.
const (
	FeatureWidth  = 9
	FeatureHeight = 7

	// FeatureHalfWidth is the number of mirrored column pairs left of centre.
	FeatureHalfWidth = FeatureWidth / 2
)

var (
	_ [FeatureWidth - 9]struct{}
	_ [9 - FeatureWidth]struct{}
	_ [FeatureHeight - 7]struct{}
	_ [7 - FeatureHeight]struct{}
)

// DescriptorMask selects the 31 meaningful descriptor bits.
const DescriptorMask uint32 = 1<<31 - 1

// LaneGroupSize is the number of descriptors in one aggregation lane group
// and the edge length of a cost patch.
const LaneGroupSize = 16

// LaneGroup is 16 adjacent descriptors of one image row.
type LaneGroup [LaneGroupSize]uint32

// Ops is the capability set a register-width backend provides.
//
// Implementations are stateless value types; every method is a total
// function over fixed-size containers.
type Ops[X1, P1, X2, W any] interface {
	// Lanes reports the number of byte lanes in X1 (twice the outputs per row).
	Lanes() int

	// Clear zeroes every lane of r.
	Clear(r *X1)

	// LoadRow2 loads two rows of src, pitch bytes apart. Lo receives columns
	// [0, Lanes/2) and Hi columns [8, 8+Lanes/2) of each row.
	LoadRow2(r *X2, src []byte, pitch int)

	// CmpRow2 returns a lane-wise a.Lo < b.Hi predicate, one flag per lane.
	CmpRow2(a, b *X2) P1

	// SelectBit replaces bit `bit` of every lane of acc with the lane's
	// predicate bit. Other bits are preserved.
	SelectBit(acc *X1, p P1, bit uint)

	// TransposeRow2 swaps the far row of a with the near row of b.
	// Calling it twice with the same operands restores both.
	TransposeRow2(a, b *X2)

	// RollOutward2 advances the column pair by one: Lo moves one column
	// right and Hi one column left. x is the current column offset.
	RollOutward2(r *X2, x int)

	// Zip4 transposes the four per-column-pair accumulators so that
	// register k holds the packed descriptors of lanes [k*Lanes/4, (k+1)*Lanes/4).
	Zip4(r0, r1, r2, r3 *X1)

	// StoreFeature writes Lanes/4 packed descriptors to dst.
	StoreFeature(r *X1, dst []uint32)

	// DescriptorsPerReg reports how many descriptors one W register holds.
	DescriptorsPerReg() int

	// W operations pass lane groups by value and never retain them.

	// LoadW loads a lane group.
	LoadW(src *LaneGroup) W

	// ClearW returns a zeroed lane group.
	ClearW() W

	// PopcntXorW returns popcount(left[l] ^ R[l+16-offset*DescriptorsPerReg()])
	// for each lane l, where R is right0 followed by right1.
	PopcntXorW(left, right0, right1 W, offset int) CostRow

	// ShiftUpW rotates right0‖right1 up by one descriptor, carrying the last
	// descriptor of right1 into the first lane of right0.
	ShiftUpW(right0, right1 W) (W, W)
}
