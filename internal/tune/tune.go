// Package tune holds the block and step geometry each backend is built for.
//
// A Policy bundles the outer tile size (HBlock x VBlock outputs) with the
// inner patch step (HStep x VStep outputs). HStep is fixed by the register
// width: one paired-row register covers HStep outputs of two rows.
package tune

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sgm/internal/simd"
)

// ErrInvalidPolicy reports a tuning policy whose geometry the census kernel
// cannot execute.
var ErrInvalidPolicy = errors.New("tune: invalid policy")

// Policy is the block/step geometry of one backend.
type Policy struct {
	Name string

	HBlock int // outputs per tile row
	VBlock int // output rows per tile

	HStep int // outputs per patch row, half the backend's byte lanes
	VStep int // output rows per patch, processed in pairs
}

// Geometry of the built-in policies. The assertions below reject odd
// vertical steps and blocks that are not step multiples at compile time.
const (
	array128HBlock = 64
	array128VBlock = 32
	array128HStep  = 8
	array128VStep  = 2

	array256HBlock = 128
	array256VBlock = 32
	array256HStep  = 16
	array256VStep  = 2
)

var (
	_ [-(array128VStep % 2)]struct{}
	_ [-(array256VStep % 2)]struct{}
	_ [-(array128HBlock % array128HStep)]struct{}
	_ [-(array128VBlock % array128VStep)]struct{}
	_ [-(array256HBlock % array256HStep)]struct{}
	_ [-(array256VBlock % array256VStep)]struct{}
	_ [array128HStep - (simd.FeatureWidth - 1)]struct{}
	_ [array256HStep - (simd.FeatureWidth - 1)]struct{}
)

var (
	// Array128 is the policy for 128-bit registers (16 byte lanes).
	Array128 = Policy{
		Name:   "array128",
		HBlock: array128HBlock,
		VBlock: array128VBlock,
		HStep:  array128HStep,
		VStep:  array128VStep,
	}

	// Array256 is the policy for 256-bit registers (32 byte lanes).
	Array256 = Policy{
		Name:   "array256",
		HBlock: array256HBlock,
		VBlock: array256VBlock,
		HStep:  array256HStep,
		VStep:  array256VStep,
	}
)

// HPatch returns the minimum input width: one step plus the patch border.
func (p Policy) HPatch() int {
	return p.HStep + simd.FeatureWidth - 1
}

// VPatch returns the minimum input height: one step plus the patch border.
func (p Policy) VPatch() int {
	return p.VStep + simd.FeatureHeight - 1
}

// RowPairs returns the number of paired-row registers one patch needs.
func (p Policy) RowPairs() int {
	return p.VPatch() / 2
}

// Validate checks the policy against the census kernel's constraints.
func (p Policy) Validate() error {
	switch {
	case p.VStep <= 0 || p.VStep%2 != 0:
		return fmt.Errorf("%w: %s: VStep %d must be positive and even", ErrInvalidPolicy, p.Name, p.VStep)
	case p.HStep < simd.FeatureWidth-1:
		// The outward roll re-injects the mirrored column from the other
		// half of the register, which needs at least 8 outputs per row.
		return fmt.Errorf("%w: %s: HStep %d must be at least %d", ErrInvalidPolicy, p.Name, p.HStep, simd.FeatureWidth-1)
	case p.HBlock < p.HStep || p.HBlock%p.HStep != 0:
		return fmt.Errorf("%w: %s: HBlock %d must be a positive multiple of HStep %d", ErrInvalidPolicy, p.Name, p.HBlock, p.HStep)
	case p.VBlock < p.VStep || p.VBlock%p.VStep != 0:
		return fmt.Errorf("%w: %s: VBlock %d must be a positive multiple of VStep %d", ErrInvalidPolicy, p.Name, p.VBlock, p.VStep)
	}
	return nil
}

// String formats the policy for diagnostics.
func (p Policy) String() string {
	return fmt.Sprintf("%s(block %dx%d, step %dx%d)", p.Name, p.HBlock, p.VBlock, p.HStep, p.VStep)
}
