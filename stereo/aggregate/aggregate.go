package aggregate

import (
	"sync"

	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/cpu"
	"github.com/cwbudde/algo-sgm/internal/simd"
)

// PatchSize is the width and height of a cost patch.
const PatchSize = simd.LaneGroupSize

// LaneGroup holds 16 consecutive descriptors.
type LaneGroup = simd.LaneGroup

// Layout is the input of one cost patch: 16 left descriptors and the 32
// right descriptors that can match them. Right[1][l] is the
// zero-disparity partner of Left[l].
type Layout struct {
	Left  LaneGroup
	Right [2]LaneGroup
}

var (
	backend     registry.OpEntry
	backendOnce sync.Once
)

// Backend returns the name of the backend serving AggregatePatch, e.g.
// "generic".
func Backend() string {
	return selected().Name
}

// AggregatePatch writes the 16x16 cost patch of l to dst, one disparity per
// row, dstPitch bytes apart. Only the first 16 bytes of each row are
// written. l is not modified.
//
// Panics if dstPitch < 16 or len(dst) < 15*dstPitch+16.
func AggregatePatch(l *Layout, dst []byte, dstPitch int) {
	Patch(l, dst, dstPitch, false)
}

// AggregateEdgePatch is AggregatePatch for a patch whose right group starts
// left of the image: entries with l < d are 0.
func AggregateEdgePatch(l *Layout, dst []byte, dstPitch int) {
	Patch(l, dst, dstPitch, true)
}

// Patch dispatches to AggregatePatch or AggregateEdgePatch.
func Patch(l *Layout, dst []byte, dstPitch int, edge bool) {
	checkPatchDst(dst, dstPitch)
	selected().AggregatePatch(&l.Left, &l.Right, dst, dstPitch, edge)
}

func checkPatchDst(dst []byte, dstPitch int) {
	if dstPitch < PatchSize {
		panic("aggregate: destination pitch < 16")
	}
	if len(dst) < (PatchSize-1)*dstPitch+PatchSize {
		panic("aggregate: destination too small for a 16x16 patch")
	}
}

func selected() *registry.OpEntry {
	backendOnce.Do(initBackend)
	return &backend
}

func initBackend() {
	entry := registry.Global.LookupOp(cpu.DetectFeatures(), registry.HasAggregatePatch)
	if entry == nil {
		panic("aggregate: no AggregatePatch kernel registered (missing generic fallback?)")
	}

	backend = *entry
}
