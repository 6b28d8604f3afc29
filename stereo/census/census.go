package census

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/cpu"
	"github.com/cwbudde/algo-sgm/internal/kernel"
)

// AutoPitch selects the output width as destination pitch.
const AutoPitch = kernel.AutoPitch

var (
	// ErrInputTooSmall is returned for images smaller than the minimum patch
	// of the selected backend.
	ErrInputTooSmall = kernel.ErrInputTooSmall

	// ErrInvalidPitch is returned when a row pitch is shorter than its row.
	ErrInvalidPitch = kernel.ErrInvalidPitch

	// ErrShortBuffer is returned when src or dst cannot hold the declared
	// geometry.
	ErrShortBuffer = kernel.ErrShortBuffer
)

var (
	backend     registry.OpEntry
	backendOnce sync.Once
)

// OutputSize returns the descriptor field size of a width x height image.
func OutputSize(width, height int) (int, int) {
	return kernel.OutputSize(width, height)
}

// MinSize returns the smallest image the selected backend accepts.
func MinSize() (int, int) {
	p := selected().Tune
	return p.HPatch(), p.VPatch()
}

// Backend returns the name of the selected backend, e.g. "array256".
func Backend() string {
	return selected().Name
}

// Extract writes the descriptor of every interior pixel of src to dst.
//
// src holds height rows of width pixels, srcPitch bytes apart. dst receives
// (width-8) x (height-6) descriptors, dstPitch apart; dstPitch may be
// AutoPitch. Nothing is written when an error is returned.
func Extract(src []byte, width, height, srcPitch int, dst []uint32, dstPitch int) error {
	return selected().Extract(src, width, height, srcPitch, dst, dstPitch)
}

// checkSource validates the source geometry alone, so that callers can size
// the destination from width and height afterwards.
func checkSource(src []byte, width, height, srcPitch int) error {
	p := selected().Tune
	_, err := kernel.CheckGeometry(len(src), width, height, srcPitch, math.MaxInt, AutoPitch, p.HPatch(), p.VPatch())
	return err
}

func selected() *registry.OpEntry {
	backendOnce.Do(initBackend)
	return &backend
}

func initBackend() {
	entry := registry.Global.LookupOp(cpu.DetectFeatures(), registry.HasExtract)
	if entry == nil {
		panic("census: no Extract kernel registered (missing generic fallback?)")
	}

	backend = *entry
}
