// Package testutil provides deterministic fixtures and the unvectorised
// census reference used by the kernel tests.
package testutil

import (
	"math/rand"

	"github.com/cwbudde/algo-sgm/internal/simd"
)

// DeterministicImage returns a height x pitch byte buffer of seeded noise.
// Padding bytes past width are filled too, so kernels that read them by
// mistake produce visibly wrong descriptors.
func DeterministicImage(seed int64, width, height, pitch int) []byte {
	if pitch < width {
		pitch = width
	}
	out := make([]byte, height*pitch)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = byte(rng.Intn(256))
	}
	return out
}

// Gradient returns a width x height image whose value grows with x and y.
// Every descriptor of a strict gradient is known in closed form.
func Gradient(width, height int) []byte {
	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y*width+x] = byte(x + 2*y)
		}
	}
	return out
}

// Constant returns a width x height image with every pixel set to v.
func Constant(v byte, width, height int) []byte {
	out := make([]byte, width*height)
	for i := range out {
		out[i] = v
	}
	return out
}

// DeterministicDescriptors returns n seeded 31-bit descriptors.
func DeterministicDescriptors(seed int64, n int) []uint32 {
	out := make([]uint32, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Uint32() & simd.DescriptorMask
	}
	return out
}

// LaneGroup copies 16 descriptors starting at src[0] into a lane group.
func LaneGroup(src []uint32) simd.LaneGroup {
	var g simd.LaneGroup
	copy(g[:], src)
	return g
}

// Sentinel fills buf with v so untouched regions can be checked later.
func Sentinel[T any](buf []T, v T) {
	for i := range buf {
		buf[i] = v
	}
}
