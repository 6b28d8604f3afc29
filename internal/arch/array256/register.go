//go:build amd64 && !purego

package array256

import (
	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/cpu"
	"github.com/cwbudde/algo-sgm/internal/tune"
)

// init registers the 256-bit backend for AVX2-capable CPUs.
//
// Priority: 20 (preferred over the 128-bit and generic backends)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "array256",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Tune:      tune.Array256,

		// AggregatePatch is served by generic; compare with
		// BenchmarkAggregatePatch in internal/kernel before registering it.
		Extract: Extract,
	})
}
