//go:build (amd64 || arm64) && !purego

package array128

import (
	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/tune"
)

// init registers the 128-bit backend. The SIMD level and priority depend on
// the architecture (see level_*.go).
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "array128",
		SIMDLevel: simdLevel,
		Priority:  priority,
		Tune:      tune.Array128,

		// AggregatePatch is served by generic; compare with
		// BenchmarkAggregatePatch in internal/kernel before registering it.
		Extract: Extract,
	})
}
