package generic

import (
	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/cpu"
)

// init registers the generic (pure Go) implementations.
//
// The generic backend is the baseline fallback when no SIMD backend is
// available or when ForceGeneric is enabled for testing.
//
// Priority: 0 (lowest)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Tune:      Policy,

		Extract:        Extract,
		AggregatePatch: AggregatePatch,
	})
}
