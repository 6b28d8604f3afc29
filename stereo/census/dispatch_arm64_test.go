//go:build arm64 && !purego

package census

import (
	"sync"
	"testing"

	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/cpu"
)

func resetBackendForTest() {
	backend = registry.OpEntry{}
	backendOnce = sync.Once{}
}

func TestExtractDispatch_ARM64Modes(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		wantImpl string
	}{
		{"generic-forced", cpu.Features{HasNEON: true, ForceGeneric: true, Architecture: "arm64"}, "generic"},
		{"neon", cpu.Features{HasNEON: true, Architecture: "arm64"}, "array128"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)

			defer cpu.ResetDetection()
			defer resetBackendForTest()

			resetBackendForTest()

			if got := Backend(); got != tt.wantImpl {
				t.Fatalf("expected %q, got %q", tt.wantImpl, got)
			}
		})
	}
}
