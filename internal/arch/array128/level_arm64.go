//go:build arm64 && !purego

package array128

import "github.com/cwbudde/algo-sgm/internal/cpu"

// NEON is mandatory on arm64 and there is no wider backend there.
const (
	simdLevel = cpu.SIMDNEON
	priority  = 15
)
