//go:build amd64 && !purego

package array128

import "github.com/cwbudde/algo-sgm/internal/cpu"

const (
	simdLevel = cpu.SIMDSSSE3
	priority  = 10
)
