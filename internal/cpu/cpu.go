// Package cpu provides CPU feature detection for census and cost-aggregation
// backend selection.
//
// The backends are selected by the byte-shuffle and population-count
// capabilities of the processor: 128-bit kernels need SSSE3+POPCNT on amd64
// or ASIMD on arm64, 256-bit kernels need AVX2+POPCNT.
//
// Detection is performed lazily on the first call to DetectFeatures() and the
// results are cached for subsequent calls using sync.Once for thread-safety.
package cpu

import (
	"sync"
)

// SIMDLevel identifies the register width and instruction set a backend
// is tuned for. Levels are not comparable across architectures.
type SIMDLevel int

const (
	// SIMDNone indicates no SIMD optimization (scalar fallback).
	SIMDNone SIMDLevel = iota

	// SIMDSSSE3 indicates x86-64 128-bit byte shuffles (SSSE3) with POPCNT.
	SIMDSSSE3

	// SIMDAVX2 indicates x86-64 256-bit integer operations (AVX2) with POPCNT.
	SIMDAVX2

	// SIMDNEON indicates ARM Advanced SIMD (128-bit).
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSSE3:
		return "SSSE3"
	case SIMDAVX2:
		return "AVX2"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes CPU capabilities relevant to backend selection.
type Features struct {
	// x86/amd64 features
	HasSSE2   bool // baseline for amd64
	HasSSSE3  bool // byte shuffles used by the lane transposes
	HasPOPCNT bool // scalar population count
	HasAVX2   bool // 256-bit integer operations

	// ARM features
	HasNEON bool // ARM Advanced SIMD (ASIMD), includes CNT

	// Control flags
	ForceGeneric bool // Disable all width-specialised backends (for testing/debugging)

	// Runtime information
	Architecture string // runtime.GOARCH (e.g., "amd64", "arm64")
}

var (
	// detectedFeatures holds the cached CPU features detected on this system.
	detectedFeatures Features

	// detectOnce ensures feature detection runs exactly once, thread-safely.
	detectOnce sync.Once

	// detectMutex serializes access to detectOnce/detectedFeatures.
	detectMutex sync.Mutex

	// forcedFeatures allows overriding actual hardware detection for testing.
	forcedFeatures *Features

	// forcedMutex protects forcedFeatures from concurrent access during testing.
	forcedMutex sync.RWMutex
)

// DetectFeatures returns the CPU features available on the current system.
//
// Detection is performed once on the first call and cached for subsequent calls.
// This function is thread-safe and can be called concurrently from multiple goroutines.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// HasAVX2 returns true if the CPU supports AVX2 instructions.
func HasAVX2() bool {
	return DetectFeatures().HasAVX2
}

// HasNEON returns true if the CPU supports ARM NEON (Advanced SIMD) instructions.
func HasNEON() bool {
	return DetectFeatures().HasNEON
}

// SetForcedFeatures overrides CPU feature detection with the specified features.
// This is intended for testing purposes only.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears any forced features and the detection cache.
// This is intended for testing purposes.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}

// Supports returns true if the given CPU features support the specified SIMD level.
// The backend registry uses it to filter candidate implementations.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSSE3:
		return features.HasSSSE3 && features.HasPOPCNT
	case SIMDAVX2:
		return features.HasAVX2 && features.HasPOPCNT
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
