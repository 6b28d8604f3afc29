// Package registry provides the backend registry for census extraction and
// cost aggregation.
//
// Backends register themselves from init() functions in their arch packages.
// The public stereo packages select the highest-priority backend compatible
// with the detected CPU features, once per process.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-sgm/internal/cpu"
	"github.com/cwbudde/algo-sgm/internal/simd"
	"github.com/cwbudde/algo-sgm/internal/tune"
)

// ExtractFn computes census descriptors for the interior of src.
type ExtractFn func(src []byte, width, height, srcPitch int, dst []uint32, dstPitch int) error

// AggregatePatchFn builds one 16x16 cost patch.
type AggregatePatchFn func(left *simd.LaneGroup, right *[2]simd.LaneGroup, dst []byte, dstPitch int, edge bool)

// OpEntry is one registered backend.
type OpEntry struct {
	// Name is a human-readable identifier (e.g. "array128", "generic").
	Name string

	// SIMDLevel is the instruction set the backend is tuned for.
	SIMDLevel cpu.SIMDLevel

	// Priority orders compatible entries; higher wins. Suggested values:
	//   - generic: 0
	//   - 128-bit: 10 (SSSE3), 15 (NEON)
	//   - 256-bit: 20
	Priority int

	// Tune is the block/step geometry the kernels were built with.
	Tune tune.Policy

	// A backend may leave an operation nil; LookupOp then falls through to
	// the next compatible entry that provides it.
	Extract        ExtractFn
	AggregatePatch AggregatePatchFn
}

// HasExtract reports whether e provides census extraction.
func HasExtract(e *OpEntry) bool { return e.Extract != nil }

// HasAggregatePatch reports whether e provides cost aggregation.
func HasAggregatePatch(e *OpEntry) bool { return e.AggregatePatch != nil }

// OpRegistry stores available backends.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool // true if entries are sorted by priority (descending)
}

// Global is the default backend registry.
var Global = &OpRegistry{}

// Register adds a backend. All registrations should complete before the
// first Lookup.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority backend supported by features, or nil
// if none is (which should never happen with the generic fallback linked in).
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	return r.LookupOp(features, nil)
}

// LookupOp is Lookup restricted to entries for which has reports true.
// A nil has accepts every entry.
func (r *OpRegistry) LookupOp(features cpu.Features, has func(*OpEntry) bool) *OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) && (has == nil || has(entry)) {
			return entry
		}
	}

	return nil
}

// Find returns the backend registered under name regardless of CPU support.
// Tests use it to compare backends against each other.
func (r *OpRegistry) Find(name string) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			entry := r.entries[i]
			return &entry
		}
	}
	return nil
}

// sortByPriority sorts entries by priority in descending order.
// Must be called with r.mu held (write lock).
func (r *OpRegistry) sortByPriority() {
	// Insertion sort, the registry holds a handful of entries.
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of all registered entries.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
