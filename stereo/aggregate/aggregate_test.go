package aggregate

import (
	"testing"

	"github.com/cwbudde/algo-sgm/internal/testutil"
)

func newLayout(seed int64) (*Layout, []uint32, []uint32) {
	left := testutil.DeterministicDescriptors(seed, 16)
	right := testutil.DeterministicDescriptors(seed+1, 32)
	return &Layout{
		Left:  testutil.LaneGroup(left),
		Right: [2]LaneGroup{testutil.LaneGroup(right[:16]), testutil.LaneGroup(right[16:])},
	}, left, right
}

func TestPatchVariants(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(*Layout, []byte, int)
		edge  bool
		pitch int
	}{
		{"normal", AggregatePatch, false, 16},
		{"normal-pitched", AggregatePatch, false, 40},
		{"edge", AggregateEdgePatch, true, 16},
		{"edge-pitched", AggregateEdgePatch, true, 33},
		{"patch-edge", func(l *Layout, dst []byte, pitch int) { Patch(l, dst, pitch, true) }, true, 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, left, right := newLayout(int64(len(tc.name)))
			orig := *l

			dst := make([]byte, 15*tc.pitch+16)
			testutil.Sentinel(dst, 0xcc)
			tc.fn(l, dst, tc.pitch)

			if *l != orig {
				t.Fatal("layout modified")
			}

			for d := 0; d < PatchSize; d++ {
				for x := 0; x < PatchSize; x++ {
					want := testutil.ReferenceCost(left[x], right[x+16-d])
					if tc.edge && x < d {
						want = 0
					}
					if got := dst[d*tc.pitch+x]; got != want {
						t.Fatalf("[%d][%d] = %d, want %d", d, x, got, want)
					}
				}
				if d < PatchSize-1 {
					for x := PatchSize; x < tc.pitch; x++ {
						if dst[d*tc.pitch+x] != 0xcc {
							t.Fatalf("row %d padding %d overwritten", d, x)
						}
					}
				}
			}
		})
	}
}

func TestPatchPanicsOnShortDestination(t *testing.T) {
	l, _, _ := newLayout(1)

	tests := []struct {
		name  string
		size  int
		pitch int
	}{
		{"pitch", 16 * 16, 15},
		{"length", 15*16 + 15, 16},
		{"pitched-length", 15*32 + 15, 32},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			AggregatePatch(l, make([]byte, tc.size), tc.pitch)
		})
	}
}

func TestBackendIsRegistered(t *testing.T) {
	if name := Backend(); name != "generic" {
		t.Fatalf("Backend() = %q", name)
	}
}

func BenchmarkAggregatePatch(b *testing.B) {
	l, _, _ := newLayout(3)
	dst := make([]byte, PatchSize*PatchSize)

	b.SetBytes(int64(len(dst)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		AggregatePatch(l, dst, PatchSize)
	}
}
