package census

import (
	"errors"
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-sgm/internal/testutil"
)

func TestExtractMatchesReference(t *testing.T) {
	// 96x86 with a trailing sentinel: the output must fill exactly
	// 88x80 descriptors.
	const w, h = 96, 86
	src := testutil.DeterministicImage(2024, w, h, w)
	want := testutil.ApplyCensus(src, w, h, w)

	dst := make([]uint32, len(want)+1)
	dst[len(want)] = 0xdeadbeef

	if err := Extract(src, w, h, w, dst, AutoPitch); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if diff := cmp.Diff(want, dst[:len(want)]); diff != "" {
		t.Fatalf("descriptors differ (-want +got):\n%s", diff)
	}
	if dst[len(want)] != 0xdeadbeef {
		t.Fatal("sentinel after output overwritten")
	}
	for i, d := range dst[:len(want)] {
		if d>>31 != 0 {
			t.Fatalf("descriptor %d has bit 31 set", i)
		}
	}
}

func TestExtractTooSmall(t *testing.T) {
	minW, minH := MinSize()
	src := testutil.Constant(9, minW-1, minH)
	dst := make([]uint32, 256)
	testutil.Sentinel(dst, 0x55555555)

	err := Extract(src, minW-1, minH, minW-1, dst, AutoPitch)
	if !errors.Is(err, ErrInputTooSmall) {
		t.Fatalf("err = %v, want ErrInputTooSmall", err)
	}
	for i, v := range dst {
		if v != 0x55555555 {
			t.Fatalf("dst[%d] written on error", i)
		}
	}
}

func TestBackendIsRegistered(t *testing.T) {
	switch name := Backend(); name {
	case "array128", "array256", "generic":
	default:
		t.Fatalf("Backend() = %q", name)
	}

	minW, minH := MinSize()
	if minW < 16 || minH < 8 {
		t.Fatalf("MinSize() = %dx%d", minW, minH)
	}
}

func TestOutputSize(t *testing.T) {
	w, h := OutputSize(640, 480)
	if w != 632 || h != 474 {
		t.Fatalf("OutputSize(640, 480) = %dx%d, want 632x474", w, h)
	}
}

func TestFieldAccessors(t *testing.T) {
	f := Field{Data: make([]uint32, 3*5), Width: 4, Height: 3, Pitch: 5}
	for i := range f.Data {
		f.Data[i] = uint32(i)
	}

	if got := f.At(2, 1); got != 7 {
		t.Fatalf("At(2, 1) = %d, want 7", got)
	}
	if diff := cmp.Diff([]uint32{10, 11, 12, 13}, f.Row(2)); diff != "" {
		t.Fatalf("Row(2) (-want +got):\n%s", diff)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name string
		f    Field
		want error
	}{
		{"pitch", Field{Data: make([]uint32, 20), Width: 5, Height: 2, Pitch: 4}, ErrInvalidPitch},
		{"short", Field{Data: make([]uint32, 8), Width: 4, Height: 3, Pitch: 4}, ErrShortBuffer},
		{"negative", Field{Width: -1}, ErrShortBuffer},
	}
	for _, tc := range tests {
		if err := tc.f.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	if n := NewField(6, 2); len(n.Data) != 12 || n.Pitch != 6 {
		t.Fatalf("NewField(6, 2) = %+v", n)
	}
}

func TestTransformReusesBuffer(t *testing.T) {
	tr := NewTransform()

	const w, h = 64, 40
	a := testutil.DeterministicImage(1, w, h, w)
	b := testutil.DeterministicImage(2, w, h, w)

	fa, err := tr.Execute(a, w, h, w)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if diff := cmp.Diff(testutil.ApplyCensus(a, w, h, w), fa.Data); diff != "" {
		t.Fatalf("first frame (-want +got):\n%s", diff)
	}

	fb, err := tr.Execute(b, w, h, w)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if &fa.Data[0] != &fb.Data[0] {
		t.Fatal("buffer not reused for equal frame size")
	}
	if diff := cmp.Diff(testutil.ApplyCensus(b, w, h, w), tr.Output().Data); diff != "" {
		t.Fatalf("Output() (-want +got):\n%s", diff)
	}
}

func TestTransformRejectKeepsOutput(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tr := NewTransform(WithLogger(zap.New(core)))

	const w, h = 40, 20
	src := testutil.DeterministicImage(3, w, h, w)
	if _, err := tr.Execute(src, w, h, w); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	before := append([]uint32(nil), tr.Output().Data...)

	if _, err := tr.Execute(src[:10], 5, 2, 5); !errors.Is(err, ErrInputTooSmall) {
		t.Fatalf("err = %v, want ErrInputTooSmall", err)
	}
	if diff := cmp.Diff(before, tr.Output().Data); diff != "" {
		t.Fatalf("output changed after rejected frame:\n%s", diff)
	}

	entries := logs.FilterMessage("census: frame rejected").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["width"] != int64(5) || fields["backend"] != Backend() {
		t.Fatalf("log fields = %v", fields)
	}
}

func TestTransformRejectsUnsatisfiableGeometry(t *testing.T) {
	const huge = math.MaxInt / 2

	tests := []struct {
		name                 string
		width, height, pitch int
	}{
		{"huge frame", huge, huge, huge},
		{"huge pitch", 64, 1 << 20, math.MaxInt >> 19},
		{"tall frame", 24, huge, 24},
	}

	for _, workers := range []int{1, 4} {
		for _, tc := range tests {
			t.Run(fmt.Sprintf("%s/workers=%d", tc.name, workers), func(t *testing.T) {
				tr := NewTransform(WithWorkers(workers))
				_, err := tr.Execute(make([]byte, 64), tc.width, tc.height, tc.pitch)
				if !errors.Is(err, ErrShortBuffer) {
					t.Fatalf("err = %v, want ErrShortBuffer", err)
				}
				if out := tr.Output(); out.Data != nil {
					t.Fatalf("Output() = %dx%d after rejected frame", out.Width, out.Height)
				}
			})
		}
	}
}

func TestTransformWorkers(t *testing.T) {
	const w, h = 120, 150
	src := testutil.DeterministicImage(8, w, h, w)

	got, err := NewTransform(WithWorkers(4)).Execute(src, w, h, w)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if diff := cmp.Diff(testutil.ApplyCensus(src, w, h, w), got.Data); diff != "" {
		t.Fatalf("parallel frame (-want +got):\n%s", diff)
	}
}

func TestExecuteGraySubImage(t *testing.T) {
	const w, h = 80, 50
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, testutil.DeterministicImage(4, w, h, w))

	sub := img.SubImage(image.Rect(10, 5, 60, 35)).(*image.Gray)
	got, err := NewTransform().ExecuteGray(sub)
	if err != nil {
		t.Fatalf("ExecuteGray: %v", err)
	}

	want := testutil.ApplyCensus(img.Pix[5*w+10:], 50, 30, w)
	if got.Width != 42 || got.Height != 24 {
		t.Fatalf("field = %dx%d, want 42x24", got.Width, got.Height)
	}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("sub-image descriptors (-want +got):\n%s", diff)
	}
}

func BenchmarkExtract(b *testing.B) {
	const w, h = 640, 480
	src := testutil.DeterministicImage(5, w, h, w)
	outW, outH := OutputSize(w, h)
	dst := make([]uint32, outW*outH)

	b.SetBytes(w * h)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := Extract(src, w, h, w, dst, AutoPitch); err != nil {
			b.Fatal(err)
		}
	}
}
