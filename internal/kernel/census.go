package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-sgm/internal/simd"
	"github.com/cwbudde/algo-sgm/internal/tune"
)

// Census extracts 31-bit census descriptors with one register backend.
type Census[O simd.Ops[X1, P1, X2, W], X1, P1, X2, W any] struct {
	ops  O
	tune tune.Policy
}

// patchLayout is the scratch state of one patch evaluation: the paired rows
// of the input window and the four column-pair accumulators per row pair.
type patchLayout[X1, X2 any] struct {
	rows []X2
	out  [][simd.FeatureHalfWidth]X1
}

// NewCensus binds a backend to a tuning policy. The policy must validate and
// its HStep must match the backend's lane count.
func NewCensus[O simd.Ops[X1, P1, X2, W], X1, P1, X2, W any](ops O, p tune.Policy) (*Census[O, X1, P1, X2, W], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if lanes := ops.Lanes(); p.HStep*2 != lanes || lanes%4 != 0 {
		return nil, fmt.Errorf("%w: %s: HStep %d does not fit %d byte lanes", tune.ErrInvalidPolicy, p.Name, p.HStep, lanes)
	}
	return &Census[O, X1, P1, X2, W]{ops: ops, tune: p}, nil
}

// Policy returns the tuning policy the engine was built with.
func (c *Census[O, X1, P1, X2, W]) Policy() tune.Policy {
	return c.tune
}

// Extract writes one descriptor per interior pixel of src to dst.
// dstPitch may be AutoPitch. Nothing is written when an error is returned.
func (c *Census[O, X1, P1, X2, W]) Extract(src []byte, width, height, srcPitch int, dst []uint32, dstPitch int) error {
	p := c.tune

	dstPitch, err := CheckGeometry(len(src), width, height, srcPitch, len(dst), dstPitch, p.HPatch(), p.VPatch())
	if err != nil {
		return err
	}

	l := patchLayout[X1, X2]{
		rows: make([]X2, p.RowPairs()),
		out:  make([][simd.FeatureHalfWidth]X1, p.VStep/2),
	}

	outW, outH := OutputSize(width, height)

	// Tiles keep the rows of a block hot in cache across horizontal steps.
	for ty := 0; ty < outH; ty += p.VBlock {
		y0, bh := span(ty, p.VBlock, outH, p.VStep)
		for tx := 0; tx < outW; tx += p.HBlock {
			x0, bw := span(tx, p.HBlock, outW, p.HStep)
			c.executeBlock(&l,
				src[y0*srcPitch+x0:], srcPitch,
				dst[y0*dstPitch+x0:], dstPitch,
				bw, bh)
		}
	}

	return nil
}

// executeBlock evaluates a bw x bh output tile in HStep x VStep patches.
func (c *Census[O, X1, P1, X2, W]) executeBlock(l *patchLayout[X1, X2], src []byte, srcPitch int, dst []uint32, dstPitch, bw, bh int) {
	p := c.tune

	for by := 0; by < bh; by += p.VStep {
		y, _ := span(by, p.VStep, bh, p.VStep)
		for bx := 0; bx < bw; bx += p.HStep {
			x, _ := span(bx, p.HStep, bw, p.HStep)

			row0 := src[y*srcPitch+x:]
			for i := range l.rows {
				c.ops.LoadRow2(&l.rows[i], row0[2*i*srcPitch:], srcPitch)
			}

			c.executePatch(l, dst[y*dstPitch+x:], dstPitch)
		}
	}
}

// executePatch computes the descriptors of VStep rows of HStep pixels from
// the loaded paired rows. Row pair y covers output rows 2y and 2y+1 and uses
// l.rows[y..y+3], i.e. input rows 2y..2y+7.
func (c *Census[O, X1, P1, X2, W]) executePatch(l *patchLayout[X1, X2], dst []uint32, dstPitch int) {
	ops := c.ops
	rows := l.rows

	for x := 0; x < simd.FeatureHalfWidth; x++ {
		for y := range l.out {
			acc := &l.out[y][x]
			ops.Clear(acc)

			r0, r1, r2, r3 := &rows[y], &rows[y+1], &rows[y+2], &rows[y+3]

			// Even rows, each lane pair compares the near column of one
			// row with the mirrored column of its vertical mirror:
			//   lo: row 0/2/4/6 against row 6/4/2/0
			//   hi: row 1/3/5/7 against row 7/5/3/1
			ops.SelectBit(acc, ops.CmpRow2(r0, r3), 0)
			ops.SelectBit(acc, ops.CmpRow2(r1, r2), 1)
			ops.SelectBit(acc, ops.CmpRow2(r2, r1), 2)
			ops.SelectBit(acc, ops.CmpRow2(r3, r0), 3)

			// Odd rows. Regroup the pairs in place so that
			//   odd0 = rows (1,2), odd1 = rows (3,4), odd2 = rows (5,6)
			// then undo in reverse order.
			oddX, odd2, odd0, odd1 := r0, r1, r2, r3

			ops.TransposeRow2(odd1, odd0)
			ops.TransposeRow2(oddX, odd0)
			ops.TransposeRow2(odd2, odd1)
			ops.TransposeRow2(odd0, odd2)

			ops.SelectBit(acc, ops.CmpRow2(odd0, odd2), 4)
			ops.SelectBit(acc, ops.CmpRow2(odd1, odd1), 5)
			ops.SelectBit(acc, ops.CmpRow2(odd2, odd0), 6)

			ops.TransposeRow2(odd0, odd2)
			ops.TransposeRow2(odd2, odd1)
			ops.TransposeRow2(oddX, odd0)
			ops.TransposeRow2(odd1, odd0)
		}

		for i := range rows {
			ops.RollOutward2(&rows[i], x)
		}
	}

	// Both halves now sit on the centre column. Three vertical comparisons
	// remain; they fill bit 7 of the first three column pairs.
	q := ops.Lanes() / 4
	for y := range l.out {
		out := &l.out[y]
		r0, r1, r2, r3 := &rows[y], &rows[y+1], &rows[y+2], &rows[y+3]

		ops.SelectBit(&out[0], ops.CmpRow2(r0, r3), 7)
		ops.SelectBit(&out[1], ops.CmpRow2(r1, r2), 7)

		// r2 = rows (1,2), r1 = rows (5,6)
		ops.TransposeRow2(r0, r2)
		ops.TransposeRow2(r1, r3)
		ops.TransposeRow2(r2, r1)

		ops.SelectBit(&out[2], ops.CmpRow2(r2, r1), 7)

		ops.TransposeRow2(r2, r1)
		ops.TransposeRow2(r1, r3)
		ops.TransposeRow2(r0, r2)

		ops.Zip4(&out[0], &out[1], &out[2], &out[3])

		rowA := dst[2*y*dstPitch:]
		rowB := dst[(2*y+1)*dstPitch:]
		ops.StoreFeature(&out[0], rowA[:q])
		ops.StoreFeature(&out[1], rowA[q:2*q])
		ops.StoreFeature(&out[2], rowB[:q])
		ops.StoreFeature(&out[3], rowB[q:2*q])
	}
}
