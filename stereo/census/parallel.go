package census

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sgm/internal/kernel"
	"github.com/cwbudde/algo-sgm/internal/simd"
)

// band is a run of output rows handled by one worker.
type band struct {
	y0, rows int
}

// bands splits outH rows into runs of size rows. The remainder is merged
// into the last run so every run holds at least size rows and runs never
// overlap.
func bands(outH, size int) []band {
	n := max(outH/size, 1)
	out := make([]band, n)
	for i := range out {
		out[i] = band{y0: i * size, rows: size}
	}
	out[n-1].rows = outH - out[n-1].y0
	return out
}

// ExtractParallel is Extract split into row bands processed by up to workers
// goroutines. workers <= 0 uses GOMAXPROCS. Geometry is validated before
// any band starts; a cancelled context stops bands that have not started
// and returns ctx.Err(), leaving their rows unwritten.
func ExtractParallel(ctx context.Context, src []byte, width, height, srcPitch int, dst []uint32, dstPitch int, workers int) error {
	entry := selected()
	p := entry.Tune

	dstPitch, err := kernel.CheckGeometry(len(src), width, height, srcPitch, len(dst), dstPitch, p.HPatch(), p.VPatch())
	if err != nil {
		return err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outW, outH := kernel.OutputSize(width, height)
	size := max(p.VBlock, p.VStep)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, b := range bands(outH, size) {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			h := b.rows + (simd.FeatureHeight - 1)
			s := src[b.y0*srcPitch:]
			d := dst[b.y0*dstPitch : (b.y0+b.rows-1)*dstPitch+outW]
			return entry.Extract(s, width, h, srcPitch, d, dstPitch)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
