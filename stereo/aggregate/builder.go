package aggregate

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sgm/stereo/census"
)

// bandRows is the number of volume rows one parallel task fills.
const bandRows = 16

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for rejected inputs. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithWorkers bounds the goroutines used by BuildParallel. n <= 0 uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// Builder fills cost volumes from pairs of descriptor fields.
type Builder struct {
	disparities int
	logger      *zap.Logger
	workers     int
}

// NewBuilder returns a Builder for the disparity range [0, disparities).
func NewBuilder(disparities int, opts ...Option) (*Builder, error) {
	if err := checkDisparities(disparities); err != nil {
		return nil, err
	}

	b := &Builder{disparities: disparities, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Disparities returns the size of the disparity range.
func (b *Builder) Disparities() int {
	return b.disparities
}

// Build computes the cost volume of left against right. Both fields must
// have the same size.
func (b *Builder) Build(left, right census.Field) (*Volume, error) {
	v, err := b.prepare(left, right)
	if err != nil {
		return nil, err
	}

	var t tile
	for y := 0; y < v.Height; y++ {
		t.row(v, left, right, y)
	}
	return v, nil
}

// BuildParallel is Build split into row bands processed concurrently.
// A cancelled context stops bands that have not started and returns
// ctx.Err(); the partial volume is discarded.
func (b *Builder) BuildParallel(ctx context.Context, left, right census.Field) (*Volume, error) {
	v, err := b.prepare(left, right)
	if err != nil {
		return nil, err
	}

	workers := b.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	n := max(v.Height/bandRows, 1)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}

		y0, y1 := i*bandRows, (i+1)*bandRows
		if i == n-1 {
			y1 = v.Height
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var t tile
			for y := y0; y < y1; y++ {
				t.row(v, left, right, y)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

func (b *Builder) prepare(left, right census.Field) (*Volume, error) {
	err := left.Validate()
	if err == nil {
		err = right.Validate()
	}
	if err == nil && (left.Width != right.Width || left.Height != right.Height) {
		err = fmt.Errorf("%w: left %dx%d, right %dx%d", ErrSizeMismatch,
			left.Width, left.Height, right.Width, right.Height)
	}
	if err != nil {
		b.logger.Debug("aggregate: fields rejected",
			zap.Int("width", left.Width),
			zap.Int("height", left.Height),
			zap.Int("disparities", b.disparities),
			zap.String("backend", Backend()),
			zap.Error(err))
		return nil, err
	}

	return NewVolume(left.Width, left.Height, b.disparities)
}

// tile is the scratch state for one row of patches.
type tile struct {
	layout Layout
	costs  [PatchSize * PatchSize]uint8
}

// row fills every disparity of volume row y. Patches are aligned to 16
// columns and 16 disparities, so the offset o between the left and the
// zero-disparity right group is a multiple of 16: o >= 16 needs no mask,
// o == 0 is an edge patch and o < 0 lies entirely left of the image.
func (t *tile) row(v *Volume, left, right census.Field, y int) {
	lrow, rrow := left.Row(y), right.Row(y)
	agg := selected().AggregatePatch

	for bx := 0; bx < v.Width; bx += PatchSize {
		cols := min(PatchSize, v.Width-bx)
		loadGroup(&t.layout.Left, lrow, bx)

		for db := 0; db < v.Disparities; db += PatchSize {
			o := bx - db
			if o < 0 {
				for d := 0; d < PatchSize; d++ {
					clear(v.Row(y, db+d)[bx : bx+cols])
				}
				continue
			}

			loadGroup(&t.layout.Right[0], rrow, o-PatchSize)
			loadGroup(&t.layout.Right[1], rrow, o)
			agg(&t.layout.Left, &t.layout.Right, t.costs[:], PatchSize, o == 0)

			for d := 0; d < PatchSize; d++ {
				copy(v.Row(y, db+d)[bx:bx+cols], t.costs[d*PatchSize:d*PatchSize+cols])
			}
		}
	}
}

// loadGroup copies row[x0:x0+16] into g, with zeros outside the row.
func loadGroup(g *LaneGroup, row []uint32, x0 int) {
	for i := range g {
		x := x0 + i
		if x >= 0 && x < len(row) {
			g[i] = row[x]
		} else {
			g[i] = 0
		}
	}
}
