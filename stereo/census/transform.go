package census

import (
	"context"
	"image"

	"go.uber.org/zap"
)

// Option configures a Transform.
type Option func(*Transform)

// WithLogger sets the logger for rejected inputs. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transform) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithWorkers splits each frame into row bands processed by n goroutines.
// n <= 1 runs on the calling goroutine.
func WithWorkers(n int) Option {
	return func(t *Transform) {
		t.workers = n
	}
}

// Transform computes descriptor fields frame by frame and keeps the last
// result. Its buffer is reused while frame sizes do not grow.
//
// A Transform is not safe for concurrent use.
type Transform struct {
	logger  *zap.Logger
	workers int

	buf []uint32
	out Field
}

// NewTransform returns a Transform configured by opts.
func NewTransform(opts ...Option) *Transform {
	t := &Transform{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Execute computes the descriptor field of src. The returned field aliases
// the Transform's buffer and is valid until the next call. On error the
// previous output is kept.
func (t *Transform) Execute(src []byte, width, height, pitch int) (Field, error) {
	outW, outH := OutputSize(width, height)

	var dst []uint32
	err := checkSource(src, width, height, pitch)
	if err == nil {
		if n := outW * outH; cap(t.buf) >= n {
			dst = t.buf[:n]
		} else {
			dst = make([]uint32, n)
		}

		if t.workers > 1 {
			err = ExtractParallel(context.Background(), src, width, height, pitch, dst, AutoPitch, t.workers)
		} else {
			err = Extract(src, width, height, pitch, dst, AutoPitch)
		}
	}
	if err != nil {
		t.logger.Debug("census: frame rejected",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Int("pitch", pitch),
			zap.String("backend", Backend()),
			zap.Error(err))
		return Field{}, err
	}

	t.buf = dst
	t.out = Field{Data: dst, Width: outW, Height: outH, Pitch: outW}
	return t.out, nil
}

// ExecuteGray computes the descriptor field of img.
func (t *Transform) ExecuteGray(img *image.Gray) (Field, error) {
	r := img.Bounds()
	var pix []byte
	if !r.Empty() {
		pix = img.Pix[img.PixOffset(r.Min.X, r.Min.Y):]
	}
	return t.Execute(pix, r.Dx(), r.Dy(), img.Stride)
}

// Output returns the field of the last successful call, or the zero Field.
func (t *Transform) Output() Field {
	return t.out
}
