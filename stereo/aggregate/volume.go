package aggregate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDisparities reports a disparity range that is not a positive
	// multiple of 16.
	ErrInvalidDisparities = errors.New("aggregate: disparities must be a positive multiple of 16")

	// ErrSizeMismatch reports left and right fields of different size.
	ErrSizeMismatch = errors.New("aggregate: field size mismatch")
)

// Volume holds one matching cost per pixel and disparity. The cost of
// pixel (x, y) at disparity d is Costs[(y*Disparities+d)*Width+x].
type Volume struct {
	Costs       []uint8
	Width       int
	Height      int
	Disparities int
}

// NewVolume allocates a zeroed cost volume.
func NewVolume(width, height, disparities int) (*Volume, error) {
	if err := checkDisparities(disparities); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("aggregate: invalid volume size %dx%d", width, height)
	}

	return &Volume{
		Costs:       make([]uint8, width*height*disparities),
		Width:       width,
		Height:      height,
		Disparities: disparities,
	}, nil
}

// At returns the cost of pixel (x, y) at disparity d.
func (v *Volume) At(x, y, d int) uint8 {
	return v.Costs[(y*v.Disparities+d)*v.Width+x]
}

// Row returns the Width costs of row y at disparity d.
func (v *Volume) Row(y, d int) []uint8 {
	off := (y*v.Disparities + d) * v.Width
	return v.Costs[off : off+v.Width]
}

func checkDisparities(d int) error {
	if d <= 0 || d%PatchSize != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDisparities, d)
	}
	return nil
}
