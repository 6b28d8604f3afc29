package census

import "fmt"

// Field is a row-major descriptor field.
type Field struct {
	Data   []uint32
	Width  int
	Height int
	Pitch  int
}

// NewField allocates a zeroed width x height field with Pitch == Width.
func NewField(width, height int) Field {
	return Field{
		Data:   make([]uint32, width*height),
		Width:  width,
		Height: height,
		Pitch:  width,
	}
}

// At returns the descriptor at (x, y).
func (f Field) At(x, y int) uint32 {
	return f.Data[y*f.Pitch+x]
}

// Row returns the Width descriptors of row y.
func (f Field) Row(y int) []uint32 {
	return f.Data[y*f.Pitch : y*f.Pitch+f.Width]
}

// Validate reports whether Data can hold the declared geometry.
func (f Field) Validate() error {
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("%w: field %dx%d", ErrShortBuffer, f.Width, f.Height)
	}
	if f.Pitch < f.Width {
		return fmt.Errorf("%w: field pitch %d < width %d", ErrInvalidPitch, f.Pitch, f.Width)
	}
	if f.Height > 0 {
		if need := (f.Height-1)*f.Pitch + f.Width; len(f.Data) < need {
			return fmt.Errorf("%w: field has %d descriptors, need %d", ErrShortBuffer, len(f.Data), need)
		}
	}
	return nil
}
