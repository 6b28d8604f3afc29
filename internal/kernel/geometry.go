package kernel

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sgm/internal/simd"
)

// AutoPitch selects the output width as destination pitch.
const AutoPitch = -1

var (
	// ErrInputTooSmall reports an image smaller than one census patch.
	ErrInputTooSmall = errors.New("census: input smaller than minimum patch")

	// ErrInvalidPitch reports a row pitch shorter than its row.
	ErrInvalidPitch = errors.New("census: invalid pitch")

	// ErrShortBuffer reports a buffer too small for the declared geometry.
	ErrShortBuffer = errors.New("census: buffer too small")
)

// OutputSize returns the descriptor field size for a width x height image.
func OutputSize(width, height int) (int, int) {
	return width - (simd.FeatureWidth - 1), height - (simd.FeatureHeight - 1)
}

// CheckGeometry validates an extraction call and resolves AutoPitch.
// hPatch and vPatch are the minimum input dimensions of the calling backend.
func CheckGeometry(srcLen, width, height, srcPitch, dstLen, dstPitch, hPatch, vPatch int) (int, error) {
	if width < hPatch || height < vPatch {
		return 0, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrInputTooSmall, width, height, hPatch, vPatch)
	}

	outW, outH := OutputSize(width, height)
	if dstPitch == AutoPitch {
		dstPitch = outW
	}

	if srcPitch < width {
		return 0, fmt.Errorf("%w: source pitch %d < width %d", ErrInvalidPitch, srcPitch, width)
	}
	if dstPitch < outW {
		return 0, fmt.Errorf("%w: destination pitch %d < output width %d", ErrInvalidPitch, dstPitch, outW)
	}

	if !fits(srcLen, height, srcPitch, width) {
		return 0, fmt.Errorf("%w: source has %d bytes for %d rows of pitch %d", ErrShortBuffer, srcLen, height, srcPitch)
	}
	if !fits(dstLen, outH, dstPitch, outW) {
		return 0, fmt.Errorf("%w: destination has %d descriptors for %d rows of pitch %d", ErrShortBuffer, dstLen, outH, dstPitch)
	}

	return dstPitch, nil
}

// fits reports whether rows rows, pitch apart and width long, fit in n
// elements, i.e. (rows-1)*pitch+width <= n, without overflowing.
// rows and width must be positive and pitch >= width.
func fits(n, rows, pitch, width int) bool {
	if n < width {
		return false
	}
	return rows-1 <= (n-width)/pitch
}

// span returns the start and extent of the run beginning at pos. When fewer
// than minSize outputs remain, the start is rewound so the run still spans
// minSize outputs; the overlap is recomputed with identical results.
func span(pos, size, total, minSize int) (int, int) {
	n := min(size, total-pos)
	if n < minSize {
		return total - minSize, minSize
	}
	return pos, n
}
