package main

import (
	"fmt"
	"image"
	"math/rand"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/lmittmann/ppm" // register PGM/PPM decoding
)

// pair is a rectified stereo pair of grayscale views.
type pair struct {
	left, right *image.Gray
	source      string
	shift       int // known disparity, -1 for loaded images
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}

// synthesizePair returns seeded noise as the left view and the same noise
// moved shift pixels to the left as the right view, so left pixel x matches
// right pixel x-shift. Columns without a partner are filled with fresh noise.
func synthesizePair(width, height, shift int, seed int64) pair {
	rng := rand.New(rand.NewSource(seed))
	r := image.Rect(0, 0, width, height)
	left, right := image.NewGray(r), image.NewGray(r)

	for i := range left.Pix {
		left.Pix[i] = byte(rng.Intn(256))
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := byte(rng.Intn(256))
			if x+shift < width {
				v = left.Pix[y*left.Stride+x+shift]
			}
			right.Pix[y*right.Stride+x] = v
		}
	}

	return pair{
		left:   left,
		right:  right,
		source: fmt.Sprintf("synthetic %dx%d shift %d seed %d", width, height, shift, seed),
		shift:  shift,
	}
}

func loadPair(leftPath, rightPath string, width int) (pair, error) {
	left, err := loadGray(leftPath, width)
	if err != nil {
		return pair{}, err
	}
	right, err := loadGray(rightPath, width)
	if err != nil {
		return pair{}, err
	}
	if left.Rect.Size() != right.Rect.Size() {
		return pair{}, fmt.Errorf("view sizes differ: %v vs %v", left.Rect.Size(), right.Rect.Size())
	}

	return pair{
		left:   left,
		right:  right,
		source: leftPath + " / " + rightPath,
		shift:  -1,
	}, nil
}

// loadGray decodes path (any registered format) and converts it to 8-bit
// luma, optionally resizing to width with the aspect ratio kept.
func loadGray(path string, width int) (*image.Gray, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if width > 0 && width != img.Bounds().Dx() {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	return toGray(imaging.Grayscale(img)), nil
}

// toGray copies the red channel of a grayscale NRGBA image.
func toGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = row[4*x]
		}
	}
	return dst
}
