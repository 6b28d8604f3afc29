package main

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sgm/stereo/aggregate"
)

// maxCost is the largest Hamming distance of two 31-bit descriptors.
const maxCost = 31

// costStats summarises a cost volume.
type costStats struct {
	hist         [maxCost + 1]float64
	mean         float64
	stddev       float64
	zeroFraction float64
}

// volumeStats computes the cost histogram of v and derives its moments
// with vector arithmetic over the histogram bins.
func volumeStats(v *aggregate.Volume) costStats {
	var s costStats
	for _, c := range v.Costs {
		s.hist[c]++
	}
	return s.finish(float64(len(v.Costs)))
}

func (s costStats) finish(n float64) costStats {
	if n == 0 {
		return s
	}

	bins := make([]float64, len(s.hist))
	for i := range bins {
		bins[i] = float64(i)
	}

	p := make([]float64, len(s.hist))
	vecmath.ScaleBlock(p, s.hist[:], 1/n)

	weighted := make([]float64, len(s.hist))
	vecmath.MulBlock(weighted, p, bins)
	s.mean = sum(weighted)

	vecmath.MulBlockInPlace(weighted, bins)
	s.stddev = math.Sqrt(max(sum(weighted)-s.mean*s.mean, 0))

	s.zeroFraction = p[0]
	return s
}

// meanAtDisparity returns the mean cost of pixels whose match at d lies
// inside the image.
func meanAtDisparity(v *aggregate.Volume, d int) float64 {
	var total, n float64
	for y := 0; y < v.Height; y++ {
		for _, c := range v.Row(y, d)[min(d, v.Width):] {
			total += float64(c)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / n
}

func sum(x []float64) float64 {
	var t float64
	for _, v := range x {
		t += v
	}
	return t
}
