// Command censusinfo runs census extraction and Hamming cost aggregation on
// a stereo pair and prints the selected backend, timings and cost
// statistics.
//
// Usage:
//
//	censusinfo [flags] [left right]
//
// Without image arguments it synthesises a random pair whose right view is
// the left view shifted by -shift pixels.
//
// Examples:
//
//	censusinfo
//	censusinfo -size 1280x720 -shift 23 -disparities 64
//	censusinfo -width 640 left.png right.png
//	censusinfo -generic -workers 1
//	censusinfo -list
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-sgm/internal/arch/registry"
	"github.com/cwbudde/algo-sgm/internal/cpu"
	"github.com/cwbudde/algo-sgm/stereo/aggregate"
	"github.com/cwbudde/algo-sgm/stereo/census"
)

func main() {
	list := flag.Bool("list", false, "list registered backends and exit")
	generic := flag.Bool("generic", false, "force the generic (pure Go) backend")
	size := flag.String("size", "640x480", "synthetic pair size WxH")
	shift := flag.Int("shift", 17, "synthetic pair disparity in pixels")
	seed := flag.Int64("seed", 1, "synthetic pair seed")
	width := flag.Int("width", 0, "resize loaded images to this width (0 keeps size)")
	disparities := flag.Int("disparities", 64, "disparity range, a multiple of 16")
	workers := flag.Int("workers", 0, "worker goroutines (0 uses GOMAXPROCS)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: censusinfo [flags] [left right]\n\n")
		fmt.Fprintf(os.Stderr, "Runs census extraction and cost aggregation on a stereo pair.\n")
		fmt.Fprintf(os.Stderr, "Without image arguments a shifted random pair is synthesised.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  censusinfo -size 1280x720 -shift 23\n")
		fmt.Fprintf(os.Stderr, "  censusinfo -width 640 left.png right.pgm\n")
		fmt.Fprintf(os.Stderr, "  censusinfo -list\n")
	}
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *generic {
		cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true, Architecture: runtime.GOARCH})
	}

	if *list {
		printBackends(cpu.DetectFeatures())
		return
	}

	var p pair
	switch flag.NArg() {
	case 0:
		w, h, err := parseSize(*size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		p = synthesizePair(w, h, *shift, *seed)
	case 2:
		p, err = loadPair(flag.Arg(0), flag.Arg(1), *width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	logger.Debug("pair ready",
		zap.String("source", p.source),
		zap.Int("width", p.left.Rect.Dx()),
		zap.Int("height", p.left.Rect.Dy()))

	r, err := run(context.Background(), p, *disparities, *workers, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printReport(p, r)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// report collects the results of one run.
type report struct {
	backend          string
	aggregateBackend string
	field       census.Field
	disparities int

	censusTime    time.Duration
	aggregateTime time.Duration

	stats costStats
	truth float64 // mean cost at the known shift, -1 if unknown
}

func run(ctx context.Context, p pair, disparities, workers int, logger *zap.Logger) (report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	opts := []census.Option{census.WithLogger(logger), census.WithWorkers(workers)}
	lt := census.NewTransform(opts...)
	rt := census.NewTransform(opts...)

	start := time.Now()
	left, err := lt.ExecuteGray(p.left)
	if err != nil {
		return report{}, fmt.Errorf("left census: %w", err)
	}
	right, err := rt.ExecuteGray(p.right)
	if err != nil {
		return report{}, fmt.Errorf("right census: %w", err)
	}
	censusTime := time.Since(start)

	b, err := aggregate.NewBuilder(disparities, aggregate.WithLogger(logger), aggregate.WithWorkers(workers))
	if err != nil {
		return report{}, err
	}

	start = time.Now()
	v, err := b.BuildParallel(ctx, left, right)
	if err != nil {
		return report{}, fmt.Errorf("cost volume: %w", err)
	}
	aggregateTime := time.Since(start)

	r := report{
		backend:          census.Backend(),
		aggregateBackend: aggregate.Backend(),
		field:            left,
		disparities:      disparities,
		censusTime:       censusTime,
		aggregateTime:    aggregateTime,
		stats:            volumeStats(v),
		truth:            -1,
	}
	if p.shift >= 0 && p.shift < disparities {
		r.truth = meanAtDisparity(v, p.shift)
	}
	return r, nil
}

func printBackends(features cpu.Features) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tLEVEL\tPRIORITY\tSUPPORTED\tOPS\tTUNING\n")
	for _, e := range registry.Global.ListEntries() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\t%s\n",
			e.Name, e.SIMDLevel, e.Priority, cpu.Supports(features, e.SIMDLevel), entryOps(&e), e.Tune)
	}
	w.Flush()

	fmt.Printf("\nselected: census %s, aggregate %s (%s)\n", census.Backend(), aggregate.Backend(), features.Architecture)
}

// entryOps lists the operations a registry entry provides.
func entryOps(e *registry.OpEntry) string {
	switch {
	case registry.HasExtract(e) && registry.HasAggregatePatch(e):
		return "census,aggregate"
	case registry.HasExtract(e):
		return "census"
	case registry.HasAggregatePatch(e):
		return "aggregate"
	}
	return "-"
}

func printReport(p pair, r report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	iw, ih := p.left.Rect.Dx(), p.left.Rect.Dy()
	pixels := float64(iw * ih)

	fmt.Fprintf(w, "source\t%s\n", p.source)
	fmt.Fprintf(w, "backend\t%s (aggregate %s)\n", r.backend, r.aggregateBackend)
	if e := registry.Global.Find(r.backend); e != nil {
		fmt.Fprintf(w, "tuning\t%s\n", e.Tune)
	}
	fmt.Fprintf(w, "image\t%dx%d\n", iw, ih)
	fmt.Fprintf(w, "field\t%dx%d\n", r.field.Width, r.field.Height)
	fmt.Fprintf(w, "disparities\t%d\n", r.disparities)
	fmt.Fprintf(w, "census\t%v (%s MPix/s, both views)\n", r.censusTime, rate(2*pixels, r.censusTime))
	fmt.Fprintf(w, "aggregate\t%v (%s MCost/s)\n", r.aggregateTime,
		rate(float64(r.field.Width*r.field.Height*r.disparities), r.aggregateTime))
	fmt.Fprintf(w, "cost mean\t%.3f\n", r.stats.mean)
	fmt.Fprintf(w, "cost stddev\t%.3f\n", r.stats.stddev)
	fmt.Fprintf(w, "zero costs\t%.2f%%\n", 100*r.stats.zeroFraction)
	if r.truth >= 0 {
		fmt.Fprintf(w, "cost at d=%d\t%.3f\n", p.shift, r.truth)
	}
	w.Flush()
}

// rate formats n per second in millions. A run too short for the clock to
// measure has no rate.
func rate(n float64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", n/d.Seconds()/1e6)
}
