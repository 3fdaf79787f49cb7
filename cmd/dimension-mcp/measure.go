package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/akamensky/argparse"

	"github.com/ironsheep/dimension-tools-mcp/internal/config"
	"github.com/ironsheep/dimension-tools-mcp/internal/logging"
	"github.com/ironsheep/dimension-tools-mcp/internal/measure"
)

// runMeasure implements the measure subcommand and returns the exit code.
func runMeasure(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	parser := argparse.NewParser("dimension-mcp", "Measure radii and arc lengths in a photographed part")
	cmd := parser.NewCommand("measure", "Measure one image and write an annotated image plus a CSV table")
	input := cmd.String("i", "input", &argparse.Options{Required: true, Help: "Image to measure"})
	reference := cmd.String("r", "reference", &argparse.Options{Help: "Real-world perimeter of the largest object (omit for unscaled output)", Default: ""})
	table := cmd.String("t", "table", &argparse.Options{Required: true, Help: "Output CSV table"})
	output := cmd.String("o", "output", &argparse.Options{Required: true, Help: "Output annotated image (format from extension)"})
	minRadius := cmd.Float("", "min-radius", &argparse.Options{Help: "Minimum circle radius in real-world units", Default: cfg.Thresholds.MinRadius})
	minArc := cmd.Float("", "min-arc-length", &argparse.Options{Help: "Minimum arc length in real-world units", Default: cfg.Thresholds.MinArcLength})
	backendName := cmd.String("", "backend", &argparse.Options{Help: "Contour backend: native or opencv", Default: string(cfg.Backend)})
	verbose := cmd.Flag("", "verbose", &argparse.Options{Help: "Debug logging", Default: false})
	if err := parser.Parse(args); err != nil {
		fmt.Print(parser.Usage(err))
		return 1
	}

	level := cfg.LogLevel
	if *verbose {
		level = logging.LevelDebug
	}
	log := logging.New(level, os.Stderr)
	defer log.Close()

	var refDim *float64
	if *reference != "" {
		v, err := strconv.ParseFloat(*reference, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid reference dimension %q\n", *reference)
			return 1
		}
		refDim = &v
	}

	backend, err := measure.ParseBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	m, err := measure.NewMeasurer(log, backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend %s unavailable: %v\n", backend, err)
		return 1
	}

	style := cfg.Style
	res, err := m.Measure(measure.Request{
		Image:              *input,
		ReferenceDimension: refDim,
		TablePath:          *table,
		ImagePath:          *output,
		Thresholds:         measure.Thresholds{MinRadius: *minRadius, MinArcLength: *minArc},
		Style:              &style,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Measurement failed: %v\n", err)
		return 1
	}

	printSummary(os.Stdout, res)
	return 0
}

func printSummary(w io.Writer, res *measure.Result) {
	fmt.Fprintf(w, "Contours: %d  Scaling factor: %g\n", res.ContourCount, res.Calibration.Factor)
	fmt.Fprintf(w, "Circles: %d  Arcs: %d\n\n", len(res.Circles), len(res.Arcs))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "S.No.\tIndex\tRadius\tArc length")
	for _, row := range res.Records.Rows() {
		f := row.Fields()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f[0], f[1], f[2], f[3])
	}
	tw.Flush()
}
