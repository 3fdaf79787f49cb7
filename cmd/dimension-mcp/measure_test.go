package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/dimension-tools-mcp/internal/measure"
)

func TestPrintSummary(t *testing.T) {
	res := &measure.Result{
		ContourCount: 3,
		Calibration:  measure.Calibration{Factor: 0.5},
		Circles:      []measure.CircleFeature{{Label: "C1", Radius: 4}},
		Arcs:         []measure.ArcFeature{{Label: "A1", Length: 9.5}},
	}
	res.Records = measure.NewResultSet(res.Circles, res.Arcs)

	var buf bytes.Buffer
	printSummary(&buf, res)
	out := buf.String()

	require.Contains(t, out, "Scaling factor: 0.5")
	require.Contains(t, out, "Circles: 1  Arcs: 1")
	require.Regexp(t, `1\s+C1\s+4`, out)
	require.Regexp(t, `2\s+A1\s+9.5`, out)
}

func TestRunMeasure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "part.png")
	dc := gg.NewContext(200, 200)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(100, 100, 70)
	dc.Fill()
	require.NoError(t, dc.SavePNG(input))

	table := filepath.Join(dir, "out.csv")
	annotated := filepath.Join(dir, "out.png")
	code := runMeasure([]string{"dimension-mcp", "measure", "-i", input, "-r", "440", "-t", table, "-o", annotated})
	require.Equal(t, 0, code)

	data, err := os.ReadFile(table)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "S.No.,Index,"))
	_, err = os.Stat(annotated)
	require.NoError(t, err)
}

func TestRunMeasure_Failures(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "out.csv")

	require.Equal(t, 1, runMeasure([]string{"dimension-mcp", "measure", "-i", filepath.Join(dir, "missing.png"), "-t", table, "-o", filepath.Join(dir, "o.png")}))
	require.Equal(t, 1, runMeasure([]string{"dimension-mcp", "measure", "-i", "x.png"}), "missing required flags")
	require.Equal(t, 1, runMeasure([]string{"dimension-mcp", "measure", "-i", "x.png", "-r", "abc", "-t", table, "-o", "o.png"}))

	_, err := os.Stat(table)
	require.True(t, os.IsNotExist(err))
}
