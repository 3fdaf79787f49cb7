// Package report serializes measurement records to tabular text.
//
// The table layout matches the one measurement tools have always produced:
//
//	S.No., Index, ⌀ / 2(mm), r.θ(mm)
//	1,C1,2.5,
//	2,A1,,7.85
//
// Circle rows leave the arc-length column blank and arc rows leave the radius
// column blank.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Header is the first row of every table.
var Header = []string{"S.No.", "Index", "⌀ / 2(mm)", "r.θ(mm)"}

// Row is one feature line of the table. Exactly one of Radius and ArcLength
// is normally set.
type Row struct {
	Serial    int      `json:"serial"`
	Index     string   `json:"index"`
	Radius    *float64 `json:"radius,omitempty"`
	ArcLength *float64 `json:"arc_length,omitempty"`
}

// Fields returns the row as table cells.
func (r Row) Fields() []string {
	return []string{
		strconv.Itoa(r.Serial),
		r.Index,
		formatOptional(r.Radius),
		formatOptional(r.ArcLength),
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteCSV writes the header followed by rows to w.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.Serial, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// Encode renders rows as CSV in memory.
func Encode(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes an encoded table to path, creating parent directories.
func WriteFile(path string, table []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, table, 0o644); err != nil {
		return fmt.Errorf("failed to write table %s: %w", path, err)
	}
	return nil
}
