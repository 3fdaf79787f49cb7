package measure

import (
	"encoding/json"
	"image"

	"github.com/ironsheep/dimension-tools-mcp/internal/contour"
	"github.com/ironsheep/dimension-tools-mcp/internal/report"
)

// Kind distinguishes the two feature variants.
type Kind string

const (
	KindCircle Kind = "circle"
	KindArc    Kind = "arc"
)

// Feature is either a CircleFeature or an ArcFeature.
type Feature interface {
	Kind() Kind
	// Index is the feature label, "C1".. for circles and "A1".. for arcs.
	Index() string
	row(serial int) report.Row
}

// CircleFeature is a contour measured by its minimal enclosing circle.
type CircleFeature struct {
	Label        string         `json:"index"`
	ContourIndex int            `json:"contour"`
	Radius       float64        `json:"radius"`
	Center       image.Point    `json:"center"`
	RadiusPixels float64        `json:"radius_pixels"`
	Circle       contour.Circle `json:"-"`
}

func (f CircleFeature) Kind() Kind    { return KindCircle }
func (f CircleFeature) Index() string { return f.Label }

func (f CircleFeature) row(serial int) report.Row {
	r := f.Radius
	return report.Row{Serial: serial, Index: f.Label, Radius: &r}
}

// ArcFeature is a contour measured by its open-curve arc length.
//
// HasCentroid is false for contours that enclose no area; such arcs are
// still reported but carry no label on the annotated image.
type ArcFeature struct {
	Label        string          `json:"index"`
	ContourIndex int             `json:"contour"`
	Length       float64         `json:"arc_length"`
	LengthPixels float64         `json:"arc_length_pixels"`
	Centroid     image.Point     `json:"centroid"`
	HasCentroid  bool            `json:"has_centroid"`
	Contour      contour.Contour `json:"-"`
}

func (f ArcFeature) Kind() Kind    { return KindArc }
func (f ArcFeature) Index() string { return f.Label }

func (f ArcFeature) row(serial int) report.Row {
	l := f.Length
	return report.Row{Serial: serial, Index: f.Label, ArcLength: &l}
}

// Record is a Feature with its 1-based serial number.
type Record struct {
	Serial  int
	Feature Feature
}

// Row converts the record to a table row.
func (r Record) Row() report.Row {
	return r.Feature.row(r.Serial)
}

// MarshalJSON flattens the record into its table row plus the feature kind.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		report.Row
	}{r.Feature.Kind(), r.Row()})
}

// ResultSet is every kept circle followed by every kept arc, numbered
// 1..N in that order.
type ResultSet []Record

// NewResultSet numbers circles then arcs.
func NewResultSet(circles []CircleFeature, arcs []ArcFeature) ResultSet {
	rs := make(ResultSet, 0, len(circles)+len(arcs))
	for _, c := range circles {
		rs = append(rs, Record{Serial: len(rs) + 1, Feature: c})
	}
	for _, a := range arcs {
		rs = append(rs, Record{Serial: len(rs) + 1, Feature: a})
	}
	return rs
}

// Rows converts the set to table rows.
func (rs ResultSet) Rows() []report.Row {
	rows := make([]report.Row, len(rs))
	for i, r := range rs {
		rows[i] = r.Row()
	}
	return rows
}
