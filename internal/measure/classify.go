package measure

import (
	"fmt"

	"github.com/ironsheep/dimension-tools-mcp/internal/contour"
)

// OuterBoundary is the enclosing circle of the largest contour. Circle
// features must lie entirely inside it.
type OuterBoundary struct {
	ContourIndex int            `json:"contour"`
	Circle       contour.Circle `json:"circle"`
}

// OuterBoundaryOf returns the boundary formed by contours[index], normally
// Calibration.ReferenceIndex.
func OuterBoundaryOf(contours []contour.Contour, index int) OuterBoundary {
	return OuterBoundary{
		ContourIndex: index,
		Circle:       contour.MinEnclosingCircle(contours[index]),
	}
}

// Contains reports whether c lies fully inside the boundary, in pixels.
// A circle touching the boundary from inside counts as contained.
func (o OuterBoundary) Contains(c contour.Circle) bool {
	return o.Circle.DistanceTo(c)+c.Radius <= o.Circle.Radius
}

// ClassifyArcs scores every contour by its open arc length and keeps those
// whose scaled length is at least minArcLength. Kept arcs are labelled
// A1, A2, ... in contour order.
func ClassifyArcs(contours []contour.Contour, factor, minArcLength float64) []ArcFeature {
	arcs := []ArcFeature{}
	for i, c := range contours {
		pixels := contour.ArcLength(c, false)
		length := pixels * factor
		if length < minArcLength {
			continue
		}
		centroid, ok := contour.Centroid(c)
		arcs = append(arcs, ArcFeature{
			Label:        fmt.Sprintf("A%d", len(arcs)+1),
			ContourIndex: i,
			Length:       length,
			LengthPixels: pixels,
			Centroid:     centroid,
			HasCentroid:  ok,
			Contour:      c,
		})
	}
	return arcs
}

// ClassifyCircles scores every contour by its minimal enclosing circle and
// keeps those whose scaled radius is at least minRadius and which lie
// inside outer. Kept circles are labelled C1, C2, ... in contour order.
func ClassifyCircles(contours []contour.Contour, factor, minRadius float64, outer OuterBoundary) []CircleFeature {
	circles := []CircleFeature{}
	for i, c := range contours {
		circ := contour.MinEnclosingCircle(c)
		radius := circ.Radius * factor
		if radius < minRadius || !outer.Contains(circ) {
			continue
		}
		circles = append(circles, CircleFeature{
			Label:        fmt.Sprintf("C%d", len(circles)+1),
			ContourIndex: i,
			Radius:       radius,
			Center:       circ.Center(),
			RadiusPixels: circ.Radius,
			Circle:       circ,
		})
	}
	return circles
}
