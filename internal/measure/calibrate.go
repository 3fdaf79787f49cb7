package measure

import (
	"fmt"
	"math"

	"github.com/ironsheep/dimension-tools-mcp/internal/contour"
)

// Calibration is the pixel to real-world conversion derived from the
// reference contour.
type Calibration struct {
	// Factor is real-world units per pixel; 0 when uncalibrated.
	Factor float64 `json:"factor"`

	// ReferenceIndex is the position of the largest-area contour. It is also
	// the contour whose enclosing circle forms the outer boundary.
	ReferenceIndex int `json:"reference_index"`

	// ReferencePerimeter is the closed perimeter of the reference contour in pixels.
	ReferencePerimeter float64 `json:"reference_perimeter"`

	ReferenceDimension float64 `json:"reference_dimension,omitempty"`

	// Calibrated is false when no reference dimension was supplied.
	Calibrated bool `json:"calibrated"`
}

// Scale converts a pixel length to real-world units.
func (c *Calibration) Scale(pixels float64) float64 {
	return pixels * c.Factor
}

// Calibrate selects the reference contour and computes the scaling factor.
//
// The reference is the contour with the largest area, the first one winning
// ties. With a nil reference the factor is 0 and Calibrated is false; this
// is not an error, although every scaled measurement collapses to 0.
//
// # Errors
//
//   - *NoContoursError when contours is empty
//   - ErrInvalidReferenceDimension (wrapped) when reference is not a positive
//     finite number
//   - *DegenerateReferenceError when the reference perimeter is <= 0
func Calibrate(contours []contour.Contour, reference *float64) (*Calibration, error) {
	index, ok := contour.Largest(contours)
	if !ok {
		return nil, &NoContoursError{}
	}

	cal := &Calibration{
		ReferenceIndex:     index,
		ReferencePerimeter: contour.Perimeter(contours[index]),
	}
	if reference == nil {
		return cal, nil
	}

	dim := *reference
	if !(dim > 0) || math.IsInf(dim, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidReferenceDimension, dim)
	}
	if cal.ReferencePerimeter <= 0 {
		return nil, &DegenerateReferenceError{Index: index, Perimeter: cal.ReferencePerimeter}
	}

	cal.ReferenceDimension = dim
	cal.Factor = dim / cal.ReferencePerimeter
	cal.Calibrated = true
	return cal, nil
}
