package measure

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is.
var (
	ErrNoContours                = errors.New("no contours found")
	ErrDegenerateReference       = errors.New("degenerate reference contour")
	ErrInvalidReferenceDimension = errors.New("reference dimension must be a positive number")
)

// NoContoursError reports an edge map with nothing to select a reference from.
type NoContoursError struct{}

func (e *NoContoursError) Error() string {
	return "no contours found in edge map: nothing to use as a reference"
}

func (e *NoContoursError) Is(target error) bool {
	return target == ErrNoContours
}

// DegenerateReferenceError reports a reference contour whose closed
// perimeter is not positive, which makes the scaling factor undefined.
type DegenerateReferenceError struct {
	Index     int
	Perimeter float64
}

func (e *DegenerateReferenceError) Error() string {
	return fmt.Sprintf("reference contour %d has non-positive perimeter %g", e.Index, e.Perimeter)
}

func (e *DegenerateReferenceError) Is(target error) bool {
	return target == ErrDegenerateReference
}
