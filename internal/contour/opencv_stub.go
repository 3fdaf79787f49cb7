//go:build !gocv
// +build !gocv

package contour

import (
	"errors"
	"image"
)

// ErrOpenCVUnavailable is returned by FindOpenCV in builds without the gocv tag.
var ErrOpenCVUnavailable = errors.New("gocv build tag is not enabled")

// OpenCVAvailable reports whether FindOpenCV is backed by OpenCV in this build.
const OpenCVAvailable = false

// FindOpenCV returns ErrOpenCVUnavailable when built without the gocv tag.
func FindOpenCV(img image.Image) ([]Contour, error) {
	_ = img
	return nil, ErrOpenCVUnavailable
}
