//go:build gocv
// +build gocv

package contour

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrOpenCVUnavailable is returned by FindOpenCV in builds without the gocv tag.
var ErrOpenCVUnavailable = errors.New("gocv build tag is not enabled")

// OpenCVAvailable reports whether FindOpenCV is backed by OpenCV in this build.
const OpenCVAvailable = true

// FindOpenCV runs grayscale conversion, a 5x5 Gaussian blur, Canny (100/200)
// and list-mode contour retrieval with simple chain approximation through
// OpenCV, and returns the contours in OpenCV's discovery order.
func FindOpenCV(img image.Image) ([]Contour, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, 100, 200)

	found := gocv.FindContours(edges, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		contours = append(contours, Contour(found.At(i).ToPoints()))
	}
	return contours, nil
}
