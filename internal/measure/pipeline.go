package measure

import (
	"fmt"
	"image"
	"os"

	"github.com/cyclopcam/logs"

	"github.com/ironsheep/dimension-tools-mcp/internal/contour"
	"github.com/ironsheep/dimension-tools-mcp/internal/imaging"
	"github.com/ironsheep/dimension-tools-mcp/internal/report"
)

// ContourFinder extracts contours from a colour image.
type ContourFinder func(img image.Image) ([]contour.Contour, error)

// FindNative runs the pure Go edge detector and border follower.
func FindNative(img image.Image) ([]contour.Contour, error) {
	return contour.Find(imaging.EdgeMap(img)), nil
}

// FinderFor returns the ContourFinder for b. BackendOpenCV fails in builds
// without the gocv tag.
func FinderFor(b Backend) (ContourFinder, error) {
	switch b {
	case BackendNative, "":
		return FindNative, nil
	case BackendOpenCV:
		if !contour.OpenCVAvailable {
			return nil, contour.ErrOpenCVUnavailable
		}
		return contour.FindOpenCV, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", b)
	}
}

// Result is the outcome of one measurement run.
type Result struct {
	Calibration  Calibration     `json:"calibration"`
	Outer        OuterBoundary   `json:"outer_boundary"`
	ContourCount int             `json:"contour_count"`
	Circles      []CircleFeature `json:"circles"`
	Arcs         []ArcFeature    `json:"arcs"`
	Records      ResultSet       `json:"records"`
	TablePath    string          `json:"table_path,omitempty"`
	ImagePath    string          `json:"image_path,omitempty"`
}

// Measurer runs the measurement pipeline. It holds no per-run state, so one
// Measurer may serve concurrent calls.
type Measurer struct {
	log  logs.Log
	find ContourFinder
}

// NewMeasurer returns a Measurer using the given contour backend.
func NewMeasurer(log logs.Log, backend Backend) (*Measurer, error) {
	find, err := FinderFor(backend)
	if err != nil {
		return nil, err
	}
	return NewMeasurerWithFinder(log, find), nil
}

// NewMeasurerWithFinder returns a Measurer using a custom contour finder.
func NewMeasurerWithFinder(log logs.Log, find ContourFinder) *Measurer {
	return &Measurer{log: log, find: find}
}

// Measure runs one image through the pipeline.
//
// # Algorithm
//
//  1. Resolve the image locator and normalise it to an NRGBA copy at (0,0)
//  2. Extract contours with the configured backend
//  3. Calibrate against the largest contour, which also gives the outer boundary
//  4. Classify arcs, then circles, as two independent passes
//  5. Annotate a copy of the image and render the table in memory
//  6. Write the annotated image, then the table
//
// No file is written unless steps 1-5 succeed, and the annotated image is
// removed again if the table cannot be written.
//
// # Errors
//
// Locator failures surface as *imaging.InputTypeError,
// *imaging.InputNotFoundError or *imaging.DecodeError. Calibration failures
// surface as *NoContoursError or *DegenerateReferenceError, returned
// unwrapped so callers can type-switch on them directly. A non-positive
// reference dimension matches ErrInvalidReferenceDimension.
func (m *Measurer) Measure(req Request) (*Result, error) {
	src, err := imaging.Resolve(req.Image)
	if err != nil {
		return nil, err
	}
	if req.ImagePath != "" {
		if err := imaging.CheckImageFormat(req.ImagePath); err != nil {
			return nil, err
		}
	}
	img := imaging.CloneColor(src)

	contours, err := m.find(img)
	if err != nil {
		return nil, fmt.Errorf("failed to extract contours: %w", err)
	}
	m.log.Debugf("Extracted %d contours from %dx%d image", len(contours), img.Bounds().Dx(), img.Bounds().Dy())

	cal, err := Calibrate(contours, req.ReferenceDimension)
	if err != nil {
		return nil, err
	}
	if !cal.Calibrated {
		m.log.Warnf("No reference dimension given: scaling factor is 0 and every measurement will be 0")
	}

	outer := OuterBoundaryOf(contours, cal.ReferenceIndex)
	m.log.Infof("Outer circle: center=(%d, %d) radius=%.3f", outer.Circle.Center().X, outer.Circle.Center().Y, cal.Scale(outer.Circle.Radius))

	arcs := ClassifyArcs(contours, cal.Factor, req.Thresholds.MinArcLength)
	circles := ClassifyCircles(contours, cal.Factor, req.Thresholds.MinRadius, outer)
	for _, a := range arcs {
		m.log.Infof("Arc %s: length=%.3f", a.Label, a.Length)
	}
	for _, c := range circles {
		m.log.Infof("Circle %s: center=(%d, %d) radius=%.3f", c.Label, c.Center.X, c.Center.Y, c.Radius)
	}

	records := NewResultSet(circles, arcs)
	table, err := report.Encode(records.Rows())
	if err != nil {
		return nil, fmt.Errorf("failed to render table: %w", err)
	}

	style := imaging.DefaultStyle()
	if req.Style != nil {
		style = *req.Style
	}
	annotated := imaging.Annotate(img, arcMarks(arcs), circleMarks(circles), style)

	if req.ImagePath != "" {
		if err := imaging.SaveImage(annotated, req.ImagePath); err != nil {
			return nil, err
		}
		m.log.Infof("Annotated image saved to %s", req.ImagePath)
	}
	if req.TablePath != "" {
		if err := report.WriteFile(req.TablePath, table); err != nil {
			if req.ImagePath != "" {
				if rmErr := os.Remove(req.ImagePath); rmErr != nil {
					m.log.Warnf("Failed to remove %s after table write failure: %v", req.ImagePath, rmErr)
				}
			}
			return nil, err
		}
		m.log.Infof("Measurements saved to %s", req.TablePath)
	}
	m.log.Infof("Found %d circles and %d arcs", len(circles), len(arcs))

	return &Result{
		Calibration:  *cal,
		Outer:        outer,
		ContourCount: len(contours),
		Circles:      circles,
		Arcs:         arcs,
		Records:      records,
		TablePath:    req.TablePath,
		ImagePath:    req.ImagePath,
	}, nil
}

func arcMarks(arcs []ArcFeature) []imaging.ArcMark {
	marks := make([]imaging.ArcMark, len(arcs))
	for i, a := range arcs {
		marks[i] = imaging.ArcMark{
			Label:     a.Label,
			Points:    a.Contour.Points(),
			Anchor:    a.Centroid,
			HasAnchor: a.HasCentroid,
		}
	}
	return marks
}

func circleMarks(circles []CircleFeature) []imaging.CircleMark {
	marks := make([]imaging.CircleMark, len(circles))
	for i, c := range circles {
		marks[i] = imaging.CircleMark{
			Label:  c.Label,
			Center: c.Center,
			Radius: int(c.RadiusPixels),
		}
	}
	return marks
}
