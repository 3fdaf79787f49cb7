package measure

import (
	"fmt"
	"strings"

	"github.com/ironsheep/dimension-tools-mcp/internal/imaging"
)

// Thresholds are the minimum real-world sizes a feature must reach to be
// reported. Negative values disable the corresponding filter.
type Thresholds struct {
	MinRadius    float64 `json:"min_radius"`
	MinArcLength float64 `json:"min_arc_length"`
}

// DefaultThresholds returns a minimum radius of 1 and a minimum arc length
// of 2, in the units of the reference dimension.
func DefaultThresholds() Thresholds {
	return Thresholds{MinRadius: 1, MinArcLength: 2}
}

// Backend selects the contour extraction implementation.
type Backend string

const (
	// BackendNative uses the pure Go preprocessor and border follower.
	BackendNative Backend = "native"
	// BackendOpenCV uses gocv; only available in builds with the gocv tag.
	BackendOpenCV Backend = "opencv"
)

// ParseBackend maps a case-insensitive name to a Backend. The empty string
// selects BackendNative.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(BackendNative):
		return BackendNative, nil
	case string(BackendOpenCV), "gocv":
		return BackendOpenCV, nil
	default:
		return "", fmt.Errorf("unknown backend %q: expected native or opencv", name)
	}
}

// Request describes one measurement run.
type Request struct {
	// Image is a file path (string), an encoded buffer ([]byte) or a decoded
	// image.Image.
	Image interface{}

	// ReferenceDimension is the real-world perimeter of the largest object
	// in the image. Nil means no reference: every scaled value becomes 0.
	ReferenceDimension *float64

	// TablePath and ImagePath are the output files. An empty path skips
	// that output.
	TablePath string
	ImagePath string

	Thresholds Thresholds

	// Style overrides the annotation colours; nil uses imaging.DefaultStyle.
	Style *imaging.Style
}
