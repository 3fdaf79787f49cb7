// Package contour extracts pixel contours from binary edge maps and measures them.
//
// A Contour is an ordered sequence of integer pixel coordinates describing one
// traced border of a connected set of edge pixels. Find produces every outer
// and hole border in raster discovery order without any parent/child
// relationships, and compresses straight runs so that only the points where
// the chain direction changes are kept.
//
// # Geometry
//
// The geometry helpers operate on a single contour in pixel space:
//
//   - Area: enclosed polygon area (absolute shoelace)
//   - ArcLength: curve length, open or closed
//   - MinEnclosingCircle: smallest circle containing every point (Welzl)
//   - Moments / Centroid: zeroth and first area moments via Green's theorem
//   - Largest: index of the first maximal-area contour in a set
//
// # Backends
//
// Find is pure Go. Builds with the gocv tag additionally provide FindOpenCV,
// which runs the same preprocessing and contour retrieval through OpenCV.
// Without the tag FindOpenCV returns ErrOpenCVUnavailable.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left pixel of the edge map,
// X increasing rightward and Y increasing downward.
package contour
