package contour

import (
	"image"
	"math"
	"math/rand"
)

// momentEpsilon is the smallest |M00| treated as a non-degenerate area.
const momentEpsilon = 1.1920929e-07

// Circle is a circle in pixel space.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Center returns the circle center truncated to integer pixel coordinates.
func (c Circle) Center() image.Point {
	return image.Point{X: int(c.X), Y: int(c.Y)}
}

// DistanceTo returns the Euclidean distance between the two centers.
func (c Circle) DistanceTo(o Circle) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// Moments holds the zeroth and first order area moments of a contour polygon.
type Moments struct {
	M00 float64 `json:"m00"`
	M10 float64 `json:"m10"`
	M01 float64 `json:"m01"`
}

// Area returns the absolute area enclosed by the contour treated as a closed
// polygon. Contours with fewer than three points have zero area.
func Area(c Contour) float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum float64
	prev := c[n-1]
	for _, p := range c {
		sum += float64(prev.X)*float64(p.Y) - float64(p.X)*float64(prev.Y)
		prev = p
	}
	return math.Abs(sum) / 2
}

// ArcLength returns the total length of the polyline through the contour
// points. When closed is true the segment from the last point back to the
// first is included.
func ArcLength(c Contour, closed bool) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var length float64
	for i := 1; i < n; i++ {
		length += segment(c[i-1], c[i])
	}
	if closed {
		length += segment(c[n-1], c[0])
	}
	return length
}

// Perimeter is the closed arc length of the contour.
func Perimeter(c Contour) float64 {
	return ArcLength(c, true)
}

func segment(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// ComputeMoments returns the area moments of the contour polygon using
// Green's theorem.
//
// The result is normalised so that M00 is non-negative regardless of the
// traversal direction. Polygons with |M00| below single precision epsilon
// report all moments as zero.
func ComputeMoments(c Contour) Moments {
	n := len(c)
	if n == 0 {
		return Moments{}
	}

	var a00, a10, a01 float64
	prev := c[n-1]
	for _, p := range c {
		xp, yp := float64(prev.X), float64(prev.Y)
		x, y := float64(p.X), float64(p.Y)
		cross := xp*y - x*yp
		a00 += cross
		a10 += cross * (xp + x)
		a01 += cross * (yp + y)
		prev = p
	}

	if math.Abs(a00) <= momentEpsilon {
		return Moments{}
	}
	m := Moments{M00: a00 / 2, M10: a10 / 6, M01: a01 / 6}
	if m.M00 < 0 {
		m.M00, m.M10, m.M01 = -m.M00, -m.M10, -m.M01
	}
	return m
}

// Centroid returns the area centroid of the contour truncated to integer
// pixel coordinates. ok is false when the contour encloses no area.
func Centroid(c Contour) (image.Point, bool) {
	m := ComputeMoments(c)
	if m.M00 == 0 {
		return image.Point{}, false
	}
	return image.Point{X: int(m.M10 / m.M00), Y: int(m.M01 / m.M00)}, true
}

// Largest returns the index of the contour with the greatest Area. Ties go to
// the earliest contour. ok is false for an empty set.
func Largest(contours []Contour) (index int, ok bool) {
	if len(contours) == 0 {
		return 0, false
	}
	best := Area(contours[0])
	for i := 1; i < len(contours); i++ {
		if a := Area(contours[i]); a > best {
			best = a
			index = i
		}
	}
	return index, true
}

type fpoint struct {
	x, y float64
}

// MinEnclosingCircle returns the smallest circle containing every contour point.
//
// # Algorithm
//
// Welzl's incremental algorithm over the points in a shuffled order. The
// shuffle uses a fixed seed so the result is reproducible, and keeps the
// expected running time linear even for traced contours whose natural order
// is the worst case for the incremental method.
//
// An empty contour yields the zero circle; a single point yields a circle of
// radius 0 at that point.
func MinEnclosingCircle(c Contour) Circle {
	n := len(c)
	if n == 0 {
		return Circle{}
	}

	pts := make([]fpoint, n)
	for i, p := range c {
		pts[i] = fpoint{float64(p.X), float64(p.Y)}
	}
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(n, func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

	circ := Circle{X: pts[0].x, Y: pts[0].y}
	for i := 1; i < n; i++ {
		if inside(circ, pts[i]) {
			continue
		}
		circ = Circle{X: pts[i].x, Y: pts[i].y}
		for j := 0; j < i; j++ {
			if inside(circ, pts[j]) {
				continue
			}
			circ = circleFrom2(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if !inside(circ, pts[k]) {
					circ = circleFrom3(pts[i], pts[j], pts[k])
				}
			}
		}
	}
	return circ
}

func inside(c Circle, p fpoint) bool {
	return math.Hypot(p.x-c.X, p.y-c.Y) <= c.Radius*(1+1e-12)+1e-9
}

func circleFrom2(a, b fpoint) Circle {
	cx := (a.x + b.x) / 2
	cy := (a.y + b.y) / 2
	return Circle{X: cx, Y: cy, Radius: math.Hypot(a.x-cx, a.y-cy)}
}

// circleFrom3 returns the circumcircle of a, b and c, falling back to the
// circle over the widest pair when the points are collinear.
func circleFrom3(a, b, c fpoint) Circle {
	bx, by := b.x-a.x, b.y-a.y
	cx, cy := c.x-a.x, c.y-a.y
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		best := circleFrom2(a, b)
		if alt := circleFrom2(a, c); alt.Radius > best.Radius {
			best = alt
		}
		if alt := circleFrom2(b, c); alt.Radius > best.Radius {
			best = alt
		}
		return best
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return Circle{X: ux + a.x, Y: uy + a.y, Radius: math.Hypot(ux, uy)}
}
