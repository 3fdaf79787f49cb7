package contour

import "image"

// Contour is an ordered sequence of pixel coordinates forming one traced border.
type Contour []image.Point

// Points returns the contour as a plain point slice.
func (c Contour) Points() []image.Point {
	return []image.Point(c)
}

// Neighbour offsets in counterclockwise order as seen on screen (Y down),
// starting east.
var directions = [8]image.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: -1},  // NE
	{X: 0, Y: -1},  // N
	{X: -1, Y: -1}, // NW
	{X: -1, Y: 0},  // W
	{X: -1, Y: 1},  // SW
	{X: 0, Y: 1},   // S
	{X: 1, Y: 1},   // SE
}

const (
	dirEast = 0
	dirWest = 4
)

// Find traces every border in a binary edge map.
//
// Any non-zero pixel of edges is foreground. Pixels outside the image are
// background, so foreground touching the image border is still enclosed.
//
// # Algorithm
//
// Suzuki-Abe border following:
//
//  1. Raster scan the image. A foreground pixel with a background pixel to its
//     left starts an outer border; a foreground pixel with a background pixel
//     to its right (and not already claimed by that side) starts a hole border.
//  2. Each border is followed counterclockwise with 8-connectivity, labelling
//     visited pixels with the border number so that the scan does not start
//     the same border twice.
//  3. The traced chain is compressed: points in the middle of a horizontal,
//     vertical or diagonal run are dropped, keeping run end points.
//
// Every border becomes one Contour, in the order its starting pixel was met
// by the scan. No hierarchy is recorded. An isolated pixel yields a one-point
// contour.
func Find(edges *image.Gray) []Contour {
	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Labels with a one pixel zero frame around the image.
	pw := width + 2
	ph := height + 2
	labels := make([]int32, pw*ph)
	for y := 0; y < height; y++ {
		row := edges.Pix[edges.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			if row[x] != 0 {
				labels[(y+1)*pw+x+1] = 1
			}
		}
	}

	var offsets [8]int
	for d, dir := range directions {
		offsets[d] = dir.Y*pw + dir.X
	}

	contours := make([]Contour, 0)
	nbd := int32(1)
	for y := 1; y < ph-1; y++ {
		for x := 1; x < pw-1; x++ {
			i := y*pw + x
			v := labels[i]
			if v == 0 {
				continue
			}

			var from int
			switch {
			case v == 1 && labels[i-1] == 0:
				from = dirWest
			case v >= 1 && labels[i+1] == 0:
				from = dirEast
			default:
				continue
			}

			nbd++
			chain := follow(labels, &offsets, pw, x, y, from, nbd)
			for k := range chain {
				chain[k] = chain[k].Sub(image.Point{X: 1, Y: 1})
			}
			contours = append(contours, compress(chain))
		}
	}

	return contours
}

// follow traces one border starting at (x0,y0). from is the direction of the
// background pixel that triggered the start. Visited pixels are relabelled
// with nbd (or -nbd where the pixel to the east is background).
func follow(labels []int32, offsets *[8]int, pw, x0, y0, from int, nbd int32) []image.Point {
	start := y0*pw + x0

	// Clockwise search from the background pixel for the first foreground
	// neighbour: the last pixel of the border.
	first := -1
	for k := 0; k < 8; k++ {
		d := (from - k + 8) % 8
		if labels[start+offsets[d]] != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		labels[start] = -nbd
		return []image.Point{{X: x0, Y: y0}}
	}
	last := start + offsets[first]

	chain := make([]image.Point, 0, 64)
	cur := start
	cx, cy := x0, y0
	back := first
	for {
		// Counterclockwise search starting just after the previous pixel.
		eastClear := false
		next := back
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			if labels[cur+offsets[d]] != 0 {
				next = d
				break
			}
			if d == dirEast {
				eastClear = true
			}
		}

		if eastClear {
			labels[cur] = -nbd
		} else if labels[cur] == 1 {
			labels[cur] = nbd
		}
		chain = append(chain, image.Point{X: cx, Y: cy})

		nextIdx := cur + offsets[next]
		if nextIdx == start && cur == last {
			break
		}

		back = (next + 4) % 8
		cur = nextIdx
		cx += directions[next].X
		cy += directions[next].Y
	}
	return chain
}

// compress drops points that lie inside a straight run of the closed chain.
// The starting point is always kept.
func compress(chain []image.Point) Contour {
	n := len(chain)
	if n <= 2 {
		return Contour(chain)
	}

	out := make(Contour, 0, n/2+1)
	out = append(out, chain[0])
	for k := 1; k < n; k++ {
		in := chain[k].Sub(chain[k-1])
		outDir := chain[(k+1)%n].Sub(chain[k])
		if in != outDir {
			out = append(out, chain[k])
		}
	}
	return out
}
