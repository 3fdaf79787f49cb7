package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
)

// Preprocessing defaults used by the measurement pipeline.
const (
	DefaultBlurSize  = 5
	DefaultCannyLow  = 100
	DefaultCannyHigh = 200
)

// Fixed-point BT.601 luminance weights (scaled by 2^14).
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
)

// smallGaussianTables are the binomial kernels used for odd sizes up to 7
// when no sigma is given.
var smallGaussianTables = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// EdgeDetectResult contains an edge-detected image encoded as base64 PNG.
//
// The result is a grayscale image where white pixels (255) represent detected
// edges and black pixels (0) represent non-edges.
type EdgeDetectResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// EdgePixels is the number of pixels marked as edges.
	EdgePixels int `json:"edge_pixels"`

	// ImageBase64 is the edge image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png" for edge detection results.
	MimeType string `json:"mime_type"`
}

// EdgeMap runs the measurement preprocessing chain on a colour image and
// returns the binary edge map.
//
// The chain is:
//
//  1. Grayscale: BT.601 luminance
//  2. GaussianBlur: 5x5 kernel, sigma derived from the kernel size
//  3. Canny: low threshold 100, high threshold 200, hysteresis linking
//
// The returned image has its origin at (0,0) regardless of the input bounds.
func EdgeMap(img image.Image) *image.Gray {
	gray := Grayscale(img)
	blurred := GaussianBlur(gray, DefaultBlurSize, 0)
	return Canny(blurred, DefaultCannyLow, DefaultCannyHigh)
}

// EdgeDetect performs the preprocessing chain with caller-chosen Canny
// thresholds and returns the edge map as a base64 PNG.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Gradient magnitudes at or below this are discarded.
//   - thresholdHigh: Gradient magnitudes above this seed edges; pixels between
//     the two thresholds survive only when connected to a seed.
//
// Recommended starting points:
//   - Photographs of parts: thresholdLow=100, thresholdHigh=200
//   - Clean drawings: thresholdLow=50, thresholdHigh=150
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh int) (*EdgeDetectResult, error) {
	gray := Grayscale(img)
	blurred := GaussianBlur(gray, DefaultBlurSize, 0)
	edges := Canny(blurred, float64(thresholdLow), float64(thresholdHigh))

	count := 0
	for _, v := range edges.Pix {
		if v != 0 {
			count++
		}
	}

	encoded, err := EncodePNGBase64(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	return &EdgeDetectResult{
		Width:       edges.Bounds().Dx(),
		Height:      edges.Bounds().Dy(),
		EdgePixels:  count,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// Grayscale converts an image to single-channel luminance using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B) in rounded fixed point.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			v := ((r>>8)*lumaR + (g>>8)*lumaG + (b>>8)*lumaB + 1<<(lumaShift-1)) >> lumaShift
			row[x] = uint8(v)
		}
	}
	return gray
}

// GaussianKernel returns a normalized 1-D Gaussian kernel of the given size.
//
// When sigma <= 0 the kernel is derived from the size: odd sizes up to 7 use
// the binomial tables, larger sizes use sigma = 0.3*((size-1)*0.5 - 1) + 0.8.
func GaussianKernel(size int, sigma float64) []float64 {
	if sigma <= 0 {
		if table, ok := smallGaussianTables[size]; ok {
			return append([]float64(nil), table...)
		}
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}

	kernel := make([]float64, size)
	scale := -0.5 / (sigma * sigma)
	center := float64(size-1) * 0.5
	var sum float64
	for i := range kernel {
		x := float64(i) - center
		kernel[i] = math.Exp(scale * x * x)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur smooths a grayscale image with a size x size Gaussian kernel.
//
// The kernel is the outer product of GaussianKernel(size, sigma) with itself
// and is applied with bild's convolution, replicating edge pixels. Even sizes
// are rounded up to the next odd size; sizes below 2 return a copy.
func GaussianBlur(gray *image.Gray, size int, sigma float64) *image.Gray {
	bounds := gray.Bounds()
	result := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if size < 2 {
		for y := 0; y < bounds.Dy(); y++ {
			copy(result.Pix[y*result.Stride:], gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:bounds.Dx()])
		}
		return result
	}
	if size%2 == 0 {
		size++
	}

	k1 := GaussianKernel(size, sigma)
	kernel := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			kernel.Matrix[y*size+x] = k1[y] * k1[x]
		}
	}

	blurred := convolution.Convolve(gray, kernel, &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false})
	bb := blurred.Bounds()
	for y := 0; y < bb.Dy(); y++ {
		for x := 0; x < bb.Dx(); x++ {
			result.Pix[y*result.Stride+x] = blurred.Pix[blurred.PixOffset(bb.Min.X+x, bb.Min.Y+y)]
		}
	}
	return result
}

// Canny detects edges in a (typically blurred) grayscale image.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators, magnitude = |Gx| + |Gy|
//  2. Non-maximum suppression: the gradient direction is quantised into
//     horizontal, vertical and the two diagonals; a pixel survives only if it
//     is a local maximum along that direction
//  3. Double threshold: survivors above high are strong, survivors above low
//     are weak, the rest are discarded
//  4. Hysteresis: weak pixels 8-connected (directly or through other weak
//     pixels) to a strong pixel become edges
//
// Thresholds apply to the L1 Sobel magnitude. If low > high the two are
// swapped. Gradients at the image border use replicated pixels and the
// magnitude outside the image counts as 0, so border pixels can be edges.
// The output is 0 or 255.
func Canny(gray *image.Gray, low, high float64) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if low > high {
		low, high = high, low
	}

	px := func(x, y int) int {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return int(gray.Pix[gray.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)])
	}

	gradX := make([]int, width*height)
	gradY := make([]int, width*height)
	magnitude := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := (px(x+1, y-1) + 2*px(x+1, y) + px(x+1, y+1)) -
				(px(x-1, y-1) + 2*px(x-1, y) + px(x-1, y+1))
			gy := (px(x-1, y+1) + 2*px(x, y+1) + px(x+1, y+1)) -
				(px(x-1, y-1) + 2*px(x, y-1) + px(x+1, y-1))
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = math.Abs(float64(gx)) + math.Abs(float64(gy))
		}
	}

	const (
		none = iota
		weak
		strong
	)
	const (
		tan22 = 0.41421356237309503 // tan(22.5°)
		tan67 = 2.414213562373095   // tan(67.5°)
	)

	mag := func(x, y int) float64 {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return magnitude[y*width+x]
	}

	class := make([]uint8, width*height)
	var seeds []int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := magnitude[i]
			if m <= low {
				continue
			}

			ax := math.Abs(float64(gradX[i]))
			ay := math.Abs(float64(gradY[i]))
			var prev, next float64
			switch {
			case ay <= ax*tan22:
				prev, next = mag(x-1, y), mag(x+1, y)
			case ay >= ax*tan67:
				prev, next = mag(x, y-1), mag(x, y+1)
			case (gradX[i] > 0) == (gradY[i] > 0):
				prev, next = mag(x-1, y-1), mag(x+1, y+1)
			default:
				prev, next = mag(x+1, y-1), mag(x-1, y+1)
			}
			if m <= prev || m < next {
				continue
			}

			if m > high {
				class[i] = strong
				seeds = append(seeds, i)
			} else {
				class[i] = weak
			}
		}
	}

	result := image.NewGray(image.Rect(0, 0, width, height))
	for _, i := range seeds {
		result.Pix[(i/width)*result.Stride+i%width] = 255
	}
	for len(seeds) > 0 {
		i := seeds[len(seeds)-1]
		seeds = seeds[:len(seeds)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				n := ny*width + nx
				if class[n] == weak {
					class[n] = strong
					result.Pix[ny*result.Stride+nx] = 255
					seeds = append(seeds, n)
				}
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
