package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestEdgeDetect(t *testing.T) {
	// Black rectangle on white background
	img := createEdgeTestImage(100, 100)

	result, err := EdgeDetect(img, DefaultCannyLow, DefaultCannyHigh)
	if err != nil {
		t.Fatalf("EdgeDetect failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.EdgePixels == 0 {
		t.Error("expected edge pixels around the rectangle")
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	edgeImg, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if edgeImg.Bounds().Dx() != 100 || edgeImg.Bounds().Dy() != 100 {
		t.Errorf("decoded image dimensions: got %dx%d, want 100x100",
			edgeImg.Bounds().Dx(), edgeImg.Bounds().Dy())
	}
}

func TestEdgeMap_UniformImage(t *testing.T) {
	edges := EdgeMap(createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255}))
	for i, v := range edges.Pix {
		if v != 0 {
			t.Fatalf("uniform image has edge pixel at %d", i)
		}
	}
}

func TestEdgeMap_BinaryOutput(t *testing.T) {
	edges := EdgeMap(createEdgeTestImage(60, 60))
	for _, v := range edges.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("edge map value %d is not binary", v)
		}
	}
}

func TestEdgeMap_StrongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	edges := EdgeMap(img)

	edgeFound := false
	for x := 47; x <= 52; x++ {
		if edges.GrayAt(x, 50).Y == 255 {
			edgeFound = true
			break
		}
	}
	if !edgeFound {
		t.Error("strong vertical edge was not detected")
	}

	// The step runs into the top and bottom rows; the flat left and right
	// columns carry no gradient.
	if edges.GrayAt(49, 0).Y != 255 || edges.GrayAt(49, 99).Y != 255 {
		t.Error("edge touching the image border was not detected")
	}
	for y := 0; y < 100; y++ {
		if edges.GrayAt(0, y).Y != 0 || edges.GrayAt(99, y).Y != 0 {
			t.Fatalf("flat border pixel at row %d marked as edge", y)
		}
	}
}

func TestCanny_BorderPixels(t *testing.T) {
	// A bright first column: the strongest gradient sits on the border itself.
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		gray.SetGray(0, y, color.Gray{Y: 255})
	}

	edges := Canny(gray, 100, 200)
	for y := 0; y < 10; y++ {
		if edges.GrayAt(0, y).Y != 255 && edges.GrayAt(1, y).Y != 255 {
			t.Fatalf("row %d: no edge at the bright border column", y)
		}
	}
}

func TestEdgeMap_OffsetBounds(t *testing.T) {
	src := createEdgeTestImage(40, 40).(*image.RGBA)
	sub := src.SubImage(image.Rect(10, 10, 40, 40))

	edges := EdgeMap(sub)
	if edges.Bounds().Min != (image.Point{}) {
		t.Errorf("edge map origin: got %v, want (0,0)", edges.Bounds().Min)
	}
	if edges.Bounds().Dx() != 30 || edges.Bounds().Dy() != 30 {
		t.Errorf("edge map size: got %v", edges.Bounds())
	}
}

func TestEdgeDetect_SmallImage(t *testing.T) {
	img := createInMemoryImage(5, 5, color.RGBA{128, 128, 128, 255})

	result, err := EdgeDetect(img, 50, 150)
	if err != nil {
		t.Fatalf("EdgeDetect failed: %v", err)
	}
	if result.Width != 5 || result.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 5x5", result.Width, result.Height)
	}
}

func TestGrayscale(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"red", color.RGBA{255, 0, 0, 255}, 76},
		{"green", color.RGBA{0, 255, 0, 255}, 150},
		{"blue", color.RGBA{0, 0, 255, 255}, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := Grayscale(createInMemoryImage(3, 3, tt.c))
			if got := gray.GrayAt(1, 1).Y; got != tt.want {
				t.Errorf("Grayscale(%v): got %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestGaussianKernel(t *testing.T) {
	k := GaussianKernel(5, 0)
	want := []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}
	for i := range want {
		if k[i] != want[i] {
			t.Errorf("kernel[%d]: got %v, want %v", i, k[i], want[i])
		}
	}

	// Larger kernels derive sigma from the size and stay normalized
	k = GaussianKernel(9, 0)
	sum := 0.0
	for _, v := range k {
		sum += v
	}
	if absFloat(sum-1) > 1e-9 {
		t.Errorf("kernel sum: got %v, want 1", sum)
	}
	if k[4] <= k[3] || k[3] != k[5] {
		t.Errorf("kernel should peak at the center and be symmetric: %v", k)
	}
}

func TestGaussianBlur_Uniform(t *testing.T) {
	gray := Grayscale(createInMemoryImage(10, 10, color.RGBA{128, 128, 128, 255}))
	blurred := GaussianBlur(gray, 5, 0)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if v := blurred.GrayAt(x, y).Y; v < 127 || v > 128 {
				t.Fatalf("blurred(%d,%d): got %d, want ~128", x, y, v)
			}
		}
	}
}

func TestGaussianBlur_WithSpot(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 11, 11))
	gray.SetGray(5, 5, color.Gray{Y: 255})

	blurred := GaussianBlur(gray, 5, 0)

	if blurred.GrayAt(5, 5).Y >= 255 {
		t.Error("bright spot should be reduced after blur")
	}
	for _, p := range []image.Point{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		if blurred.GrayAt(p.X, p.Y).Y == 0 {
			t.Errorf("neighbor %v should receive some brightness from blur", p)
		}
	}
	if blurred.GrayAt(0, 0).Y != 0 {
		t.Error("blur should not reach beyond the kernel radius")
	}
}

func TestCanny_SwappedThresholds(t *testing.T) {
	gray := GaussianBlur(Grayscale(createEdgeTestImage(40, 40)), 5, 0)
	a := Canny(gray, 100, 200)
	b := Canny(gray, 200, 100)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("swapped thresholds should give the same edges")
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// createEdgeTestImage creates an image with a black rectangle on white
// background to create clear edges for testing
func createEdgeTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
