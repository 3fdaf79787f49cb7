package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Default annotation colours: green for arcs, blue for circles.
const (
	DefaultArcColor    = "#00ff00"
	DefaultCircleColor = "#0000ff"
)

// Style controls how measured features are drawn onto the annotated image.
type Style struct {
	ArcColor    color.Color
	CircleColor color.Color
	LineWidth   float64
	Face        font.Face
}

// DefaultStyle returns the standard annotation style: green arcs, blue
// circles, 2px strokes and a 7x13 bitmap label font.
func DefaultStyle() Style {
	style, _ := ParseStyle(DefaultArcColor, DefaultCircleColor)
	return style
}

// ParseStyle builds a Style from two hex colours ("#RRGGBB").
func ParseStyle(arcHex, circleHex string) (Style, error) {
	arc, err := ParseColor(arcHex)
	if err != nil {
		return Style{}, fmt.Errorf("invalid arc color: %w", err)
	}
	circle, err := ParseColor(circleHex)
	if err != nil {
		return Style{}, fmt.Errorf("invalid circle color: %w", err)
	}
	return Style{
		ArcColor:    arc,
		CircleColor: circle,
		LineWidth:   2,
		Face:        basicfont.Face7x13,
	}, nil
}

// ParseColor parses a "#RRGGBB" or "#RGB" hex colour into an opaque color.RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ArcMark is a traced contour to be stroked as a closed polyline.
//
// Anchor is where the label's baseline starts; HasAnchor is false when the
// contour has no defined centroid, in which case no label is drawn.
type ArcMark struct {
	Label     string
	Points    []image.Point
	Anchor    image.Point
	HasAnchor bool
}

// CircleMark is a circle to be stroked, labelled at its center.
type CircleMark struct {
	Label  string
	Center image.Point
	Radius int
}

// Annotate draws arcs and circles onto a copy of img.
//
// All arcs are drawn first, then all circles, each with its label text. The
// source image is not modified. Coordinates are relative to img.Bounds().Min.
// With no marks the result is a pixel-identical copy of the source.
func Annotate(img image.Image, arcs []ArcMark, circles []CircleMark, style Style) image.Image {
	dc := gg.NewContextForImage(img)
	if len(arcs) == 0 && len(circles) == 0 {
		return dc.Image()
	}

	if style.Face == nil {
		style.Face = basicfont.Face7x13
	}
	if style.LineWidth <= 0 {
		style.LineWidth = 2
	}
	dc.SetFontFace(style.Face)
	dc.SetLineWidth(style.LineWidth)

	dc.SetColor(style.ArcColor)
	for _, arc := range arcs {
		strokePolyline(dc, arc.Points, style.LineWidth)
		if arc.HasAnchor {
			dc.DrawString(arc.Label, float64(arc.Anchor.X), float64(arc.Anchor.Y))
		}
	}

	dc.SetColor(style.CircleColor)
	for _, c := range circles {
		dc.DrawCircle(float64(c.Center.X)+0.5, float64(c.Center.Y)+0.5, float64(c.Radius))
		dc.Stroke()
		dc.DrawString(c.Label, float64(c.Center.X), float64(c.Center.Y))
	}

	return dc.Image()
}

// strokePolyline strokes a closed path through pixel centers. A single point
// is drawn as a dot.
func strokePolyline(dc *gg.Context, pts []image.Point, width float64) {
	switch len(pts) {
	case 0:
		return
	case 1:
		dc.DrawPoint(float64(pts[0].X)+0.5, float64(pts[0].Y)+0.5, width/2)
		dc.Fill()
		return
	}

	dc.MoveTo(float64(pts[0].X)+0.5, float64(pts[0].Y)+0.5)
	for _, p := range pts[1:] {
		dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
	}
	dc.ClosePath()
	dc.Stroke()
}
