// Package render draws routes and season overlays onto terrain images.
//
// All functions work on a copy of the input image; the base image is never
// modified. Coordinates are grid cells, one pixel per cell, and lines run
// through pixel centers.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/terrainroute/terrain"
)

// ErrOptionViolation is returned when an invalid option is supplied.
var ErrOptionViolation = errors.New("render: invalid option")

// RouteColor is the default route stroke.
var RouteColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// Options configures DrawRoute.
//
// Color     – stroke color (default RouteColor).
// LineWidth – stroke width in pixels (default 1).
// Markers   – radius of the start/end dots; 0 disables them.
type Options struct {
	Color     color.Color
	LineWidth float64
	Markers   float64

	err error
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns a 1 px red stroke without markers.
func DefaultOptions() Options {
	return Options{Color: RouteColor, LineWidth: 1}
}

// WithColor sets the stroke color.
func WithColor(c color.Color) Option {
	return func(o *Options) {
		if c != nil {
			o.Color = c
		}
	}
}

// WithLineWidth sets the stroke width; non-positive widths are rejected.
func WithLineWidth(w float64) Option {
	return func(o *Options) {
		if w <= 0 {
			o.err = fmt.Errorf("%w: line width %v", ErrOptionViolation, w)
			return
		}
		o.LineWidth = w
	}
}

// WithMarkers draws a green dot at the first point and a blue dot at the
// last one.
func WithMarkers(radius float64) Option {
	return func(o *Options) {
		if radius < 0 {
			o.err = fmt.Errorf("%w: marker radius %v", ErrOptionViolation, radius)
			return
		}
		o.Markers = radius
	}
}

// Terrain paints one pixel per grid cell in its terrain color.
func Terrain(g *terrain.Grid) image.Image {
	dc := gg.NewContext(g.Width, g.Height)
	for y, row := range g.Rows() {
		for x, c := range row {
			dc.SetColor(c)
			dc.SetPixel(x, y)
		}
	}
	return dc.Image()
}

// Overlay paints every cell in cells with c. Cell (0, 0) is base's top-left
// pixel; the result always has its origin at (0, 0).
func Overlay(base image.Image, cells []terrain.Point, c color.Color) image.Image {
	dc := canvas(base)
	dc.SetColor(c)
	for _, p := range cells {
		dc.SetPixel(p.X, p.Y)
	}
	return dc.Image()
}

// DrawRoute strokes path over base. Consecutive repeated points are drawn
// as a single vertex. Like Overlay, the result has its origin at (0, 0).
func DrawRoute(base image.Image, path terrain.Path, opts ...Option) (image.Image, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	dc := canvas(base)
	if len(path) > 1 {
		dc.SetColor(o.Color)
		dc.SetLineWidth(o.LineWidth)
		dc.SetLineCap(gg.LineCapSquare)
		dc.MoveTo(center(path[0]))
		for _, p := range path[1:] {
			dc.LineTo(center(p))
		}
		dc.Stroke()
	}

	if o.Markers > 0 && len(path) > 0 {
		first, last := path[0], path[len(path)-1]
		x, y := center(first)
		dc.SetColor(color.NRGBA{G: 255, A: 255})
		dc.DrawCircle(x, y, o.Markers)
		dc.Fill()

		x, y = center(last)
		dc.SetColor(color.NRGBA{B: 255, A: 255})
		dc.DrawCircle(x, y, o.Markers)
		dc.Fill()
	}

	return dc.Image(), nil
}

// canvas returns a context over a copy of base moved to the origin, so grid
// coordinates address pixels directly.
func canvas(base image.Image) *gg.Context {
	b := base.Bounds()
	if b.Min == (image.Point{}) {
		return gg.NewContextForImage(base)
	}
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(base, -b.Min.X, -b.Min.Y)
	return dc
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

func center(p terrain.Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}
