package terrain

import (
	"fmt"
	"math"
)

// Pixel spacing of the source maps, in meters.
const (
	XScale = 10.29
	YScale = 7.55
)

// Color is an RGB triple used as a categorical terrain label.
// It implements image/color.Color so it can be drawn directly.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color for a fully opaque pixel.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// String formats the color as "(r,g,b)".
func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Map palette.
var (
	OutOfBounds          = Color{205, 0, 101}
	Footpath             = Color{0, 0, 0}
	PavedRoad            = Color{71, 51, 3}
	Water                = Color{0, 0, 255}
	ImpassableVegetation = Color{5, 73, 24}
	WalkForest           = Color{2, 136, 40}
	SlowRunForest        = Color{2, 208, 60}
	EasyMovementForest   = Color{255, 255, 255}
	RoughMeadow          = Color{255, 192, 0}
	OpenLand             = Color{248, 148, 18}
)

// Point is a grid coordinate; X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Path is an ordered walk of grid coordinates.
type Path []Point

// SpeedTable maps a terrain color to its traversal speed (distance per time unit).
type SpeedTable map[Color]float64

// DefaultSpeeds returns a fresh table with the standard orienteering speeds.
func DefaultSpeeds() SpeedTable {
	return SpeedTable{
		OutOfBounds:          0.01,
		Footpath:             15,
		PavedRoad:            12,
		Water:                2,
		ImpassableVegetation: 2,
		WalkForest:           4,
		SlowRunForest:        5,
		EasyMovementForest:   6.5,
		RoughMeadow:          4,
		OpenLand:             8,
	}
}

// Speed returns the speed for c, or ErrUnknownTerrain.
func (st SpeedTable) Speed(c Color) (float64, error) {
	v, ok := st[c]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTerrain, c)
	}
	return v, nil
}

// Set installs or overrides the speed for c.
func (st SpeedTable) Set(c Color, speed float64) error {
	if !validSpeed(speed) {
		return fmt.Errorf("%w: %s=%v", ErrBadSpeed, c, speed)
	}
	st[c] = speed
	return nil
}

// Clone returns an independent copy of the table.
func (st SpeedTable) Clone() SpeedTable {
	out := make(SpeedTable, len(st))
	for c, v := range st {
		out[c] = v
	}
	return out
}

// Validate checks every entry with the same rule as Set.
func (st SpeedTable) Validate() error {
	for c, v := range st {
		if !validSpeed(v) {
			return fmt.Errorf("%w: %s=%v", ErrBadSpeed, c, v)
		}
	}
	return nil
}

func validSpeed(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
