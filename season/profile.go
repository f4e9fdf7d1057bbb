package season

import "github.com/katalvlaran/terrainroute/terrain"

// Path colors painted over relabeled cells.
var (
	SpringPath = terrain.Color{R: 86, G: 54, B: 0}
	SummerPath = terrain.Color{R: 255, G: 0, B: 255}
	FallPath   = terrain.Color{R: 0, G: 255, B: 255}
	WinterPath = terrain.Color{R: 178, G: 255, B: 255}
)

// AdmitFunc decides whether a flood started at origin may enter p.
type AdmitFunc func(g *terrain.Grid, origin, p terrain.Point) bool

// AcceptFunc tests a single cell; profiles use it both to relabel cells and
// to decide which admitted cells are expanded further.
type AcceptFunc func(g *terrain.Grid, p terrain.Point) bool

// Profile is the per-season parameter set.
// Identity profiles skip boundary detection and flood fill entirely.
type Profile struct {
	Identity  bool
	Trigger   terrain.Color
	PathColor terrain.Color
	Depth     int
	Speeds    terrain.SpeedTable
	Admit     AdmitFunc
	Enqueue   AcceptFunc // nil queues every admitted cell
	Accept    AcceptFunc
}

// ProfileOf returns the built-in profile for s. The returned Speeds table is
// a fresh copy.
func ProfileOf(s Season) (Profile, error) {
	switch s {
	case Spring:
		return Profile{
			Trigger:   terrain.Water,
			PathColor: SpringPath,
			Depth:     15,
			Speeds:    terrain.SpeedTable{SpringPath: 4, terrain.Water: 0.1},
			Admit:     admitLowland(1),
			Enqueue:   not(terrain.OutOfBounds),
			Accept:    not(terrain.Water),
		}, nil
	case Summer:
		return Profile{Identity: true, PathColor: SummerPath}, nil
	case Fall:
		return Profile{
			Trigger:   terrain.EasyMovementForest,
			PathColor: FallPath,
			Depth:     1,
			Speeds:    terrain.SpeedTable{FallPath: 6},
			Admit:     admitAll,
			Accept:    oneOf(terrain.OpenLand, terrain.Footpath),
		}, nil
	case Winter:
		return Profile{
			Trigger:   terrain.Water,
			PathColor: WinterPath,
			Depth:     7,
			Speeds:    terrain.SpeedTable{WinterPath: 3, terrain.Water: 0.1},
			Admit:     admitAll,
			Accept:    oneOf(terrain.Water),
		}, nil
	}
	return Profile{}, ErrUnknownSeason
}

func admitAll(*terrain.Grid, terrain.Point, terrain.Point) bool { return true }

// admitLowland admits cells rising at most rise meters above the flood
// origin.
func admitLowland(rise float64) AdmitFunc {
	return func(g *terrain.Grid, origin, p terrain.Point) bool {
		z0, err := g.Elevation(origin)
		if err != nil {
			return false
		}
		z, err := g.Elevation(p)
		if err != nil {
			return false
		}
		return z-z0 <= rise
	}
}

func oneOf(colors ...terrain.Color) AcceptFunc {
	return func(g *terrain.Grid, p terrain.Point) bool {
		c, err := g.At(p)
		if err != nil {
			return false
		}
		for _, want := range colors {
			if c == want {
				return true
			}
		}
		return false
	}
}

func not(color terrain.Color) AcceptFunc {
	return func(g *terrain.Grid, p terrain.Point) bool {
		c, err := g.At(p)
		return err == nil && c != color
	}
}
