package terrain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrainroute/terrain"
	"github.com/katalvlaran/terrainroute/terrain/terraintest"
)

//----------------------------------------------------------------------------//
// NewGrid and bounds
//----------------------------------------------------------------------------//

// TestNewGrid_Errors verifies that NewGrid rejects empty, ragged or misaligned inputs.
func TestNewGrid_Errors(t *testing.T) {
	ok := terraintest.Cells("..", "..")
	cases := []struct {
		name   string
		cells  [][]terrain.Color
		elev   [][]float64
		speeds terrain.SpeedTable
		err    error
	}{
		{"EmptyRows", nil, nil, terrain.DefaultSpeeds(), terrain.ErrEmptyGrid},
		{"EmptyCols", [][]terrain.Color{{}}, [][]float64{{}}, terrain.DefaultSpeeds(), terrain.ErrEmptyGrid},
		{"NonRectangular", terraintest.Cells("..", "."), terraintest.Flat(2, 2, 0), terrain.DefaultSpeeds(), terrain.ErrNonRectangular},
		{"ElevationRows", ok, terraintest.Flat(2, 3, 0), terrain.DefaultSpeeds(), terrain.ErrDimensionMismatch},
		{"ElevationCols", ok, terraintest.Flat(3, 2, 0), terrain.DefaultSpeeds(), terrain.ErrDimensionMismatch},
		{"ZeroSpeed", ok, terraintest.Flat(2, 2, 0), terrain.SpeedTable{terrain.OpenLand: 0}, terrain.ErrBadSpeed},
		{"NaNSpeed", ok, terraintest.Flat(2, 2, 0), terrain.SpeedTable{terrain.OpenLand: math.NaN()}, terrain.ErrBadSpeed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := terrain.NewGrid(tc.cells, tc.elev, tc.speeds)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestNewGrid_DeepCopy checks that later edits to the inputs do not leak into the grid.
func TestNewGrid_DeepCopy(t *testing.T) {
	cells := terraintest.Cells("..")
	elev := terraintest.Flat(2, 1, 3)
	speeds := terrain.DefaultSpeeds()
	g, err := terrain.NewGrid(cells, elev, speeds)
	require.NoError(t, err)

	cells[0][0] = terrain.Water
	elev[0][0] = 99
	speeds[terrain.OpenLand] = 1

	c, err := g.At(terrain.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, terrain.OpenLand, c)
	z, err := g.Elevation(terrain.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, z)
	assert.Equal(t, 8.0, g.Speeds()[terrain.OpenLand])
}

func TestGrid_AtOutOfBounds(t *testing.T) {
	g := terraintest.Grid("..")
	_, err := g.At(terrain.Point{X: 2, Y: 0})
	assert.ErrorIs(t, err, terrain.ErrOutOfBounds)
	_, err = g.Elevation(terrain.Point{X: 0, Y: -1})
	assert.ErrorIs(t, err, terrain.ErrOutOfBounds)
}

//----------------------------------------------------------------------------//
// Neighbors
//----------------------------------------------------------------------------//

// TestNeighbors_OrderAndFiltering checks enumeration order and the
// OutOfBounds sentinel filter.
func TestNeighbors_OrderAndFiltering(t *testing.T) {
	g := terraintest.Grid(
		"...",
		"...",
		"...",
	)
	got := g.Neighbors(terrain.Point{X: 1, Y: 1})
	want := []terrain.Point{{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	assert.Equal(t, want, got)

	corner := g.Neighbors(terrain.Point{X: 0, Y: 0})
	assert.Equal(t, []terrain.Point{{X: 0, Y: 1}, {X: 1, Y: 0}}, corner)

	walled := terraintest.Grid(
		".#.",
		"#..",
	)
	assert.Equal(t, []terrain.Point{{X: 2, Y: 1}}, walled.Neighbors(terrain.Point{X: 1, Y: 1}))
	assert.Empty(t, walled.Neighbors(terrain.Point{X: 0, Y: 0}))
	assert.Len(t, walled.Adjacent(terrain.Point{X: 0, Y: 0}), 2)
}

//----------------------------------------------------------------------------//
// Costs
//----------------------------------------------------------------------------//

func TestTravelTime_Planar(t *testing.T) {
	g := terraintest.Uniform(2, 2, terrain.OpenLand, 1)

	right, err := g.TravelTime(terrain.Point{X: 0, Y: 0}, terrain.Point{X: 1, Y: 0})
	require.NoError(t, err)
	assert.InDelta(t, terrain.XScale, right, 1e-9)

	down, err := g.TravelTime(terrain.Point{X: 0, Y: 0}, terrain.Point{X: 0, Y: 1})
	require.NoError(t, err)
	assert.InDelta(t, terrain.YScale, down, 1e-9)

	assert.Equal(t, 1.0, g.StepCost(terrain.Point{X: 0, Y: 0}, terrain.Point{X: 1, Y: 0}))
}

// TestTravelTime_ElevationAndAsymmetry combines elevation in quadrature and
// divides by the source terrain's speed only.
func TestTravelTime_ElevationAndAsymmetry(t *testing.T) {
	cells := terraintest.Cells(".f")
	elev := [][]float64{{0, 4}}
	g, err := terrain.NewGrid(cells, elev, terrain.DefaultSpeeds())
	require.NoError(t, err)

	a, b := terrain.Point{X: 0, Y: 0}, terrain.Point{X: 1, Y: 0}
	dist := math.Sqrt(terrain.XScale*terrain.XScale + 16)

	ab, err := g.TravelTime(a, b)
	require.NoError(t, err)
	assert.InDelta(t, dist/8, ab, 1e-9)

	ba, err := g.TravelTime(b, a)
	require.NoError(t, err)
	assert.InDelta(t, dist/15, ba, 1e-9)
	assert.NotEqual(t, ab, ba)
}

// TestTravelTime_PositiveForEveryPaletteEntry checks that every adjacent move
// costs a positive, finite time when the source terrain has a speed.
func TestTravelTime_PositiveForEveryPaletteEntry(t *testing.T) {
	g := terraintest.Grid(
		"~f.rwm",
		"v45.~f",
	)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := terrain.Point{X: x, Y: y}
			for _, n := range g.Adjacent(p) {
				tt, err := g.TravelTime(p, n)
				require.NoError(t, err)
				assert.Greater(t, tt, 0.0)
				assert.False(t, math.IsInf(tt, 0))
			}
		}
	}
}

func TestTravelTime_Errors(t *testing.T) {
	cells := terraintest.Cells("~.")
	g, err := terrain.NewGrid(cells, terraintest.Flat(2, 1, 0), terrain.SpeedTable{terrain.OpenLand: 8})
	require.NoError(t, err)

	_, err = g.TravelTime(terrain.Point{X: 0, Y: 0}, terrain.Point{X: 1, Y: 0})
	assert.ErrorIs(t, err, terrain.ErrUnknownTerrain)

	// The destination's terrain is irrelevant to the cost.
	_, err = g.TravelTime(terrain.Point{X: 1, Y: 0}, terrain.Point{X: 0, Y: 0})
	assert.NoError(t, err)

	_, err = g.TravelTime(terrain.Point{X: 1, Y: 0}, terrain.Point{X: 2, Y: 0})
	assert.ErrorIs(t, err, terrain.ErrOutOfBounds)
}

func TestPlanarDistance(t *testing.T) {
	assert.Equal(t, 0.0, terrain.PlanarDistance(terrain.Point{X: 3, Y: 3}, terrain.Point{X: 3, Y: 3}))
	want := math.Hypot(3*terrain.XScale, 4*terrain.YScale)
	assert.InDelta(t, want, terrain.PlanarDistance(terrain.Point{}, terrain.Point{X: 3, Y: 4}), 1e-9)
}

//----------------------------------------------------------------------------//
// WithSeason
//----------------------------------------------------------------------------//

// TestWithSeason_DoesNotMutateBase checks relabeling and speed installation on
// the derived grid while the base grid stays intact.
func TestWithSeason_DoesNotMutateBase(t *testing.T) {
	base := terraintest.Grid("~~.")
	speeds := base.Speeds()
	path := terrain.Color{R: 178, G: 255, B: 255}
	require.NoError(t, speeds.Set(path, 3))

	seasoned, err := base.WithSeason([]terrain.Point{{X: 1, Y: 0}, {X: 9, Y: 9}}, path, speeds)
	require.NoError(t, err)

	c, _ := seasoned.At(terrain.Point{X: 1, Y: 0})
	assert.Equal(t, path, c)
	c, _ = base.At(terrain.Point{X: 1, Y: 0})
	assert.Equal(t, terrain.Water, c)

	_, err = base.Speeds().Speed(path)
	assert.ErrorIs(t, err, terrain.ErrUnknownTerrain)
	v, err := seasoned.Speeds().Speed(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

// TestWithSeason_KeepsSentinel leaves OutOfBounds cells impassable even when
// they are listed as overrides.
func TestWithSeason_KeepsSentinel(t *testing.T) {
	base := terraintest.Grid(".#.")
	path := terrain.Color{R: 86, G: 54, B: 0}
	speeds := base.Speeds()
	require.NoError(t, speeds.Set(path, 4))

	seasoned, err := base.WithSeason([]terrain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, path, speeds)
	require.NoError(t, err)

	c, _ := seasoned.At(terrain.Point{X: 0, Y: 0})
	assert.Equal(t, path, c)
	c, _ = seasoned.At(terrain.Point{X: 1, Y: 0})
	assert.Equal(t, terrain.OutOfBounds, c)
	assert.False(t, seasoned.Passable(terrain.Point{X: 1, Y: 0}))
}

func TestSpeedTable_SetRejectsBadSpeed(t *testing.T) {
	st := terrain.SpeedTable{}
	assert.ErrorIs(t, st.Set(terrain.Water, -1), terrain.ErrBadSpeed)
	assert.ErrorIs(t, st.Set(terrain.Water, math.Inf(1)), terrain.ErrBadSpeed)
	assert.NoError(t, st.Set(terrain.Water, 0.1))
}

func TestColor_RGBA(t *testing.T) {
	r, g, b, a := terrain.OutOfBounds.RGBA()
	assert.Equal(t, uint32(0xcdcd), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0x6565), b)
	assert.Equal(t, uint32(0xffff), a)
	assert.Equal(t, "(205,0,101)", terrain.OutOfBounds.String())
}

func TestIndexCoordinateRoundTrip(t *testing.T) {
	g := terraintest.Uniform(4, 3, terrain.OpenLand, 1)
	p := terrain.Point{X: 3, Y: 2}
	assert.Equal(t, 11, g.Index(p))
	assert.Equal(t, p, g.Coordinate(11))
}
