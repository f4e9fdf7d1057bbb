package terrain

import (
	"fmt"
	"math"
)

// neighborOffsets lists the 4-connected moves in enumeration order:
// down, right, left, up. The order only affects tie-breaking.
var neighborOffsets = [4][2]int{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}

// Grid is a rectangular terrain map with elevation and a speed table.
// Cells and elevation are stored row-major (index = y*Width + x).
// A Grid is never mutated after construction; seasonal variants are
// derived with WithSeason.
type Grid struct {
	Width, Height int
	cells         []Color
	elevation     []float64
	speeds        SpeedTable
}

// NewGrid builds a Grid from terrain[y][x] colors and elevation[y][x] meters.
// It deep-copies both inputs and the speed table.
// Returns ErrEmptyGrid, ErrNonRectangular, ErrDimensionMismatch or ErrBadSpeed
// for invalid input.
// Complexity: O(W×H) time and memory.
func NewGrid(cells [][]Color, elevation [][]float64, speeds SpeedTable) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(cells), len(cells[0])
	for _, row := range cells {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	if len(elevation) != h {
		return nil, fmt.Errorf("%w: %d elevation rows, %d terrain rows", ErrDimensionMismatch, len(elevation), h)
	}
	for y, row := range elevation {
		if len(row) != w {
			return nil, fmt.Errorf("%w: elevation row %d has %d values, want %d", ErrDimensionMismatch, y, len(row), w)
		}
	}
	if err := speeds.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		Width:     w,
		Height:    h,
		cells:     make([]Color, w*h),
		elevation: make([]float64, w*h),
		speeds:    speeds.Clone(),
	}
	for y := 0; y < h; y++ {
		copy(g.cells[y*w:(y+1)*w], cells[y])
		copy(g.elevation[y*w:(y+1)*w], elevation[y])
	}

	return g, nil
}

// InBounds reports whether p lies within the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Passable reports whether p is in bounds and not the OutOfBounds sentinel.
func (g *Grid) Passable(p Point) bool {
	return g.InBounds(p) && g.cells[g.index(p)] != OutOfBounds
}

// At returns the terrain color at p.
func (g *Grid) At(p Point) (Color, error) {
	if !g.InBounds(p) {
		return Color{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return g.cells[g.index(p)], nil
}

// Elevation returns the elevation at p in meters.
func (g *Grid) Elevation(p Point) (float64, error) {
	if !g.InBounds(p) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return g.elevation[g.index(p)], nil
}

// Speeds returns a copy of the grid's speed table.
func (g *Grid) Speeds() SpeedTable {
	return g.speeds.Clone()
}

// Neighbors returns the passable axis-adjacent cells of p in the order
// (x,y+1), (x+1,y), (x-1,y), (x,y-1).
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Point{X: p.X + d[0], Y: p.Y + d[1]}
		if g.Passable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Adjacent returns the in-bounds axis-adjacent cells of p regardless of
// terrain, in the same order as Neighbors.
func (g *Grid) Adjacent(p Point) []Point {
	out := make([]Point, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Point{X: p.X + d[0], Y: p.Y + d[1]}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// StepCost is the unit cost of any single move.
func (g *Grid) StepCost(from, to Point) float64 {
	return 1
}

// TravelTime is the time needed to cover the 3-D distance from -> to at the
// speed of from's terrain. It is asymmetric when the two terrains differ.
// Errors wrap ErrOutOfBounds or ErrUnknownTerrain.
func (g *Grid) TravelTime(from, to Point) (float64, error) {
	if !g.InBounds(from) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, from)
	}
	if !g.InBounds(to) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, to)
	}
	speed, err := g.speeds.Speed(g.cells[g.index(from)])
	if err != nil {
		return 0, fmt.Errorf("travel from %s: %w", from, err)
	}
	dz := g.elevation[g.index(to)] - g.elevation[g.index(from)]
	planar := PlanarDistance(from, to)

	return math.Sqrt(planar*planar+dz*dz) / speed, nil
}

// PlanarDistance is the scaled Euclidean distance between a and b in meters,
// ignoring elevation.
func PlanarDistance(a, b Point) float64 {
	dx := float64(b.X-a.X) * XScale
	dy := float64(b.Y-a.Y) * YScale
	return math.Sqrt(dx*dx + dy*dy)
}

// WithSeason derives a new Grid whose override cells are relabeled to color
// and whose speed table is speeds. Elevation is shared with g, which stays
// untouched. Overrides off the grid are ignored, and cells colored
// OutOfBounds keep their color so they stay impassable.
func (g *Grid) WithSeason(overrides []Point, color Color, speeds SpeedTable) (*Grid, error) {
	if err := speeds.Validate(); err != nil {
		return nil, err
	}
	out := &Grid{
		Width:     g.Width,
		Height:    g.Height,
		cells:     make([]Color, len(g.cells)),
		elevation: g.elevation,
		speeds:    speeds.Clone(),
	}
	copy(out.cells, g.cells)
	for _, p := range overrides {
		if !g.InBounds(p) {
			continue
		}
		if i := g.index(p); out.cells[i] != OutOfBounds {
			out.cells[i] = color
		}
	}

	return out, nil
}

// Rows returns a deep copy of the terrain as rows[y][x].
func (g *Grid) Rows() [][]Color {
	rows := make([][]Color, g.Height)
	for y := range rows {
		rows[y] = make([]Color, g.Width)
		copy(rows[y], g.cells[y*g.Width:(y+1)*g.Width])
	}
	return rows
}

// index maps p to a row-major index: y*Width + x.
func (g *Grid) index(p Point) int {
	return p.Y*g.Width + p.X
}

// Index maps p to its row-major index. p must be in bounds.
func (g *Grid) Index(p Point) int {
	return g.index(p)
}

// Coordinate converts a row-major index back to a Point.
func (g *Grid) Coordinate(idx int) Point {
	return Point{X: idx % g.Width, Y: idx / g.Width}
}
