package terrain

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("terrain: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("terrain: all rows must have the same length")
	// ErrDimensionMismatch indicates elevation and terrain grids differ in size.
	ErrDimensionMismatch = errors.New("terrain: elevation dimensions do not match terrain dimensions")
	// ErrBadSpeed indicates a non-positive, NaN or infinite speed.
	ErrBadSpeed = errors.New("terrain: speed must be positive and finite")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("terrain: coordinate out of bounds")
	// ErrUnknownTerrain indicates a terrain color with no speed entry.
	ErrUnknownTerrain = errors.New("terrain: no speed for terrain color")
)
