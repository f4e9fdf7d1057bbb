// Package terrain treats a color-coded orienteering map as a weighted grid.
//
// What:
//
//   - Grid wraps a rectangular map of terrain Colors plus an elevation surface
//     (meters) of the same dimensions.
//   - Each terrain Color maps to a traversal speed through a SpeedTable.
//   - Neighbors enumerates the 4-connected, passable cells around a point.
//   - TravelTime converts a move into time: 3-D distance divided by the speed
//     of the source cell's terrain.
//
// Why:
//
//   - Orienteering route planning: fastest legs between control points.
//   - Seasonal what-if analysis: derive a new Grid with relabeled cells and a
//     new SpeedTable without touching the base map (see WithSeason).
//
// Geometry:
//
//   - One pixel spans XScale (10.29 m) horizontally and YScale (7.55 m)
//     vertically, so planar distances are scaled per axis.
//
// Complexity:
//
//   - NewGrid:     O(W×H) time and memory (deep copy).
//   - Neighbors:   O(1).
//   - TravelTime:  O(1).
//   - WithSeason:  O(W×H + k) for k overrides.
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrDimensionMismatch: elevation and terrain dimensions differ.
//   - ErrBadSpeed: a speed is not strictly positive and finite.
//   - ErrOutOfBounds: a coordinate lies outside the grid.
//   - ErrUnknownTerrain: a terrain color has no SpeedTable entry.
package terrain
