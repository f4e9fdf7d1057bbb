// Package terraintest builds small terrain grids from ASCII sketches for tests.
//
// Legend:
//
//	'.' OpenLand           '~' Water
//	'#' OutOfBounds        'f' Footpath
//	'r' PavedRoad          'w' EasyMovementForest
//	'm' RoughMeadow        'v' ImpassableVegetation
//	'4' WalkForest         '5' SlowRunForest
package terraintest

import (
	"fmt"

	"github.com/katalvlaran/terrainroute/terrain"
)

// Legend maps sketch runes to palette colors.
var Legend = map[rune]terrain.Color{
	'.': terrain.OpenLand,
	'~': terrain.Water,
	'#': terrain.OutOfBounds,
	'f': terrain.Footpath,
	'r': terrain.PavedRoad,
	'w': terrain.EasyMovementForest,
	'm': terrain.RoughMeadow,
	'v': terrain.ImpassableVegetation,
	'4': terrain.WalkForest,
	'5': terrain.SlowRunForest,
}

// Cells converts sketch rows into terrain[y][x]. Unknown runes panic.
func Cells(rows ...string) [][]terrain.Color {
	out := make([][]terrain.Color, len(rows))
	for y, row := range rows {
		out[y] = make([]terrain.Color, 0, len(row))
		for _, r := range row {
			c, ok := Legend[r]
			if !ok {
				panic(fmt.Sprintf("terraintest: unknown rune %q in row %d", r, y))
			}
			out[y] = append(out[y], c)
		}
	}
	return out
}

// Flat returns an h×w elevation surface filled with z.
func Flat(w, h int, z float64) [][]float64 {
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
		for x := range out[y] {
			out[y][x] = z
		}
	}
	return out
}

// Grid builds a flat (elevation 0) grid with default speeds from a sketch.
// It panics on invalid sketches.
func Grid(rows ...string) *terrain.Grid {
	cells := Cells(rows...)
	g, err := terrain.NewGrid(cells, Flat(len(cells[0]), len(cells), 0), terrain.DefaultSpeeds())
	if err != nil {
		panic(err)
	}
	return g
}

// Uniform builds a w×h grid of a single color with the given speed and
// elevation 0.
func Uniform(w, h int, c terrain.Color, speed float64) *terrain.Grid {
	cells := make([][]terrain.Color, h)
	for y := range cells {
		cells[y] = make([]terrain.Color, w)
		for x := range cells[y] {
			cells[y][x] = c
		}
	}
	g, err := terrain.NewGrid(cells, Flat(w, h, 0), terrain.SpeedTable{c: speed, terrain.OutOfBounds: 0.01})
	if err != nil {
		panic(err)
	}
	return g
}
